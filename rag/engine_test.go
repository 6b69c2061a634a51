package rag

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hauibot/pkg/chunking"
	"hauibot/pkg/embedding"
	"hauibot/repository"
)

type fakeChunker struct {
	perDoc int
	calls  []string
}

func (f *fakeChunker) ChunkText(ctx context.Context, text string) ([]chunking.ChunkOutput, error) {
	f.calls = append(f.calls, text)
	outs := make([]chunking.ChunkOutput, f.perDoc)
	for i := range outs {
		outs[i] = chunking.ChunkOutput{Text: text, Vector: []float32{float32(i), 1}}
	}
	return outs, nil
}

type fakeEmbedder struct {
	vector []float32
}

func (f *fakeEmbedder) GetEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = f.vector
	}
	return vecs, nil
}

type fakeIndex struct {
	rebuiltDim int
	added      []repository.Chunk
	hits       []repository.ScoredChunk
	searchErr  error
	lastLimit  int
}

func (f *fakeIndex) Rebuild(ctx context.Context, dim int) error {
	f.rebuiltDim = dim
	f.added = nil
	return nil
}

func (f *fakeIndex) AddDocuments(ctx context.Context, chunks []repository.Chunk) error {
	f.added = append(f.added, chunks...)
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, vector []float32, limit int) ([]repository.ScoredChunk, error) {
	f.lastLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.hits, nil
}

func writeCorpus(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestIngestRebuildsIndexFromCorpus(t *testing.T) {
	path := writeCorpus(t, `[
		{"url": "https://sict.haui.edu.vn/vn/tuyen-sinh/diem-chuan", "title": "Điểm chuẩn 2025", "content": "Nội dung điểm chuẩn."},
		{"url": "https://sict.haui.edu.vn/vn/gioi-thieu", "title": "Giới thiệu", "content": "Nội dung giới thiệu."}
	]`)

	chunker := &fakeChunker{perDoc: 2}
	index := &fakeIndex{}
	engine := NewEngine(path, chunker, &fakeEmbedder{}, index, zap.NewNop())

	count, err := engine.Ingest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, count)
	assert.Equal(t, 2, index.rebuiltDim)
	require.Len(t, index.added, 4)

	first := index.added[0]
	assert.True(t, strings.HasPrefix(first.Text, "Tiêu đề: Điểm chuẩn 2025\n\n"))
	assert.Equal(t, "https://sict.haui.edu.vn/vn/tuyen-sinh/diem-chuan", first.URL)
	assert.Equal(t, "Điểm chuẩn 2025", first.Title)
	assert.Equal(t, "Tuyển sinh", first.Category)

	assert.Equal(t, "Khác", index.added[2].Category)
}

func TestIngestMissingCorpus(t *testing.T) {
	engine := NewEngine(filepath.Join(t.TempDir(), "missing.json"),
		&fakeChunker{perDoc: 1}, &fakeEmbedder{}, &fakeIndex{}, zap.NewNop())

	_, err := engine.Ingest(context.Background())
	assert.ErrorIs(t, err, ErrCorpusMissing)
}

func TestIngestCorruptCorpus(t *testing.T) {
	path := writeCorpus(t, `{not json`)
	engine := NewEngine(path, &fakeChunker{perDoc: 1}, &fakeEmbedder{}, &fakeIndex{}, zap.NewNop())

	_, err := engine.Ingest(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorpusMissing)
}

func TestRetrieveFetchesDoubleAndReranks(t *testing.T) {
	index := &fakeIndex{hits: []repository.ScoredChunk{
		scored("b", 1, 0.8),
		scored("a", 0.8, 1),
		scored("c", -1, 1),
	}}
	engine := NewEngine("unused.json", &fakeChunker{perDoc: 1},
		&fakeEmbedder{vector: []float32{1, 1}}, index, zap.NewNop())

	hits, err := engine.Retrieve(context.Background(), "học phí", 2)
	require.NoError(t, err)

	assert.Equal(t, 4, index.lastLimit)
	require.Len(t, hits, 2)
	assert.Equal(t, "b", hits[0].Text)
	assert.Equal(t, "c", hits[1].Text)
}

func TestRetrieveBeforeIngestion(t *testing.T) {
	index := &fakeIndex{searchErr: repository.ErrIndexMissing}
	engine := NewEngine("unused.json", &fakeChunker{perDoc: 1},
		&fakeEmbedder{vector: []float32{1, 0}}, index, zap.NewNop())

	_, err := engine.Retrieve(context.Background(), "học phí", 4)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestRetrieveWithSourcesJoinsAndDedupes(t *testing.T) {
	index := &fakeIndex{hits: []repository.ScoredChunk{
		{Chunk: repository.Chunk{Text: "phần một", URL: "https://sict.haui.edu.vn/vn/tin-tuc/a", Title: "Bài A", Category: "Tin tức", Vector: []float32{1, 0}}},
		{Chunk: repository.Chunk{Text: "phần hai", URL: "https://sict.haui.edu.vn/vn/tin-tuc/a", Title: "Bài A", Category: "Tin tức", Vector: []float32{0, 1}}},
		{Chunk: repository.Chunk{Text: "phần ba", URL: "https://sict.haui.edu.vn/vn/su-kien/b", Vector: []float32{1, 1}}},
	}}
	engine := NewEngine("unused.json", &fakeChunker{perDoc: 1},
		&fakeEmbedder{vector: []float32{1, 0}}, index, zap.NewNop())

	contextText, sources, err := engine.RetrieveWithSources(context.Background(), "tin mới", 3)
	require.NoError(t, err)

	assert.Equal(t, "phần một\n\n---\n\nphần hai\n\n---\n\nphần ba", contextText)
	require.Len(t, sources, 2)
	assert.Equal(t, Source{Title: "Bài A", URL: "https://sict.haui.edu.vn/vn/tin-tuc/a", Category: "Tin tức"}, sources[0])
	assert.Equal(t, Source{Title: "Không có tiêu đề", URL: "https://sict.haui.edu.vn/vn/su-kien/b", Category: "Khác"}, sources[1])
}

// keywordEmbedder maps tuition-related text to one axis and everything else
// to the other, so ranking is predictable without a model.
type keywordEmbedder struct{}

func (keywordEmbedder) GetEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		if strings.Contains(strings.ToLower(t), "học phí") {
			vecs[i] = []float32{1, 0}
		} else {
			vecs[i] = []float32{0, 1}
		}
	}
	return vecs, nil
}

// memoryIndex ranks stored chunks by cosine similarity, standing in for the
// real collection.
type memoryIndex struct {
	chunks []repository.Chunk
	built  bool
}

func (m *memoryIndex) Rebuild(ctx context.Context, dim int) error {
	m.chunks = nil
	m.built = true
	return nil
}

func (m *memoryIndex) AddDocuments(ctx context.Context, chunks []repository.Chunk) error {
	m.chunks = append(m.chunks, chunks...)
	return nil
}

func (m *memoryIndex) Search(ctx context.Context, vector []float32, limit int) ([]repository.ScoredChunk, error) {
	if !m.built {
		return nil, repository.ErrIndexMissing
	}
	hits := make([]repository.ScoredChunk, len(m.chunks))
	for i, c := range m.chunks {
		hits[i] = repository.ScoredChunk{Chunk: c, Score: embedding.CosineSimilarity(vector, c.Vector)}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Score > hits[b].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func TestEndToEndIngestAndRetrieve(t *testing.T) {
	path := writeCorpus(t, `[
		{"url": "https://sict.haui.edu.vn/vn/tuyen-sinh/hoc-phi-2025", "title": "Học phí 2025", "content": "Học phí năm 2025 của SICT là 25 triệu đồng mỗi năm học."},
		{"url": "https://sict.haui.edu.vn/vn/tin-tuc/clb-bong-da", "title": "CLB bóng đá", "content": "Câu lạc bộ bóng đá sinh viên giao hữu cuối tuần."}
	]`)

	embedder := keywordEmbedder{}
	index := &memoryIndex{}
	engine := NewEngine(path, chunking.NewRecursiveCharacter(embedder, 1000, 200), embedder, index, zap.NewNop())

	count, err := engine.Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	contextText, sources, err := engine.RetrieveWithSources(context.Background(), "học phí bao nhiêu", 1)
	require.NoError(t, err)

	assert.Contains(t, contextText, "25 triệu đồng")
	assert.NotContains(t, contextText, "bóng đá")
	require.Len(t, sources, 1)
	assert.Equal(t, "https://sict.haui.edu.vn/vn/tuyen-sinh/hoc-phi-2025", sources[0].URL)
	assert.Equal(t, "Tuyển sinh", sources[0].Category)
}

func TestCategoryFromURL(t *testing.T) {
	cases := map[string]string{
		"https://sict.haui.edu.vn/vn/tin-tuc/bai-viet":   "Tin tức",
		"https://sict.haui.edu.vn/vn/su-kien/hoi-thao":   "Sự kiện",
		"https://sict.haui.edu.vn/vn/tuyen-sinh":         "Tuyển sinh",
		"https://sict.haui.edu.vn/vn/nganh-dao-tao/cntt": "Ngành đào tạo",
		"https://sict.haui.edu.vn/vn/gioi-thieu/lich-su": "Khác",
	}
	for url, want := range cases {
		assert.Equal(t, want, CategoryFromURL(url), url)
	}
}
