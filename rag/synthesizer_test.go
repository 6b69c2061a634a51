package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hauibot/repository"
)

type fakeRetriever struct {
	hits  []repository.ScoredChunk
	err   error
	query string
	k     int
	calls int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, k int) ([]repository.ScoredChunk, error) {
	f.calls++
	f.query = query
	f.k = k
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

type fakeGenerator struct {
	chunks []string
	err    error
	prompt string
}

func (f *fakeGenerator) Call(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return strings.Join(f.chunks, ""), f.err
}

func (f *fakeGenerator) Stream(ctx context.Context, prompt string, fn func(chunk string) error) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	for _, c := range f.chunks {
		if err := fn(c); err != nil {
			return "", err
		}
	}
	return strings.Join(f.chunks, ""), nil
}

func collectEvents() (EmitFunc, *[]Event) {
	var events []Event
	return func(ev Event) error {
		events = append(events, ev)
		return nil
	}, &events
}

func joinTokens(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		if ev.Type == EventToken {
			b.WriteString(ev.Token)
		}
	}
	return b.String()
}

func TestAnswerGreetingShortCircuits(t *testing.T) {
	retriever := &fakeRetriever{}
	generator := &fakeGenerator{}
	s := NewSynthesizer(retriever, generator, 8, zap.NewNop())
	emit, events := collectEvents()

	require.NoError(t, s.Answer(context.Background(), "Xin chào", nil, emit))

	assert.Zero(t, retriever.calls)
	assert.Empty(t, generator.prompt)

	evs := *events
	require.GreaterOrEqual(t, len(evs), 3)
	assert.NotEmpty(t, joinTokens(evs))
	assert.Equal(t, EventSources, evs[len(evs)-2].Type)
	assert.Empty(t, evs[len(evs)-2].Sources)
	assert.Equal(t, EventSuggestions, evs[len(evs)-1].Type)
	assert.Contains(t, evs[len(evs)-1].Suggestions, "SICT là gì?")
}

func TestAnswerFAQHitStreamsCannedAnswer(t *testing.T) {
	retriever := &fakeRetriever{}
	s := NewSynthesizer(retriever, &fakeGenerator{}, 8, zap.NewNop())
	emit, events := collectEvents()

	require.NoError(t, s.Answer(context.Background(), "Liên hệ SICT như thế nào?", nil, emit))

	assert.Zero(t, retriever.calls)

	answer := joinTokens(*events)
	assert.Contains(t, answer, "024.3733.1699")
	assert.Contains(t, answer, "sict@haui.edu.vn")

	for _, ev := range *events {
		if ev.Type == EventToken {
			assert.LessOrEqual(t, utf8.RuneCountInString(ev.Token), faqStreamRunes)
		}
	}

	last := (*events)[len(*events)-1]
	require.Equal(t, EventSuggestions, last.Type)
	assert.Equal(t, []string{
		"Địa chỉ các cơ sở của HaUI?",
		"Phòng Đào tạo ở đâu?",
		"Hotline tuyển sinh?",
	}, last.Suggestions)
}

func TestAnswerRetrievalPipeline(t *testing.T) {
	internalDoc := repository.ScoredChunk{Chunk: repository.Chunk{
		Text:     "Khoa tổ chức cuộc thi lập trình cho sinh viên trường. Liên hệ 024.3733.1699 để đăng ký.",
		URL:      "https://sict.haui.edu.vn/vn/su-kien/cuoc-thi-lap-trinh",
		Title:    "Cuộc thi lập trình",
		Category: "Sự kiện",
		Vector:   []float32{1, 0},
	}}
	externalDoc := repository.ScoredChunk{Chunk: repository.Chunk{
		Text:   "Olympic Tin học Sinh viên Việt Nam vòng toàn quốc khai mạc.",
		URL:    "https://sict.haui.edu.vn/vn/tin-tuc/olympic",
		Title:  "Olympic toàn quốc",
		Vector: []float32{0, 1},
	}}

	retriever := &fakeRetriever{hits: []repository.ScoredChunk{externalDoc, internalDoc}}
	generator := &fakeGenerator{chunks: []string{"Trường có tổ chức ", "cuộc thi lập trình nội bộ."}}
	s := NewSynthesizer(retriever, generator, 8, zap.NewNop())
	emit, events := collectEvents()

	history := []Message{
		{Role: "user", Content: "trường có câu lạc bộ gì?"},
		{Role: "assistant", Content: "Trường có nhiều câu lạc bộ sinh viên."},
	}
	err := s.Answer(context.Background(), "cuộc thi lập trình do trường tổ chức", history, emit)
	require.NoError(t, err)

	assert.Equal(t, 1, retriever.calls)
	assert.Equal(t, 8, retriever.k)

	// The external competition document is dropped by the context filter,
	// so neither the prompt nor the sources mention it.
	assert.Contains(t, generator.prompt, "Khoa tổ chức cuộc thi lập trình")
	assert.NotContains(t, generator.prompt, "Olympic")

	// Entities found in the surviving context are summarized for the model.
	assert.Contains(t, generator.prompt, "📞 **Số điện thoại:** 02437331699")

	// The detected organizer constraint reaches the prompt as a hint.
	assert.Contains(t, generator.prompt, "[Lưu ý khi trả lời: sự kiện/hoạt động NỘI BỘ do SICT/HaUI tổ chức")

	assert.Contains(t, generator.prompt, "Người dùng: trường có câu lạc bộ gì?")
	assert.Contains(t, generator.prompt, "CÂU HỎI CỦA NGƯỜI DÙNG: cuộc thi lập trình do trường tổ chức")

	evs := *events
	require.Len(t, evs, 4)
	assert.Equal(t, "Trường có tổ chức cuộc thi lập trình nội bộ.", joinTokens(evs))

	require.Equal(t, EventSources, evs[2].Type)
	require.Len(t, evs[2].Sources, 1)
	assert.Equal(t, "https://sict.haui.edu.vn/vn/su-kien/cuoc-thi-lap-trinh", evs[2].Sources[0].URL)

	require.Equal(t, EventSuggestions, evs[3].Type)
	assert.Len(t, evs[3].Suggestions, 3)
}

func TestAnswerBeforeIngestionEmitsError(t *testing.T) {
	retriever := &fakeRetriever{err: ErrNotInitialized}
	s := NewSynthesizer(retriever, &fakeGenerator{}, 8, zap.NewNop())
	emit, events := collectEvents()

	err := s.Answer(context.Background(), "học bổng của khoa", nil, emit)
	assert.ErrorIs(t, err, ErrNotInitialized)

	evs := *events
	require.Len(t, evs, 1)
	assert.Equal(t, EventError, evs[0].Type)
	assert.Equal(t, msgNoData, evs[0].Message)
}

func TestAnswerGenerationFailureEmitsError(t *testing.T) {
	retriever := &fakeRetriever{hits: []repository.ScoredChunk{
		{Chunk: repository.Chunk{Text: "nội dung", URL: "https://sict.haui.edu.vn/vn/x", Vector: []float32{1}}},
	}}
	generator := &fakeGenerator{err: errors.New("upstream down")}
	s := NewSynthesizer(retriever, generator, 8, zap.NewNop())
	emit, events := collectEvents()

	err := s.Answer(context.Background(), "học bổng của khoa", nil, emit)
	require.Error(t, err)

	evs := *events
	require.Len(t, evs, 1)
	assert.Equal(t, EventError, evs[0].Type)
	assert.Equal(t, msgGenerationFailed, evs[0].Message)
}

func TestPriorUserTurnsNewestFirst(t *testing.T) {
	turns := priorUserTurns([]Message{
		{Role: "user", Content: "câu một"},
		{Role: "assistant", Content: "trả lời"},
		{Role: "user", Content: "câu hai"},
	})
	assert.Equal(t, []string{"câu hai", "câu một"}, turns)
}
