package chunking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	calls     int
	failFirst int
}

func (f *fakeEmbedder) GetEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.calls <= f.failFirst {
		return nil, errors.New("embedding service unavailable")
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i])), 1}
	}
	return out, nil
}

func TestChunkTextSplitsAndEmbeds(t *testing.T) {
	embed := &fakeEmbedder{}
	c := NewRecursiveCharacter(embed, 50, 10)
	c.baseDelay = 0

	text := strings.Repeat("Thông báo tuyển sinh năm 2025. ", 20)
	chunks, err := c.ChunkText(context.Background(), text)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1, "long text must split into multiple chunks")

	for _, ch := range chunks {
		assert.NotEmpty(t, ch.Text)
		assert.Len(t, ch.Vector, 2)
		assert.LessOrEqual(t, utf8.RuneCountInString(ch.Text), 55)
	}
}

func TestChunkTextRetriesTransientFailures(t *testing.T) {
	embed := &fakeEmbedder{failFirst: 2}
	c := NewRecursiveCharacter(embed, 1000, 0)
	c.baseDelay = 0

	chunks, err := c.ChunkText(context.Background(), "văn bản ngắn")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 3, embed.calls, "two failures then one success")
}

func TestChunkTextGivesUpAfterMaxRetries(t *testing.T) {
	embed := &fakeEmbedder{failFirst: 100}
	c := NewRecursiveCharacter(embed, 1000, 0)
	c.baseDelay = 0
	c.maxRetries = 2

	_, err := c.ChunkText(context.Background(), "văn bản ngắn")
	assert.ErrorContains(t, err, "embed failed after retries")
	assert.Equal(t, 3, embed.calls)
}
