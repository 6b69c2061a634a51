package rag

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"hauibot/entity"
	"hauibot/faq"
	"hauibot/pkg/llm"
	"hauibot/repository"
	"hauibot/rewrite"
	"hauibot/textnorm"
)

// EventType tags one item of a streamed answer.
type EventType string

const (
	EventToken       EventType = "token"
	EventSources     EventType = "sources"
	EventSuggestions EventType = "suggestions"
	EventError       EventType = "error"
)

// Event is one streamed answer item. Exactly one payload field is set,
// matching Type.
type Event struct {
	Type        EventType `json:"type"`
	Token       string    `json:"token,omitempty"`
	Sources     []Source  `json:"sources,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Message     string    `json:"message,omitempty"`
}

// EmitFunc receives events in stream order. A non-nil return aborts the
// answer.
type EmitFunc func(Event) error

// Retriever is the search stage of the answer pipeline.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]repository.ScoredChunk, error)
}

const (
	// faqStreamRunes is the slice size canned FAQ answers are streamed in.
	faqStreamRunes = 40
	// suggestionCount caps the follow-up questions emitted after an answer.
	suggestionCount = 3

	msgGenerationFailed = "Xin lỗi, tôi gặp sự cố khi tạo câu trả lời. Bạn vui lòng thử lại."
	msgNoData           = "Hệ thống chưa có dữ liệu. Vui lòng chạy cập nhật dữ liệu trước khi hỏi."
)

// Synthesizer runs the full answer pipeline: normalize the query, try the
// FAQ table, rewrite, retrieve, filter and enrich the context, then stream a
// generated answer followed by sources and suggestions.
type Synthesizer struct {
	normalizer *textnorm.Processor
	faq        *faq.Handler
	rewriter   *rewrite.Rewriter
	filter     *rewrite.ContextFilter
	extractor  *entity.Extractor
	retriever  Retriever
	generator  llm.Generator
	k          int
	logger     *zap.Logger
}

func NewSynthesizer(retriever Retriever, generator llm.Generator, k int, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		normalizer: textnorm.NewProcessor(),
		faq:        faq.NewHandler(),
		rewriter:   rewrite.NewRewriter(),
		filter:     rewrite.NewContextFilter(),
		extractor:  entity.NewExtractor(),
		retriever:  retriever,
		generator:  generator,
		k:          k,
		logger:     logger,
	}
}

// Answer streams the answer to query through emit: token events first, then
// one sources event, then one suggestions event. A confident FAQ match
// short-circuits retrieval and generation entirely; its canned answer is
// still streamed in slices so clients see the same event shape either way.
func (s *Synthesizer) Answer(ctx context.Context, query string, history []Message, emit EmitFunc) error {
	normalized := s.normalizer.Normalize(query)

	if hit := s.faq.Find(normalized); hit.Found {
		s.logger.Info("faq hit",
			zap.String("question", hit.Entry.Question),
			zap.Float64("confidence", hit.Confidence))
		if err := streamInSlices(hit.Entry.Answer, faqStreamRunes, emit); err != nil {
			return err
		}
		if err := emit(Event{Type: EventSources, Sources: []Source{}}); err != nil {
			return err
		}
		return emit(Event{Type: EventSuggestions, Suggestions: capStrings(hit.Suggestions, suggestionCount)})
	}

	// The rewrite informs the prompt; vector search still runs on the
	// normalized query so appended hint text cannot skew the embedding.
	rewritten := s.rewriter.RewriteWithContext(normalized, priorUserTurns(history))
	if rewritten.WasModified {
		s.logger.Debug("query rewritten", zap.String("rewritten", rewritten.Rewritten))
	}

	hits, err := s.retriever.Retrieve(ctx, normalized, s.k)
	if err != nil {
		msg := msgGenerationFailed
		if errors.Is(err, ErrNotInitialized) || errors.Is(err, ErrCorpusMissing) {
			msg = msgNoData
		}
		if emitErr := emit(Event{Type: EventError, Message: msg}); emitErr != nil {
			return emitErr
		}
		return err
	}

	hits = s.filterHits(normalized, hits)

	contextText := JoinContext(chunkTexts(hits))
	if ents := s.extractor.ExtractAll(contextText); ents.HasEntities() {
		contextText += "\n\n" + ents.FormatForResponse()
	}
	if rewritten.IntentClarification != "" {
		contextText += fmt.Sprintf("\n\n[Lưu ý khi trả lời: %s]", rewritten.IntentClarification)
	}

	prompt, err := renderPrompt(contextText, FormatChatHistory(history, historyMaxTurns), query)
	if err != nil {
		if emitErr := emit(Event{Type: EventError, Message: msgGenerationFailed}); emitErr != nil {
			return emitErr
		}
		return err
	}

	if _, err := s.generator.Stream(ctx, prompt, func(chunk string) error {
		return emit(Event{Type: EventToken, Token: chunk})
	}); err != nil {
		if emitErr := emit(Event{Type: EventError, Message: msgGenerationFailed}); emitErr != nil {
			return emitErr
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := emit(Event{Type: EventSources, Sources: CollectSources(hits)}); err != nil {
		return err
	}
	return emit(Event{Type: EventSuggestions, Suggestions: s.faq.RelatedQuestions(normalized, suggestionCount)})
}

// filterHits demotes or drops external-competition documents when the query
// asks specifically about school-organized events.
func (s *Synthesizer) filterHits(query string, hits []repository.ScoredChunk) []repository.ScoredChunk {
	kept := s.filter.FilterTexts(query, chunkTexts(hits), rewrite.DropThreshold)
	out := make([]repository.ScoredChunk, 0, len(kept))
	for _, i := range kept {
		out = append(out, hits[i])
	}
	if len(out) < len(hits) {
		s.logger.Debug("context filter dropped documents",
			zap.Int("dropped", len(hits)-len(out)))
	}
	return out
}

func streamInSlices(text string, size int, emit EmitFunc) error {
	runes := []rune(text)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		if err := emit(Event{Type: EventToken, Token: string(runes[start:end])}); err != nil {
			return err
		}
	}
	return nil
}

// priorUserTurns returns the user's earlier messages newest first, the order
// the rewriter expects.
func priorUserTurns(history []Message) []string {
	var turns []string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			turns = append(turns, history[i].Content)
		}
	}
	return turns
}

func capStrings(ss []string, n int) []string {
	if len(ss) > n {
		return ss[:n]
	}
	return ss
}
