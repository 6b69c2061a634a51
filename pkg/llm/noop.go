package llm

import "context"

// noopMessage is served when no generative model is configured.
const noopMessage = "Xin lỗi, hệ thống trả lời hiện chưa sẵn sàng. Bạn vui lòng thử lại sau."

// Noop is a Generator that returns a fixed apology. It keeps the service
// answering FAQ and retrieval traffic when no model credentials are set.
type Noop struct{}

func (Noop) Call(ctx context.Context, prompt string) (string, error) {
	return noopMessage, nil
}

func (Noop) Stream(ctx context.Context, prompt string, fn func(chunk string) error) (string, error) {
	if err := fn(noopMessage); err != nil {
		return "", err
	}
	return noopMessage, nil
}
