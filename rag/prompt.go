package rag

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

// answerTemplate is the instruction template every generated answer goes
// through. The model is told to answer strictly from the supplied context
// and to admit when the context has no answer.
const answerTemplate = `Bạn là trợ lý AI chính thức của Trường Công nghệ thông tin và Truyền thông (SICT) - Đại học Công nghiệp Hà Nội.

## NHIỆM VỤ CHÍNH:
Trả lời câu hỏi của người dùng về SICT/HaUI một cách CHÍNH XÁC, TRỌNG TÂM và DỄ HIỂU.

## QUY TẮC BẮT BUỘC:
1. ĐỌC KỸ câu hỏi và XÁC ĐỊNH chính xác người dùng muốn biết điều gì
2. TÌM KIẾM thông tin liên quan trong Context bên dưới
3. TRẢ LỜI TRỰC TIẾP vào câu hỏi, không lan man
4. Nếu Context có thông tin → trích dẫn cụ thể (số liệu, tên, ngày tháng)
5. Nếu Context KHÔNG có thông tin → nói rõ "Tôi chưa có thông tin cụ thể về vấn đề này trong dữ liệu hiện tại."

## FORMAT TRẢ LỜI:
- Mở đầu: Trả lời ngắn gọn 1-2 câu vào trọng tâm
- Nội dung: Liệt kê chi tiết (nếu cần) bằng bullet points
- Kết thúc: Gợi ý thêm (nếu phù hợp)

## THÔNG TIN CƠ BẢN:
- SICT: Trường Công nghệ thông tin và Truyền thông, thuộc Đại học Công nghiệp Hà Nội
- HaUI: Đại học Công nghiệp Hà Nội (Hanoi University of Industry), thành lập 1898, trực thuộc Bộ Công Thương
- Website: https://sict.haui.edu.vn

---
CONTEXT (Dữ liệu tham khảo):
{{.context}}

---
LỊCH SỬ HỘI THOẠI:
{{.chat_history}}

---
CÂU HỎI CỦA NGƯỜI DÙNG: {{.question}}

TRẢ LỜI (bằng tiếng Việt, đúng trọng tâm):`

var answerPrompt = prompts.NewPromptTemplate(answerTemplate,
	[]string{"context", "chat_history", "question"})

const (
	// historyMaxTurns bounds how many recent exchanges reach the prompt.
	historyMaxTurns = 3
	// historyMaxRunes caps one rendered history message.
	historyMaxRunes = 200

	noHistory = "Chưa có lịch sử hội thoại."
)

// Message is one chat turn. Role is "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FormatChatHistory renders the most recent maxTurns exchanges for the
// prompt. Long messages are cut at historyMaxRunes runes with an ellipsis so
// prompt size stays bounded no matter what the conversation holds.
func FormatChatHistory(messages []Message, maxTurns int) string {
	if len(messages) == 0 {
		return noHistory
	}

	recent := messages
	if n := maxTurns * 2; len(recent) > n {
		recent = recent[len(recent)-n:]
	}

	lines := make([]string, 0, len(recent))
	for _, m := range recent {
		role := "Trợ lý"
		if m.Role == "user" {
			role = "Người dùng"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, truncateRunes(m.Content, historyMaxRunes)))
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func renderPrompt(contextText, history, question string) (string, error) {
	out, err := answerPrompt.Format(map[string]any{
		"context":      contextText,
		"chat_history": history,
		"question":     question,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return out, nil
}
