package service

import (
	"strings"
	"unicode/utf8"

	"github.com/focusboard/internal/logger"
)

const maxAILogSnippetRunes = 512

// logAIExchange 以 debug 级别输出 AI 请求与响应的摘要，方便排查模型行为。
func logAIExchange(kind, phase, content string) {
	trimmed := strings.TrimSpace(content)
	runeCount := utf8.RuneCountInString(trimmed)
	snippet := trimmed
	if runeCount > maxAILogSnippetRunes {
		snippet = string([]rune(trimmed)[:maxAILogSnippetRunes]) + "…(truncated)"
	}
	logger.Debug("ai exchange", "kind", kind, "phase", phase, "runes", runeCount, "content", snippet)
}
