package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/focusboard/internal/logger"
)

// 支持的分析类型
const (
	AnalysisJournalImprovement = "journal_improvement"
	AnalysisTaskBreakdown      = "task_breakdown"
	AnalysisGoalMotivation     = "goal_motivation"
	AnalysisMoodAnalysis       = "mood_analysis"
)

const (
	assistantMaxTokens      = 400
	assistantTemperature    = 0.6
	maxAssistantInputRunes  = 4000
	assistantDisabledNotice = "OpenAI integration disabled. Configure OPENAI_API_KEY to enable"
)

// AnalyzeInput 是 /api/ai/analyze 的请求内容
type AnalyzeInput struct {
	Type string
	Text string
	Data map[string]interface{}
}

// AssistantService 调用 OpenAI 兼容接口做写作润色、任务拆解等，未配置密钥或调用失败时回退到内置回复
type AssistantService struct {
	client *aiChatClient
}

// NewAssistantService 构造 AssistantService
func NewAssistantService(cfg AIConfig) *AssistantService {
	return &AssistantService{client: newAIChatClient(cfg)}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *AssistantService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// Enabled 表示是否配置了模型接口
func (s *AssistantService) Enabled() bool {
	return s.client.enabled()
}

// Analyze 返回与分析类型对应的字段，并补充 message 与 improved_text 两个通用字段
func (s *AssistantService) Analyze(ctx context.Context, input AnalyzeInput) (map[string]interface{}, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" && len(input.Data) == 0 {
		return nil, invalidInput("Text or data input is required")
	}
	kind := strings.TrimSpace(input.Type)
	if kind == "" {
		return nil, invalidInput("Analysis type is required")
	}

	var result map[string]interface{}
	switch kind {
	case AnalysisJournalImprovement:
		result = s.improveWriting(ctx, text)
	case AnalysisTaskBreakdown:
		result = s.breakDownTask(ctx, text)
	case AnalysisGoalMotivation:
		if text == "" {
			text = stringField(input.Data, "title")
		}
		result = s.motivate(ctx, text)
	case AnalysisMoodAnalysis:
		result = s.analyzeMood(ctx, text, input.Data)
	default:
		return nil, invalidInput("Invalid analysis type")
	}

	result["message"] = firstPresent(result, "message", "improved", "tasks", "insight")
	if improved, ok := result["improved"]; ok {
		result["improved_text"] = improved
	}
	return result, nil
}

func (s *AssistantService) improveWriting(ctx context.Context, text string) map[string]interface{} {
	content, err := s.ask(ctx, "JOURNAL", "You help people polish personal journal entries. Keep their voice, fix grammar, and improve clarity. Reply with the improved entry only.", text)
	if err != nil {
		return map[string]interface{}{
			"original": text,
			"improved": fmt.Sprintf("%s\n\n[AI Enhancement: %s AI improvements]", text, assistantDisabledNotice),
		}
	}
	return map[string]interface{}{"original": text, "improved": content}
}

func (s *AssistantService) breakDownTask(ctx context.Context, text string) map[string]interface{} {
	content, err := s.ask(ctx, "TASKS", "Break the user's goal into 3 to 7 concrete, actionable tasks. Reply with one task per line, no numbering.", text)
	if err != nil {
		return map[string]interface{}{
			"originalGoal": text,
			"tasks": []map[string]interface{}{
				{"id": 1, "task": "Configure OpenAI API key to enable AI task breakdown", "priority": "high"},
			},
		}
	}

	tasks := make([]map[string]interface{}, 0)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•0123456789.)"))
		if line == "" {
			continue
		}
		tasks = append(tasks, map[string]interface{}{"id": len(tasks) + 1, "task": line, "priority": "medium"})
	}
	return map[string]interface{}{"originalGoal": text, "tasks": tasks}
}

func (s *AssistantService) motivate(ctx context.Context, goal string) map[string]interface{} {
	content, err := s.ask(ctx, "GOAL", "Write a short, warm, specific motivational message (two sentences at most) for someone working on the goal below.", goal)
	if err != nil {
		return map[string]interface{}{
			"message": fmt.Sprintf("You've got this! Your goal of %q is achievable. Stay focused and keep moving forward!", goal),
		}
	}
	return map[string]interface{}{"message": content}
}

type moodInsight struct {
	DetectedMood   string `json:"detectedMood"`
	Insight        string `json:"insight"`
	Recommendation string `json:"recommendation"`
}

func (s *AssistantService) analyzeMood(ctx context.Context, text string, data map[string]interface{}) map[string]interface{} {
	fallback := map[string]interface{}{
		"detectedMood":   "neutral",
		"insight":        assistantDisabledNotice + " AI mood analysis.",
		"recommendation": "Continue tracking your mood patterns for better self-awareness.",
	}

	prompt := text
	if len(data) > 0 {
		encoded, err := json.Marshal(data)
		if err == nil {
			prompt = strings.TrimSpace(prompt + "\n" + string(encoded))
		}
	}

	content, err := s.ask(ctx, "MOOD", `Analyze the mood data below. Reply with JSON only: {"detectedMood": "...", "insight": "...", "recommendation": "..."}`, prompt)
	if err != nil {
		return fallback
	}

	var parsed moodInsight
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &parsed); err != nil || parsed.Insight == "" {
		return map[string]interface{}{
			"detectedMood":   "neutral",
			"insight":        content,
			"recommendation": fallback["recommendation"],
		}
	}
	if parsed.DetectedMood == "" {
		parsed.DetectedMood = "neutral"
	}
	return map[string]interface{}{
		"detectedMood":   parsed.DetectedMood,
		"insight":        parsed.Insight,
		"recommendation": parsed.Recommendation,
	}
}

// ask 调用模型，失败时记录日志并返回错误，由调用方回退
func (s *AssistantService) ask(ctx context.Context, kind, systemPrompt, userPrompt string) (string, error) {
	userPrompt = truncateRunes(strings.TrimSpace(userPrompt), maxAssistantInputRunes)
	logAIExchange(kind, "prompt", userPrompt)

	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    assistantMaxTokens,
		Temperature:  assistantTemperature,
	})
	if err != nil {
		if !errors.Is(err, ErrAIAPIKeyMissing) {
			logger.Warn("ai request failed, using fallback", "kind", kind, "err", err)
		}
		return "", err
	}
	if result.Content == "" {
		return "", errors.New("empty ai response")
	}

	logAIExchange(kind, "response", result.Content)
	return result.Content, nil
}

func truncateRunes(input string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(input)
	if len(runes) <= limit {
		return input
	}
	return string(runes[:limit])
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func stringField(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	value, _ := data[key].(string)
	return strings.TrimSpace(value)
}

func firstPresent(values map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if value, ok := values[key]; ok && value != nil {
			return value
		}
	}
	return nil
}
