package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestAssistantValidation(t *testing.T) {
	svc := NewAssistantService(AIConfig{})
	ctx := context.Background()

	cases := []struct {
		input AnalyzeInput
		want  string
	}{
		{input: AnalyzeInput{Type: AnalysisTaskBreakdown}, want: "Text or data input is required"},
		{input: AnalyzeInput{Text: "hi"}, want: "Analysis type is required"},
		{input: AnalyzeInput{Type: "poetry", Text: "hi"}, want: "Invalid analysis type"},
	}
	for _, tc := range cases {
		_, err := svc.Analyze(ctx, tc.input)
		var inputErr *InputError
		if !errors.As(err, &inputErr) || inputErr.Message != tc.want {
			t.Fatalf("expected %q, got %v", tc.want, err)
		}
	}
}

func TestAssistantFallsBackWithoutKey(t *testing.T) {
	svc := NewAssistantService(AIConfig{})
	if svc.Enabled() {
		t.Fatal("assistant should be disabled without a key")
	}
	ctx := context.Background()

	improved, err := svc.Analyze(ctx, AnalyzeInput{Type: AnalysisJournalImprovement, Text: "today was ok"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	text, _ := improved["improved"].(string)
	if !strings.HasPrefix(text, "today was ok") || !strings.Contains(text, "OPENAI_API_KEY") {
		t.Fatalf("unexpected fallback text %q", text)
	}
	if improved["improved_text"] != improved["improved"] || improved["message"] != improved["improved"] {
		t.Fatalf("expected improved_text and message to mirror improved, got %+v", improved)
	}

	motivation, _ := svc.Analyze(ctx, AnalyzeInput{Type: AnalysisGoalMotivation, Data: map[string]interface{}{"title": "Run a marathon"}})
	if msg, _ := motivation["message"].(string); !strings.Contains(msg, `"Run a marathon"`) {
		t.Fatalf("unexpected motivation %+v", motivation)
	}

	mood, _ := svc.Analyze(ctx, AnalyzeInput{Type: AnalysisMoodAnalysis, Data: map[string]interface{}{"moods": []string{"happy"}}})
	if mood["detectedMood"] != "neutral" || mood["message"] != mood["insight"] {
		t.Fatalf("unexpected mood fallback %+v", mood)
	}
}

func TestAssistantTaskBreakdown(t *testing.T) {
	svc := NewAssistantService(AIConfig{APIKey: "sk-test"})
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, chatReply("1. 列出章节\n- 写初稿\n\n3) 校对")), nil
	}})

	result, err := svc.Analyze(context.Background(), AnalyzeInput{Type: AnalysisTaskBreakdown, Text: "写一本书"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	tasks, ok := result["tasks"].([]map[string]interface{})
	if !ok || len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %+v", result["tasks"])
	}
	if tasks[0]["task"] != "列出章节" || tasks[1]["task"] != "写初稿" || tasks[2]["id"] != 3 {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
	if result["originalGoal"] != "写一本书" {
		t.Fatalf("unexpected originalGoal %v", result["originalGoal"])
	}
}

func TestAssistantMoodAnalysisParsesJSON(t *testing.T) {
	svc := NewAssistantService(AIConfig{APIKey: "sk-test"})
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, chatReply("```json\n{\"detectedMood\":\"calm\",\"insight\":\"steady week\",\"recommendation\":\"keep walking\"}\n```")), nil
	}})

	result, err := svc.Analyze(context.Background(), AnalyzeInput{Type: AnalysisMoodAnalysis, Text: "felt fine most days"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result["detectedMood"] != "calm" || result["insight"] != "steady week" || result["message"] != "steady week" {
		t.Fatalf("unexpected mood analysis %+v", result)
	}
}

func TestAssistantFallsBackOnUpstreamError(t *testing.T) {
	svc := NewAssistantService(AIConfig{APIKey: "sk-test"})
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}})

	result, err := svc.Analyze(context.Background(), AnalyzeInput{Type: AnalysisTaskBreakdown, Text: "学吉他"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	tasks, _ := result["tasks"].([]map[string]interface{})
	if len(tasks) != 1 || tasks[0]["priority"] != "high" {
		t.Fatalf("expected canned fallback task, got %+v", result)
	}
}
