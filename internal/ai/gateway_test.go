package ai

import (
	"context"
	"testing"
)

// A zero-value Client has no model configured, so every Generate call returns
// ErrUnavailable and the gateway serves its static payloads.
func offlineGateway() *Gateway {
	return NewGateway(&Client{})
}

func TestGeneratedQuestionValid(t *testing.T) {
	q := GeneratedQuestion{
		Question:      "What is the capital of Bangladesh?",
		Options:       []string{"Dhaka", "Rajshahi", "Khulna", "Barishal"},
		CorrectAnswer: "Dhaka",
	}
	if !q.Valid() {
		t.Error("expected question to be valid")
	}

	q.CorrectAnswer = "Comilla"
	if q.Valid() {
		t.Error("expected answer outside the options to be invalid")
	}

	q.CorrectAnswer = "Dhaka"
	q.Options = []string{"Dhaka"}
	if q.Valid() {
		t.Error("expected a single-option question to be invalid")
	}

	q.Options = []string{"Dhaka", "Rajshahi"}
	q.Question = "  "
	if q.Valid() {
		t.Error("expected a blank question to be invalid")
	}
}

func TestGenerateQuestionsFallback(t *testing.T) {
	questions, err := offlineGateway().GenerateQuestions(context.Background(), "Physics", "Optics", "MEDIUM", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) == 0 {
		t.Fatal("expected at least one fallback question")
	}
	for _, q := range questions {
		if !q.Valid() {
			t.Errorf("fallback question is invalid: %+v", q)
		}
	}
}

func TestAssessQualityFallback(t *testing.T) {
	report, err := offlineGateway().AssessQuality(context.Background(), "What is velocity?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Score != 70 {
		t.Errorf("fallback score = %v, want 70", report.Score)
	}
	if len(report.Issues) == 0 {
		t.Error("fallback report should flag that analysis was unavailable")
	}
}

func TestCheckPlagiarismFallback(t *testing.T) {
	report, err := offlineGateway().CheckPlagiarism(context.Background(), "some essay text", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Plagiarized || report.Confidence != 0 {
		t.Errorf("fallback report = %+v, want not plagiarized with zero confidence", report)
	}
}

func TestAnalyzeSentimentFallback(t *testing.T) {
	report, err := offlineGateway().AnalyzeSentiment(context.Background(), "the exam was fine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Sentiment != "neutral" || report.Score != 0 {
		t.Errorf("fallback report = %+v, want neutral with zero score", report)
	}
}

func TestTranslateFallbackEchoes(t *testing.T) {
	tr, err := offlineGateway().Translate(context.Background(), "ভৌত বিজ্ঞান", "bn", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.TranslatedText != "ভৌত বিজ্ঞান" {
		t.Errorf("fallback translation = %q, want the original text", tr.TranslatedText)
	}
	if tr.SourceLang != "bn" || tr.TargetLang != "en" {
		t.Errorf("language pair = %s/%s, want bn/en", tr.SourceLang, tr.TargetLang)
	}
}

func TestSynthesizeOffline(t *testing.T) {
	desc, err := offlineGateway().Synthesize(context.Background(), "Chapter one, motion.", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Voice != "bn-IN-Standard-A" {
		t.Errorf("default voice = %q", desc.Voice)
	}
	if desc.Text != "Chapter one, motion." {
		t.Errorf("text = %q, want the input unchanged when the model is offline", desc.Text)
	}
	if desc.Format != "mp3" {
		t.Errorf("format = %q, want mp3", desc.Format)
	}
}

func TestTranscribeFallback(t *testing.T) {
	tr, err := offlineGateway().Transcribe(context.Background(), "https://cdn.example.com/a.mp3", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Language != "bn" {
		t.Errorf("language = %q, want the bn default", tr.Language)
	}
	if tr.Text != "" || tr.Confidence != 0 {
		t.Errorf("fallback transcript = %+v, want empty", tr)
	}
}
