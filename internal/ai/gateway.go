package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Gateway exposes the AI feature endpoints as typed operations. Every
// operation follows the same shape: build a prompt, call the model once,
// extract a JSON payload from the free-text response, and fall back to a
// static default payload when extraction or parsing fails. Only an upstream
// call failure is surfaced as an error.
type Gateway struct {
	client *Client
}

// NewGateway creates a Gateway around a Gemini client.
func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

// GeneratedQuestion is one model-produced MCQ candidate.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// Valid reports whether the correct answer appears among the options.
func (q GeneratedQuestion) Valid() bool {
	if strings.TrimSpace(q.Question) == "" || len(q.Options) < 2 {
		return false
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return true
		}
	}
	return false
}

// GenerateQuestions asks the model for MCQs on a subject/topic. Items whose
// correct answer is not among the options are dropped rather than failing the
// whole batch.
func (g *Gateway) GenerateQuestions(ctx context.Context, subject, topic, difficulty string, count int) ([]GeneratedQuestion, error) {
	if count <= 0 {
		count = 5
	}

	prompt := fmt.Sprintf(`You are an exam content writer for Bangladeshi HSC/SSC students.
Generate %d multiple-choice questions on the subject "%s", topic "%s", difficulty "%s".
Respond with ONLY a JSON array, each element:
{"question": "...", "options": ["...","...","...","..."], "correct_answer": "...", "explanation": "...", "difficulty": "%s"}
The correct_answer must be copied verbatim from the options.`,
		count, subject, topic, difficulty, difficulty)

	raw, err := g.client.Generate(ctx, prompt)
	if err == ErrUnavailable {
		return fallbackQuestions(subject, difficulty), nil
	}
	if err != nil {
		return nil, err
	}

	text, ok := ExtractJSONArray(raw)
	if !ok {
		return fallbackQuestions(subject, difficulty), nil
	}
	var candidates []GeneratedQuestion
	if json.Unmarshal([]byte(text), &candidates) != nil {
		return fallbackQuestions(subject, difficulty), nil
	}

	questions := make([]GeneratedQuestion, 0, len(candidates))
	for _, q := range candidates {
		if q.Valid() {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return fallbackQuestions(subject, difficulty), nil
	}
	return questions, nil
}

// QualityReport scores a single question's quality.
type QualityReport struct {
	Score       float64  `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// AssessQuality scores one question text on a 0-100 scale.
func (g *Gateway) AssessQuality(ctx context.Context, question string) (*QualityReport, error) {
	prompt := fmt.Sprintf(`Evaluate the quality of this exam question for clarity, correctness and difficulty calibration.
Question: %q
Respond with ONLY a JSON object: {"score": 0-100, "issues": ["..."], "suggestions": ["..."]}`, question)

	raw, err := g.client.Generate(ctx, prompt)
	if err == ErrUnavailable {
		return fallbackQuality(), nil
	}
	if err != nil {
		return nil, err
	}

	report := &QualityReport{}
	if !DecodeObject(raw, report) {
		return fallbackQuality(), nil
	}
	if report.Score < 0 {
		report.Score = 0
	}
	if report.Score > 100 {
		report.Score = 100
	}
	return report, nil
}

// PlagiarismReport is the verdict for a plagiarism check.
type PlagiarismReport struct {
	Plagiarized bool     `json:"plagiarized"`
	Confidence  float64  `json:"confidence"`
	Matches     []string `json:"matches"`
}

// CheckPlagiarism compares text against an optional reference.
func (g *Gateway) CheckPlagiarism(ctx context.Context, text, reference string) (*PlagiarismReport, error) {
	var sb strings.Builder
	sb.WriteString("Analyze the following text for plagiarism.\n")
	if reference != "" {
		sb.WriteString("Compare it against this reference text:\n---\n")
		sb.WriteString(reference)
		sb.WriteString("\n---\n")
	}
	sb.WriteString("Text:\n---\n")
	sb.WriteString(text)
	sb.WriteString("\n---\nRespond with ONLY a JSON object: {\"plagiarized\": true|false, \"confidence\": 0-1, \"matches\": [\"...\"]}")

	raw, err := g.client.Generate(ctx, sb.String())
	if err == ErrUnavailable {
		return fallbackPlagiarism(), nil
	}
	if err != nil {
		return nil, err
	}

	report := &PlagiarismReport{}
	if !DecodeObject(raw, report) {
		return fallbackPlagiarism(), nil
	}
	return report, nil
}

// SentimentReport is the result of sentiment analysis.
type SentimentReport struct {
	Sentiment string   `json:"sentiment"`
	Score     float64  `json:"score"`
	Emotions  []string `json:"emotions"`
}

// AnalyzeSentiment classifies the sentiment of free text, typically student
// feedback.
func (g *Gateway) AnalyzeSentiment(ctx context.Context, text string) (*SentimentReport, error) {
	prompt := fmt.Sprintf(`Classify the sentiment of this text as positive, neutral or negative.
Text: %q
Respond with ONLY a JSON object: {"sentiment": "positive|neutral|negative", "score": -1 to 1, "emotions": ["..."]}`, text)

	raw, err := g.client.Generate(ctx, prompt)
	if err == ErrUnavailable {
		return fallbackSentiment(), nil
	}
	if err != nil {
		return nil, err
	}

	report := &SentimentReport{}
	if !DecodeObject(raw, report) {
		return fallbackSentiment(), nil
	}
	return report, nil
}

// Translation holds a translated text payload.
type Translation struct {
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
}

// Translate converts text between languages, Bangla and English being the
// primary pair.
func (g *Gateway) Translate(ctx context.Context, text, sourceLang, targetLang string) (*Translation, error) {
	prompt := fmt.Sprintf(`Translate the following text from %s to %s. Preserve meaning and register.
Text: %q
Respond with ONLY a JSON object: {"translated_text": "..."}`, sourceLang, targetLang, text)

	raw, err := g.client.Generate(ctx, prompt)
	if err == ErrUnavailable {
		return fallbackTranslation(text, sourceLang, targetLang), nil
	}
	if err != nil {
		return nil, err
	}

	t := &Translation{SourceLang: sourceLang, TargetLang: targetLang}
	if !DecodeObject(raw, t) || t.TranslatedText == "" {
		return fallbackTranslation(text, sourceLang, targetLang), nil
	}
	t.SourceLang = sourceLang
	t.TargetLang = targetLang
	return t, nil
}

// SpeechDescriptor describes a synthesized-audio result. Audio is not
// generated locally; the descriptor tells the client what to request from the
// speech provider.
type SpeechDescriptor struct {
	Provider string `json:"provider"`
	Voice    string `json:"voice"`
	Text     string `json:"text"`
	Format   string `json:"format"`
}

// Synthesize builds a text-to-speech descriptor. The text is normalized for
// reading aloud via the model when available.
func (g *Gateway) Synthesize(ctx context.Context, text, voice string) (*SpeechDescriptor, error) {
	if voice == "" {
		voice = "bn-IN-Standard-A"
	}
	desc := &SpeechDescriptor{Provider: "gemini", Voice: voice, Text: text, Format: "mp3"}
	if !g.client.Available() {
		return desc, nil
	}

	prompt := fmt.Sprintf(`Rewrite this text so a text-to-speech engine reads it naturally (expand abbreviations, spell out numbers).
Text: %q
Respond with ONLY a JSON object: {"text": "..."}`, text)

	raw, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var normalized struct {
		Text string `json:"text"`
	}
	if DecodeObject(raw, &normalized) && normalized.Text != "" {
		desc.Text = normalized.Text
	}
	return desc, nil
}

// Transcript is the result of a speech-to-text request.
type Transcript struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// Transcribe produces a transcript payload for an audio reference. The model
// receives the reference URL; binary audio upload is out of scope.
func (g *Gateway) Transcribe(ctx context.Context, audioURL, language string) (*Transcript, error) {
	if language == "" {
		language = "bn"
	}

	prompt := fmt.Sprintf(`Transcribe the audio at %q (language %s).
Respond with ONLY a JSON object: {"text": "...", "confidence": 0-1}`, audioURL, language)

	raw, err := g.client.Generate(ctx, prompt)
	if err == ErrUnavailable {
		return fallbackTranscript(language), nil
	}
	if err != nil {
		return nil, err
	}

	t := &Transcript{Language: language}
	if !DecodeObject(raw, t) || t.Text == "" {
		return fallbackTranscript(language), nil
	}
	t.Language = language
	return t, nil
}
