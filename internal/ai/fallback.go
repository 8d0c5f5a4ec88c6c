package ai

import "fmt"

// Static payloads served when the model is unavailable or returns
// unparseable text. Availability over correctness: clients always get a
// well-formed response.

func fallbackQuestions(subject, difficulty string) []GeneratedQuestion {
	if difficulty == "" {
		difficulty = "MEDIUM"
	}
	return []GeneratedQuestion{
		{
			Question:      fmt.Sprintf("Which of the following is a fundamental concept in %s?", subject),
			Options:       []string{"Concept A", "Concept B", "Concept C", "Concept D"},
			CorrectAnswer: "Concept A",
			Explanation:   "Placeholder question generated while the AI service was unavailable.",
			Difficulty:    difficulty,
		},
	}
}

func fallbackQuality() *QualityReport {
	return &QualityReport{
		Score:       70,
		Issues:      []string{"Automated quality analysis unavailable"},
		Suggestions: []string{"Review the question manually"},
	}
}

func fallbackPlagiarism() *PlagiarismReport {
	return &PlagiarismReport{
		Plagiarized: false,
		Confidence:  0,
		Matches:     []string{},
	}
}

func fallbackSentiment() *SentimentReport {
	return &SentimentReport{
		Sentiment: "neutral",
		Score:     0,
		Emotions:  []string{},
	}
}

func fallbackTranslation(text, sourceLang, targetLang string) *Translation {
	return &Translation{
		TranslatedText: text,
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
	}
}

func fallbackTranscript(language string) *Transcript {
	return &Transcript{
		Text:       "",
		Confidence: 0,
		Language:   language,
	}
}
