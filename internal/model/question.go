package model

import (
	"github.com/google/uuid"
)

// Difficulty enumerates question difficulty tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Question represents a single exam question.
// Invariant: CorrectAnswer is always a member of Options.
type Question struct {
	ID            uuid.UUID  `json:"id"`
	ExamID        uuid.UUID  `json:"exam_id"`
	QuestionText  string     `json:"question_text"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correct_answer"`
	Marks         float64    `json:"marks"`
	Difficulty    Difficulty `json:"difficulty"`
	Explanation   *string    `json:"explanation,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	OrderNum      int        `json:"order_num"`
}

// HasCorrectOption reports whether the correct answer appears in the options.
func (q *Question) HasCorrectOption() bool {
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return true
		}
	}
	return false
}

// AddQuestionRequest is the payload for adding a question to an exam.
type AddQuestionRequest struct {
	QuestionText  string   `json:"question_text" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,min=2,max=10,dive,required"`
	CorrectAnswer string   `json:"correct_answer" binding:"required,max=500"`
	Marks         float64  `json:"marks" binding:"omitempty,gt=0"`
	Difficulty    string   `json:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
	Explanation   *string  `json:"explanation" binding:"omitempty,max=2000"`
	Tags          []string `json:"tags" binding:"omitempty,max=10"`
	OrderNum      int      `json:"order_num" binding:"min=0"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing questions.
type ReplaceQuestionsRequest struct {
	Questions []AddQuestionRequest `json:"questions" binding:"dive"`
}

// QuestionBatchResult records the outcome of one item of a batch insert.
// Partial failure is reported per item, never rolled back.
type QuestionBatchResult struct {
	Index    int        `json:"index"`
	ID       *uuid.UUID `json:"id,omitempty"`
	Saved    bool       `json:"saved"`
	ErrorMsg string     `json:"error,omitempty"`
}
