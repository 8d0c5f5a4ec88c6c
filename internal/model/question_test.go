package model

import "testing"

func TestHasCorrectOption(t *testing.T) {
	q := Question{
		Options:       []string{"Dhaka", "Chittagong", "Sylhet"},
		CorrectAnswer: "Dhaka",
	}
	if !q.HasCorrectOption() {
		t.Error("expected correct answer to be found in options")
	}

	q.CorrectAnswer = "Khulna"
	if q.HasCorrectOption() {
		t.Error("expected missing answer to be rejected")
	}

	q.Options = nil
	if q.HasCorrectOption() {
		t.Error("expected empty options to be rejected")
	}
}
