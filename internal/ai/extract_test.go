package ai

import "testing"

func TestExtractJSONFromFence(t *testing.T) {
	raw := "Sure, here is the result:\n```json\n{\"score\": 85}\n```\nLet me know if you need more."

	text, ok := ExtractJSON(raw)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if text != `{"score": 85}` {
		t.Errorf("extracted = %q", text)
	}
}

func TestExtractJSONFromProse(t *testing.T) {
	raw := `The analysis shows {"plagiarized": false, "confidence": 0.1} overall.`

	text, ok := ExtractJSON(raw)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if text != `{"plagiarized": false, "confidence": 0.1}` {
		t.Errorf("extracted = %q", text)
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	if _, ok := ExtractJSON("no json here"); ok {
		t.Error("expected extraction to fail on plain text")
	}
}

func TestExtractJSONArray(t *testing.T) {
	raw := "```json\n[{\"question\": \"Q1\"}, {\"question\": \"Q2\"}]\n```"

	text, ok := ExtractJSONArray(raw)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if text != `[{"question": "Q1"}, {"question": "Q2"}]` {
		t.Errorf("extracted = %q", text)
	}
}

func TestExtractJSONArrayNoArray(t *testing.T) {
	if _, ok := ExtractJSONArray(`{"not": "an array"}`); ok {
		t.Error("expected extraction to fail without an array")
	}
}

func TestDecodeObject(t *testing.T) {
	var report QualityReport
	raw := "```\n{\"score\": 92, \"issues\": [], \"suggestions\": [\"tighten wording\"]}\n```"

	if !DecodeObject(raw, &report) {
		t.Fatal("expected decode to succeed")
	}
	if report.Score != 92 || len(report.Suggestions) != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestDecodeObjectMalformed(t *testing.T) {
	var report QualityReport
	if DecodeObject(`{"score": not-a-number}`, &report) {
		t.Error("expected decode to fail on malformed JSON")
	}
}
