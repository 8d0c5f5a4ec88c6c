package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceRe  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	objectRe = regexp.MustCompile(`(?s)\{.*\}`)
	arrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
)

// ExtractJSON pulls the outermost JSON object out of free-form model output.
// Models frequently wrap JSON in markdown fences or prose, so extraction is
// permissive: strip fences first, then take the widest {...} span.
func ExtractJSON(raw string) (string, bool) {
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}
	match := objectRe.FindString(raw)
	if match == "" {
		return "", false
	}
	return strings.TrimSpace(match), true
}

// ExtractJSONArray is the array counterpart of ExtractJSON.
func ExtractJSONArray(raw string) (string, bool) {
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}
	match := arrayRe.FindString(raw)
	if match == "" {
		return "", false
	}
	return strings.TrimSpace(match), true
}

// DecodeObject extracts and unmarshals a JSON object into v. It returns false
// when no parseable object is present, so the caller can fall back.
func DecodeObject(raw string, v any) bool {
	text, ok := ExtractJSON(raw)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(text), v) == nil
}
