package openai

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/manaiger/manaiger/internal/common"
)

var ErrUnparseable = errors.New("no candidate json found in completion")

// ParseCandidates recovers a candidate array from raw model output. The
// model is told to return bare JSON but routinely wraps it in markdown
// fences, prose, or an envelope object, so every fallback here has been
// seen in the wild. This is the only place raw completion text is ever
// inspected.
func ParseCandidates(raw string) ([]*common.BrandCandidate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrUnparseable
	}

	if out, err := decodeCandidates(raw); err == nil {
		return out, nil
	}

	// ```json ... ``` fences
	if stripped := stripFences(raw); stripped != raw {
		if out, err := decodeCandidates(stripped); err == nil {
			return out, nil
		}
		raw = stripped
	}

	// First [ to last ]
	if start, end := strings.Index(raw, "["), strings.LastIndex(raw, "]"); start >= 0 && end > start {
		if out, err := decodeCandidates(raw[start : end+1]); err == nil {
			return out, nil
		}
	}

	// A single object, or an envelope like {"matches": [...]}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		obj := raw[start : end+1]

		var envelope map[string]json.RawMessage
		if json.Unmarshal([]byte(obj), &envelope) == nil {
			for _, key := range []string{"matches", "brands", "candidates", "results"} {
				if inner, ok := envelope[key]; ok {
					if out, err := decodeCandidates(string(inner)); err == nil {
						return out, nil
					}
				}
			}
		}

		var single common.BrandCandidate
		if json.Unmarshal([]byte(obj), &single) == nil && single.BrandName != "" {
			return []*common.BrandCandidate{&single}, nil
		}
	}

	return nil, ErrUnparseable
}

func decodeCandidates(s string) ([]*common.BrandCandidate, error) {
	var out []*common.BrandCandidate
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrUnparseable
	}
	return out, nil
}

func stripFences(s string) string {
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		// Drop the language tag on the opening fence
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && len(strings.TrimSpace(s[:nl])) <= 8 {
			s = s[nl+1:]
		}
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}
