package request

import (
	"encoding/json"

	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
)

type ClassifyRequest struct {
	Text               string   `json:"text"`
	Context            string   `json:"context"`
	Languages          []string `json:"languages,omitempty"`
	UsePatternMatching *bool    `json:"use_pattern_matching,omitempty"`
}

func ParseClassifyRequest(body []byte) (*ClassifyRequest, error) {
	err := parseObject(body, func(f fields) error {
		if err := f.requiredString("text"); err != nil {
			return err
		}
		if err := f.optionalString("context"); err != nil {
			return err
		}
		if err := f.optionalStringArray("languages"); err != nil {
			return err
		}
		return f.optionalBool("use_pattern_matching")
	})
	if err != nil {
		return nil, err
	}
	var req ClassifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, ErrInvalidBody
	}
	return &req, nil
}

// Options maps the request onto classifier options. Pattern matching is on
// unless the caller turns it off.
func (r *ClassifyRequest) Options() modcore.Options {
	usePatterns := true
	if r.UsePatternMatching != nil {
		usePatterns = *r.UsePatternMatching
	}
	return modcore.Options{
		Languages:          Languages(r.Languages),
		Context:            modcore.Context(r.Context),
		UsePatternMatching: usePatterns,
	}
}

func Languages(values []string) []modcore.Language {
	if len(values) == 0 {
		return nil
	}
	out := make([]modcore.Language, 0, len(values))
	for _, v := range values {
		out = append(out, modcore.Language(v))
	}
	return out
}
