package moderation

import "fmt"

type Context string

const (
	ContextGeneral             Context = "general"
	ContextSportsShowcase      Context = "sports_showcase"
	ContextChat                Context = "chat"
	ContextServerAuthoritative Context = "server_authoritative"
)

// ParseContext maps a caller supplied tag to a Context. An empty tag means general.
func ParseContext(value string) (Context, error) {
	switch Context(value) {
	case "":
		return ContextGeneral, nil
	case ContextGeneral, ContextSportsShowcase, ContextChat, ContextServerAuthoritative:
		return Context(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownContext, value)
	}
}

// ParseCallerContext is ParseContext for untrusted callers. The server
// preset relaxes blocking to a risk score and is reserved for backend jobs.
func ParseCallerContext(value string) (Context, error) {
	ctx, err := ParseContext(value)
	if err != nil {
		return "", err
	}
	if ctx == ContextServerAuthoritative {
		return "", fmt.Errorf("%w: %q is not available to callers", ErrUnknownContext, value)
	}
	return ctx, nil
}

type Language string

const (
	LanguageEnglish Language = "english"
	LanguageHindi   Language = "hindi"
)

type Category string

const (
	CategoryPolitics   Category = "politics"
	CategoryNudity     Category = "nudity"
	CategoryViolence   Category = "violence"
	CategoryHateSpeech Category = "hate_speech"
	CategorySpam       Category = "spam"
	CategoryDrugs      Category = "drugs"
	CategoryProfanity  Category = "profanity"
)

type MatchType string

const (
	MatchDirectTerm     MatchType = "direct_term"
	MatchContextPattern MatchType = "context_pattern"
)

type Action string

const (
	ActionAllow Action = "allow"
	ActionWarn  Action = "warn"
	ActionFlag  Action = "flag"
	ActionBlock Action = "block"
)

// Violation is a single rule hit. Match holds the rule term, the category regex
// source, or the context pattern name.
type Violation struct {
	Category  Category  `json:"category"`
	Severity  Severity  `json:"severity"`
	Match     string    `json:"match"`
	Language  Language  `json:"language"`
	MatchType MatchType `json:"match_type"`
}

type Options struct {
	Languages          []Language
	Context            Context
	UsePatternMatching bool
}

type Result struct {
	IsClean     bool        `json:"is_clean"`
	Violations  []Violation `json:"violations"`
	MaxSeverity *Severity   `json:"max_severity"`
	Categories  []Category  `json:"categories"`
	RiskScore   int         `json:"risk_score"`
	Action      Action      `json:"action"`
	ShouldBlock bool        `json:"should_block"`
	ShouldWarn  bool        `json:"should_warn"`
	ShouldFlag  bool        `json:"should_flag"`
	Context     Context     `json:"context"`
}

// HasCategory reports whether any violation touched the category.
func (r *Result) HasCategory(category Category) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CategoryNames returns the touched categories as plain strings, for storage.
func (r *Result) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		names = append(names, string(c))
	}
	return names
}
