package moderation

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Classifier scores text against a compiled RuleSet. It holds no mutable
// state and may be shared by any number of goroutines.
type Classifier struct {
	rules *RuleSet
}

func NewClassifier(logger *logrus.Logger, cfg RuleConfig) (*Classifier, error) {
	rules, err := CompileRules(cfg)
	if err != nil {
		return nil, err
	}
	for _, lang := range rules.LanguagesWithoutWhitelist(ContextSportsShowcase) {
		logger.WithField("language", lang).
			Warn("no sports_showcase whitelist for language, showcase content will be matched without exemptions")
	}
	logger.WithFields(logrus.Fields{
		"categories":       len(rules.categories),
		"context_patterns": len(rules.contextPatterns),
		"languages":        rules.languages,
	}).Info("moderation rules loaded")
	return &Classifier{rules: rules}, nil
}

func (c *Classifier) Rules() *RuleSet {
	return c.rules
}

// NormalizeText applies NFKC, lower-cases and collapses whitespace.
func NormalizeText(text string) string {
	folded := cases.Lower(language.Und).String(norm.NFKC.String(text))
	return strings.Join(strings.Fields(folded), " ")
}

func (c *Classifier) Classify(text string, opts Options) (*Result, error) {
	ctx, err := ParseContext(string(opts.Context))
	if err != nil {
		return nil, err
	}
	languages, err := c.rules.resolveLanguages(opts.Languages)
	if err != nil {
		return nil, err
	}

	normalized := NormalizeText(text)
	if normalized == "" {
		return summarize(ctx, nil), nil
	}

	strict := ctx == ContextChat
	var violations []Violation
	for _, category := range c.rules.categories {
		for _, lang := range languages {
			var wl *whitelist
			if ctx == ContextSportsShowcase {
				wl = c.rules.whitelistFor(lang, ctx)
			}
			for _, set := range category.sets[lang] {
				violations = appendSetMatches(violations, category.id, set, normalized, strict, wl)
			}
		}
	}

	if opts.UsePatternMatching {
		for _, p := range c.rules.contextPatterns {
			if !containsLanguage(languages, p.language) {
				continue
			}
			if p.re.MatchString(text) {
				violations = append(violations, Violation{
					Category:  p.category,
					Severity:  p.severity,
					Match:     p.name,
					Language:  p.language,
					MatchType: MatchContextPattern,
				})
			}
		}
	}

	return summarize(ctx, violations), nil
}

func appendSetMatches(violations []Violation, category Category, set compiledSet, normalized string, strict bool, wl *whitelist) []Violation {
	for _, term := range set.terms {
		if !term.matches(normalized, strict) {
			continue
		}
		if wl != nil && wl.suppresses(term.text, term.spans(normalized, strict), normalized) {
			continue
		}
		violations = append(violations, Violation{
			Category:  category,
			Severity:  set.severity,
			Match:     term.text,
			Language:  set.language,
			MatchType: MatchDirectTerm,
		})
	}
	for _, p := range set.patterns {
		locs := p.re.FindAllStringIndex(normalized, -1)
		if len(locs) == 0 || wl.suppressesAll(locs, normalized) {
			continue
		}
		violations = append(violations, Violation{
			Category:  category,
			Severity:  set.severity,
			Match:     p.source,
			Language:  set.language,
			MatchType: MatchDirectTerm,
		})
	}
	return violations
}

func containsLanguage(languages []Language, lang Language) bool {
	for _, l := range languages {
		if l == lang {
			return true
		}
	}
	return false
}

func summarize(ctx Context, violations []Violation) *Result {
	result := &Result{
		IsClean:    len(violations) == 0,
		Violations: violations,
		Categories: []Category{},
		Context:    ctx,
	}
	if result.Violations == nil {
		result.Violations = []Violation{}
	}

	seen := make(map[Category]struct{})
	score := 0
	for _, v := range violations {
		if result.MaxSeverity == nil || v.Severity > *result.MaxSeverity {
			severity := v.Severity
			result.MaxSeverity = &severity
		}
		if _, ok := seen[v.Category]; !ok {
			seen[v.Category] = struct{}{}
			result.Categories = append(result.Categories, v.Category)
		}
		score += v.Severity.Weight()
	}
	sort.Slice(result.Categories, func(i, j int) bool {
		return result.Categories[i] < result.Categories[j]
	})
	if score > 100 {
		score = 100
	}
	result.RiskScore = score

	d := presets[ctx](result)
	result.ShouldBlock = d.block
	result.ShouldWarn = d.warn
	result.ShouldFlag = d.flag
	result.Action = d.action()
	return result
}
