package moderation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RuleConfig is the declarative rule table. It is decoded from YAML with
// mapstructure or taken from DefaultRuleConfig.
type RuleConfig struct {
	Categories      []CategoryConfig       `mapstructure:"categories"`
	ContextPatterns []ContextPatternConfig `mapstructure:"context_patterns"`
	Whitelist       []WhitelistConfig      `mapstructure:"whitelist"`
}

type CategoryConfig struct {
	ID       Category           `mapstructure:"id"`
	Severity string             `mapstructure:"severity"`
	Sets     []PatternSetConfig `mapstructure:"sets"`
}

// PatternSetConfig groups the terms of one language. Severity overrides the
// category severity when set.
type PatternSetConfig struct {
	Language Language `mapstructure:"language"`
	Severity string   `mapstructure:"severity"`
	Terms    []string `mapstructure:"terms"`
	Patterns []string `mapstructure:"patterns"`
}

type ContextPatternConfig struct {
	Name     string   `mapstructure:"name"`
	Category Category `mapstructure:"category"`
	Severity string   `mapstructure:"severity"`
	Language Language `mapstructure:"language"`
	Pattern  string   `mapstructure:"pattern"`
}

type WhitelistConfig struct {
	Language Language `mapstructure:"language"`
	Context  Context  `mapstructure:"context"`
	Terms    []string `mapstructure:"terms"`
}

// nonWord matches a character that cannot be part of a word in any script.
const nonWord = `[^\p{L}\p{M}\p{N}_]`

type compiledTerm struct {
	text     string
	phrase   bool
	boundary *regexp.Regexp
}

func (t compiledTerm) matches(normalized string, strict bool) bool {
	if t.phrase && !strict {
		return strings.Contains(normalized, t.text)
	}
	return t.boundary.MatchString(normalized)
}

// spans locates every occurrence counted by matches.
func (t compiledTerm) spans(normalized string, strict bool) []span {
	if t.phrase && !strict {
		return substringSpans(normalized, t.text)
	}
	return boundedSpans(normalized, t.text)
}

// span is a byte range [start, end) of the normalized text.
type span struct {
	start, end int
}

func (s span) within(o span) bool {
	return s.start >= o.start && s.end <= o.end
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
}

func substringSpans(text, needle string) []span {
	return findSpans(text, needle, false)
}

// boundedSpans keeps the occurrences that are not part of a longer word,
// the same rule the boundary regex of a term applies.
func boundedSpans(text, needle string) []span {
	return findSpans(text, needle, true)
}

func findSpans(text, needle string, bounded bool) []span {
	if needle == "" {
		return nil
	}
	var out []span
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], needle)
		if i < 0 {
			break
		}
		s := span{start: offset + i, end: offset + i + len(needle)}
		if !bounded || atWordBoundary(text, s) {
			out = append(out, s)
		}
		_, size := utf8.DecodeRuneInString(text[s.start:])
		offset = s.start + size
	}
	return out
}

func atWordBoundary(text string, s span) bool {
	if s.start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:s.start]); isWordRune(r) {
			return false
		}
	}
	if s.end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[s.end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

type compiledPattern struct {
	source string
	re     *regexp.Regexp
}

type compiledSet struct {
	language Language
	severity Severity
	terms    []compiledTerm
	patterns []compiledPattern
}

type compiledCategory struct {
	id       Category
	severity Severity
	sets     map[Language][]compiledSet
}

type compiledContextPattern struct {
	name     string
	category Category
	severity Severity
	language Language
	re       *regexp.Regexp
}

type whitelist struct {
	terms   map[string]struct{}
	phrases []string
}

// suppresses reports whether every occurrence of match is exempt. A match
// that is itself whitelisted is always exempt; otherwise each occurrence must
// lie inside a whole-word occurrence of a whitelisted phrase containing it.
func (w *whitelist) suppresses(match string, occurrences []span, normalized string) bool {
	if w == nil || len(occurrences) == 0 {
		return false
	}
	if _, ok := w.terms[match]; ok {
		return true
	}
	var covers []span
	for _, phrase := range w.phrases {
		if strings.Contains(phrase, match) {
			covers = append(covers, boundedSpans(normalized, phrase)...)
		}
	}
	for _, occ := range occurrences {
		if !coveredBy(occ, covers) {
			return false
		}
	}
	return true
}

// suppressesAll applies suppresses to regex hits, each judged by its own text.
func (w *whitelist) suppressesAll(locs [][]int, normalized string) bool {
	if w == nil || len(locs) == 0 {
		return false
	}
	for _, loc := range locs {
		occ := trimSpan(normalized, span{start: loc[0], end: loc[1]})
		if !w.suppresses(normalized[occ.start:occ.end], []span{occ}, normalized) {
			return false
		}
	}
	return true
}

func coveredBy(occ span, covers []span) bool {
	for _, c := range covers {
		if occ.within(c) {
			return true
		}
	}
	return false
}

func trimSpan(text string, s span) span {
	raw := text[s.start:s.end]
	s.start += len(raw) - len(strings.TrimLeft(raw, " "))
	s.end -= len(raw) - len(strings.TrimRight(raw, " "))
	if s.end < s.start {
		s.end = s.start
	}
	return s
}

type whitelistKey struct {
	language Language
	context  Context
}

// RuleSet is the compiled, immutable form of a RuleConfig.
type RuleSet struct {
	categories      []compiledCategory
	contextPatterns []compiledContextPattern
	whitelists      map[whitelistKey]*whitelist
	languages       []Language
}

// CompileRules validates and compiles every term and regex of the table.
func CompileRules(cfg RuleConfig) (*RuleSet, error) {
	if len(cfg.Categories) == 0 {
		return nil, &RuleConfigError{Rule: "categories", Err: ErrEmptyRuleSet}
	}

	rs := &RuleSet{whitelists: make(map[whitelistKey]*whitelist)}
	seenCategory := make(map[Category]struct{})
	seenLanguage := make(map[Language]struct{})
	addLanguage := func(lang Language) {
		if _, ok := seenLanguage[lang]; !ok {
			seenLanguage[lang] = struct{}{}
			rs.languages = append(rs.languages, lang)
		}
	}

	for _, cc := range cfg.Categories {
		if cc.ID == "" {
			return nil, &RuleConfigError{Rule: "categories", Err: fmt.Errorf("category without id")}
		}
		if _, dup := seenCategory[cc.ID]; dup {
			return nil, &RuleConfigError{Rule: string(cc.ID), Err: fmt.Errorf("duplicate category")}
		}
		seenCategory[cc.ID] = struct{}{}

		base, err := ParseSeverity(cc.Severity)
		if err != nil {
			return nil, &RuleConfigError{Rule: string(cc.ID), Err: err}
		}
		category := compiledCategory{
			id:       cc.ID,
			severity: base,
			sets:     make(map[Language][]compiledSet),
		}

		total := 0
		for i, sc := range cc.Sets {
			ruleName := fmt.Sprintf("%s.sets[%d]", cc.ID, i)
			set, err := compileSet(ruleName, base, sc)
			if err != nil {
				return nil, err
			}
			total += len(set.terms) + len(set.patterns)
			category.sets[set.language] = append(category.sets[set.language], set)
			addLanguage(set.language)
		}
		if total == 0 {
			return nil, &RuleConfigError{Rule: string(cc.ID), Err: fmt.Errorf("category has no terms or patterns")}
		}
		rs.categories = append(rs.categories, category)
	}

	for _, pc := range cfg.ContextPatterns {
		compiled, err := compileContextPattern(pc, seenCategory)
		if err != nil {
			return nil, err
		}
		rs.contextPatterns = append(rs.contextPatterns, compiled)
	}

	for _, wc := range cfg.Whitelist {
		if wc.Language == "" {
			return nil, &RuleConfigError{Rule: "whitelist", Err: fmt.Errorf("whitelist entry without language")}
		}
		// Only the showcase preset consults a whitelist.
		if wc.Context != ContextSportsShowcase {
			return nil, &RuleConfigError{
				Rule: "whitelist." + string(wc.Language),
				Err:  fmt.Errorf("%w: whitelist context %q, want %q", ErrUnknownContext, wc.Context, ContextSportsShowcase),
			}
		}
		key := whitelistKey{language: wc.Language, context: wc.Context}
		wl, ok := rs.whitelists[key]
		if !ok {
			wl = &whitelist{terms: make(map[string]struct{})}
			rs.whitelists[key] = wl
		}
		for _, raw := range wc.Terms {
			term := NormalizeText(raw)
			if term == "" {
				continue
			}
			wl.terms[term] = struct{}{}
			if strings.Contains(term, " ") {
				wl.phrases = append(wl.phrases, term)
			}
		}
	}

	return rs, nil
}

func compileSet(ruleName string, base Severity, sc PatternSetConfig) (compiledSet, error) {
	if sc.Language == "" {
		return compiledSet{}, &RuleConfigError{Rule: ruleName, Err: fmt.Errorf("pattern set without language")}
	}
	severity := base
	if sc.Severity != "" {
		parsed, err := ParseSeverity(sc.Severity)
		if err != nil {
			return compiledSet{}, &RuleConfigError{Rule: ruleName, Err: err}
		}
		severity = parsed
	}

	set := compiledSet{language: sc.Language, severity: severity}
	for _, raw := range sc.Terms {
		term := NormalizeText(raw)
		if term == "" {
			return compiledSet{}, &RuleConfigError{Rule: ruleName, Err: fmt.Errorf("empty term")}
		}
		boundary, err := regexp.Compile(`(?:^|` + nonWord + `)` + regexp.QuoteMeta(term) + `(?:` + nonWord + `|$)`)
		if err != nil {
			return compiledSet{}, &RuleConfigError{Rule: ruleName + ":" + term, Err: err}
		}
		set.terms = append(set.terms, compiledTerm{
			text:     term,
			phrase:   strings.Contains(term, " "),
			boundary: boundary,
		})
	}
	for _, source := range sc.Patterns {
		re, err := regexp.Compile(source)
		if err != nil {
			return compiledSet{}, &RuleConfigError{Rule: ruleName + ":" + source, Err: err}
		}
		set.patterns = append(set.patterns, compiledPattern{source: source, re: re})
	}
	return set, nil
}

func compileContextPattern(pc ContextPatternConfig, categories map[Category]struct{}) (compiledContextPattern, error) {
	ruleName := "context_patterns." + pc.Name
	if pc.Name == "" {
		return compiledContextPattern{}, &RuleConfigError{Rule: "context_patterns", Err: fmt.Errorf("pattern without name")}
	}
	if _, ok := categories[pc.Category]; !ok {
		return compiledContextPattern{}, &RuleConfigError{Rule: ruleName, Err: fmt.Errorf("unknown category %q", pc.Category)}
	}
	if pc.Language == "" {
		return compiledContextPattern{}, &RuleConfigError{Rule: ruleName, Err: fmt.Errorf("pattern without language")}
	}
	severity, err := ParseSeverity(pc.Severity)
	if err != nil {
		return compiledContextPattern{}, &RuleConfigError{Rule: ruleName, Err: err}
	}
	source := pc.Pattern
	if !strings.HasPrefix(source, "(?i)") {
		source = "(?i)" + source
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return compiledContextPattern{}, &RuleConfigError{Rule: ruleName, Err: err}
	}
	return compiledContextPattern{
		name:     pc.Name,
		category: pc.Category,
		severity: severity,
		language: pc.Language,
		re:       re,
	}, nil
}

// Languages returns the languages that have at least one pattern set, in table order.
func (rs *RuleSet) Languages() []Language {
	out := make([]Language, len(rs.languages))
	copy(out, rs.languages)
	return out
}

func (rs *RuleSet) hasLanguage(lang Language) bool {
	for _, l := range rs.languages {
		if l == lang {
			return true
		}
	}
	return false
}

func (rs *RuleSet) resolveLanguages(requested []Language) ([]Language, error) {
	if len(requested) == 0 {
		return rs.languages, nil
	}
	out := make([]Language, 0, len(requested))
	seen := make(map[Language]struct{}, len(requested))
	for _, lang := range requested {
		if !rs.hasLanguage(lang) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
		}
		if _, dup := seen[lang]; dup {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	return out, nil
}

func (rs *RuleSet) whitelistFor(lang Language, ctx Context) *whitelist {
	return rs.whitelists[whitelistKey{language: lang, context: ctx}]
}

// LanguagesWithoutWhitelist lists rule languages that have no whitelist for ctx.
func (rs *RuleSet) LanguagesWithoutWhitelist(ctx Context) []Language {
	var missing []Language
	for _, lang := range rs.languages {
		if rs.whitelistFor(lang, ctx) == nil {
			missing = append(missing, lang)
		}
	}
	return missing
}

type CategorySummary struct {
	ID           Category   `json:"id"`
	Severity     Severity   `json:"severity"`
	Languages    []Language `json:"languages"`
	TermCount    int        `json:"term_count"`
	PatternCount int        `json:"pattern_count"`
}

type ContextPatternSummary struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Language Language `json:"language"`
}

type RuleSetSummary struct {
	Languages       []Language              `json:"languages"`
	Categories      []CategorySummary       `json:"categories"`
	ContextPatterns []ContextPatternSummary `json:"context_patterns"`
	WhitelistTerms  map[string]int          `json:"whitelist_terms"`
}

// Summary describes the active table without exposing the compiled regexes.
func (rs *RuleSet) Summary() RuleSetSummary {
	summary := RuleSetSummary{
		Languages:      rs.Languages(),
		WhitelistTerms: make(map[string]int, len(rs.whitelists)),
	}
	for _, c := range rs.categories {
		cs := CategorySummary{ID: c.id, Severity: c.severity}
		for _, lang := range rs.languages {
			sets, ok := c.sets[lang]
			if !ok {
				continue
			}
			cs.Languages = append(cs.Languages, lang)
			for _, s := range sets {
				cs.TermCount += len(s.terms)
				cs.PatternCount += len(s.patterns)
			}
		}
		summary.Categories = append(summary.Categories, cs)
	}
	for _, p := range rs.contextPatterns {
		summary.ContextPatterns = append(summary.ContextPatterns, ContextPatternSummary{
			Name:     p.name,
			Category: p.category,
			Severity: p.severity,
			Language: p.language,
		})
	}
	for key, wl := range rs.whitelists {
		summary.WhitelistTerms[string(key.language)+"/"+string(key.context)] = len(wl.terms)
	}
	return summary
}
