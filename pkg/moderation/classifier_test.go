package moderation

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	logger, _ := test.NewNullLogger()
	c, err := NewClassifier(logger, DefaultRuleConfig())
	require.NoError(t, err)
	return c
}

func severityPtr(s Severity) *Severity {
	return &s
}

func english() []Language {
	return []Language{LanguageEnglish}
}

func TestClassifier_Scenarios(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name          string
		text          string
		opts          Options
		clean         bool
		category      Category
		maxSeverity   *Severity
		expectBlock   bool
		expectWarn    bool
		expectFlag    bool
		expectedCount int
	}{
		{
			name:          "political discussion is blocked in general",
			text:          "Let's discuss the BJP election results",
			opts:          Options{Languages: english(), Context: ContextGeneral},
			category:      CategoryPolitics,
			maxSeverity:   severityPtr(SeverityMedium),
			expectBlock:   true,
			expectedCount: 2,
		},
		{
			name:  "sports slang passes in showcase",
			text:  "I will destroy the competition today!",
			opts:  Options{Languages: english(), Context: ContextSportsShowcase},
			clean: true,
		},
		{
			name:          "sports slang is blocked in chat",
			text:          "I will destroy the competition today!",
			opts:          Options{Languages: english(), Context: ContextChat},
			category:      CategoryViolence,
			maxSeverity:   severityPtr(SeverityHigh),
			expectBlock:   true,
			expectFlag:    true,
			expectedCount: 1,
		},
		{
			name:  "empty text",
			text:  "",
			opts:  Options{Context: ContextGeneral},
			clean: true,
		},
		{
			name:          "insults in chat",
			text:          "You are an idiot and I hate you",
			opts:          Options{Languages: english(), Context: ContextChat},
			category:      CategoryHateSpeech,
			maxSeverity:   severityPtr(SeverityMedium),
			expectBlock:   true,
			expectedCount: 2,
		},
		{
			name:  "friendly message",
			text:  "Great game today, see you at 5pm",
			opts:  Options{Context: ContextGeneral},
			clean: true,
		},
		{
			name:  "whitespace only",
			text:  " \t\n  ",
			opts:  Options{Context: ContextChat},
			clean: true,
		},
		{
			name:          "mild profanity only warns in general",
			text:          "damn that was close",
			opts:          Options{Languages: english(), Context: ContextGeneral},
			category:      CategoryProfanity,
			maxSeverity:   severityPtr(SeverityLow),
			expectWarn:    true,
			expectedCount: 1,
		},
		{
			name:          "mild profanity blocks in chat",
			text:          "damn that was close",
			opts:          Options{Languages: english(), Context: ContextChat},
			category:      CategoryProfanity,
			maxSeverity:   severityPtr(SeverityLow),
			expectBlock:   true,
			expectedCount: 1,
		},
		{
			name:          "hindi term with devanagari boundary",
			text:          "मोदी की रैली कल है",
			opts:          Options{Languages: []Language{LanguageHindi}, Context: ContextGeneral},
			category:      CategoryPolitics,
			maxSeverity:   severityPtr(SeverityMedium),
			expectBlock:   true,
			expectedCount: 1,
		},
		{
			name:  "hindi term inside a longer word",
			text:  "मोदीनगर में मैच",
			opts:  Options{Languages: []Language{LanguageHindi}, Context: ContextGeneral},
			clean: true,
		},
		{
			name:  "requested language filters the table",
			text:  "bjp rally",
			opts:  Options{Languages: []Language{LanguageHindi}, Context: ContextGeneral},
			clean: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.Classify(tt.text, tt.opts)
			require.NoError(t, err)

			assert.Equal(t, tt.clean, result.IsClean)
			assert.Equal(t, tt.expectBlock, result.ShouldBlock, "should block")
			assert.Equal(t, tt.expectWarn, result.ShouldWarn, "should warn")
			assert.Equal(t, tt.expectFlag, result.ShouldFlag, "should flag")
			assert.Len(t, result.Violations, tt.expectedCount)
			assert.Equal(t, tt.maxSeverity, result.MaxSeverity)
			if tt.clean {
				assert.NotNil(t, result.Violations)
				assert.Empty(t, result.Categories)
				assert.Equal(t, ActionAllow, result.Action)
				assert.Zero(t, result.RiskScore)
				return
			}
			assert.Contains(t, result.Categories, tt.category)
		})
	}
}

func TestClassifier_WordBoundary(t *testing.T) {
	c := newTestClassifier(t)

	for _, ctx := range []Context{ContextGeneral, ContextChat} {
		result, err := c.Classify("this class is great", Options{Languages: english(), Context: ctx})
		require.NoError(t, err)
		assert.True(t, result.IsClean, "ass must not match inside class (%s)", ctx)

		result, err = c.Classify("what an ass", Options{Languages: english(), Context: ctx})
		require.NoError(t, err)
		assert.False(t, result.IsClean)
		assert.Equal(t, "ass", result.Violations[0].Match)
		assert.Equal(t, MatchDirectTerm, result.Violations[0].MatchType)
	}
}

func TestClassifier_ChatEnforcesBoundaryForPhrases(t *testing.T) {
	c := newTestClassifier(t)
	text := "I hate youth sports drama"

	general, err := c.Classify(text, Options{Languages: english(), Context: ContextGeneral})
	require.NoError(t, err)
	assert.True(t, general.HasCategory(CategoryHateSpeech))

	chat, err := c.Classify(text, Options{Languages: english(), Context: ContextChat})
	require.NoError(t, err)
	assert.True(t, chat.IsClean)
}

func TestClassifier_Whitelist(t *testing.T) {
	c := newTestClassifier(t)

	t.Run("whitelist only text is clean in showcase only", func(t *testing.T) {
		text := "killer instinct, destroy the competition, beast mode, on fire"

		showcase, err := c.Classify(text, Options{Context: ContextSportsShowcase})
		require.NoError(t, err)
		assert.True(t, showcase.IsClean)

		for _, ctx := range []Context{ContextGeneral, ContextChat} {
			result, err := c.Classify(text, Options{Context: ctx})
			require.NoError(t, err)
			assert.False(t, result.IsClean, ctx)
			assert.True(t, result.ShouldBlock, ctx)
		}
	})

	t.Run("term inside a whitelisted phrase is suppressed", func(t *testing.T) {
		text := "she was killing it out there"

		showcase, err := c.Classify(text, Options{Languages: english(), Context: ContextSportsShowcase})
		require.NoError(t, err)
		assert.True(t, showcase.IsClean)

		general, err := c.Classify(text, Options{Languages: english(), Context: ContextGeneral})
		require.NoError(t, err)
		assert.True(t, general.HasCategory(CategoryViolence))
	})

	t.Run("whitelisted phrase must appear as whole words", func(t *testing.T) {
		result, err := c.Classify("I love killing italians", Options{Languages: english(), Context: ContextSportsShowcase})
		require.NoError(t, err)
		assert.False(t, result.IsClean)
		assert.True(t, result.HasCategory(CategoryViolence))
	})

	t.Run("whitelisted phrase only covers its own occurrence", func(t *testing.T) {
		text := "killing it on the pitch, next I am killing people"

		result, err := c.Classify(text, Options{Languages: english(), Context: ContextSportsShowcase})
		require.NoError(t, err)
		assert.False(t, result.IsClean)
		require.True(t, result.HasCategory(CategoryViolence))
		var matches []string
		for _, v := range result.Violations {
			matches = append(matches, v.Match)
		}
		assert.Contains(t, matches, "killing")
	})

	t.Run("repeated whitelisted phrase stays suppressed", func(t *testing.T) {
		result, err := c.Classify("killing it, simply killing it", Options{Languages: english(), Context: ContextSportsShowcase})
		require.NoError(t, err)
		assert.True(t, result.IsClean)
	})

	t.Run("critical term survives next to whitelist terms", func(t *testing.T) {
		text := "kill yourself killer, destroy the competition"

		for _, ctx := range []Context{ContextGeneral, ContextSportsShowcase} {
			result, err := c.Classify(text, Options{Languages: english(), Context: ctx})
			require.NoError(t, err)
			require.NotNil(t, result.MaxSeverity)
			assert.Equal(t, SeverityCritical, *result.MaxSeverity, ctx)
			assert.True(t, result.HasCategory(CategoryHateSpeech), ctx)
		}
	})

	t.Run("hindi whitelist", func(t *testing.T) {
		text := "क्या हमला था"
		opts := Options{Languages: []Language{LanguageHindi}}

		opts.Context = ContextSportsShowcase
		showcase, err := c.Classify(text, opts)
		require.NoError(t, err)
		assert.True(t, showcase.IsClean)

		opts.Context = ContextGeneral
		general, err := c.Classify(text, opts)
		require.NoError(t, err)
		assert.True(t, general.HasCategory(CategoryViolence))
	})
}

func TestClassifier_ContextPatterns(t *testing.T) {
	c := newTestClassifier(t)
	text := "I will kill you and I will hurt you"

	without, err := c.Classify(text, Options{Languages: english(), Context: ContextGeneral})
	require.NoError(t, err)
	assert.Equal(t, SeverityHigh, *without.MaxSeverity)
	for _, v := range without.Violations {
		assert.Equal(t, MatchDirectTerm, v.MatchType)
	}

	with, err := c.Classify(text, Options{Languages: english(), Context: ContextGeneral, UsePatternMatching: true})
	require.NoError(t, err)
	assert.Equal(t, SeverityCritical, *with.MaxSeverity)

	patternHits := 0
	for _, v := range with.Violations {
		if v.MatchType == MatchContextPattern {
			patternHits++
			assert.Equal(t, "threat_of_harm", v.Match)
			assert.Equal(t, CategoryViolence, v.Category)
		}
	}
	assert.Equal(t, 1, patternHits)

	hindi, err := c.Classify("मैं तुझे जान से मार दूंगा", Options{Context: ContextChat, UsePatternMatching: true})
	require.NoError(t, err)
	assert.Equal(t, SeverityCritical, *hindi.MaxSeverity)
}

func TestClassifier_RiskPolicy(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name         string
		text         string
		expectedRisk int
		action       Action
	}{
		{name: "clean", text: "what a match", expectedRisk: 0, action: ActionAllow},
		{name: "single low", text: "damn", expectedRisk: 5, action: ActionAllow},
		{name: "single medium", text: "you idiot", expectedRisk: 15, action: ActionWarn},
		{name: "two medium reach flag", text: "you idiot, you moron", expectedRisk: 30, action: ActionFlag},
		{name: "single high", text: "nude", expectedRisk: 30, action: ActionFlag},
		{name: "critical", text: "kys", expectedRisk: 50, action: ActionBlock},
		{
			name:         "score is capped",
			text:         "fuck shit bitch bastard asshole dick cunt idiot",
			expectedRisk: 100,
			action:       ActionBlock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.Classify(tt.text, Options{Languages: english(), Context: ContextServerAuthoritative})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedRisk, result.RiskScore)
			assert.Equal(t, tt.action, result.Action)
			assert.Equal(t, tt.action == ActionBlock, result.ShouldBlock)
		})
	}
}

func TestClassifier_Invariants(t *testing.T) {
	c := newTestClassifier(t)
	texts := []string{
		"",
		"   ",
		"Let's discuss the BJP election results",
		"damn",
		"this class is great",
		"I will destroy the competition today!",
		"buy followers at bit.ly/cheap now, call 9876543210",
		"kill yourself",
		"साला कमीना",
		"ganja aur charas",
		"Great game today, see you at 5pm",
	}
	contexts := []Context{ContextGeneral, ContextSportsShowcase, ContextChat, ContextServerAuthoritative}

	for _, text := range texts {
		for _, ctx := range contexts {
			opts := Options{Context: ctx, UsePatternMatching: true}
			first, err := c.Classify(text, opts)
			require.NoError(t, err)
			second, err := c.Classify(text, opts)
			require.NoError(t, err)

			assert.Equal(t, first, second, "deterministic for %q in %s", text, ctx)
			if first.ShouldBlock {
				assert.NotEmpty(t, first.Violations)
			}
			assert.Equal(t, len(first.Violations) > 0, first.MaxSeverity != nil)
			assert.Equal(t, len(first.Violations) == 0, first.IsClean)
			if ctx == ContextChat {
				assert.False(t, first.ShouldWarn)
			}
			assert.LessOrEqual(t, first.RiskScore, 100)
		}
	}
}

func TestClassifier_CategoriesAreSortedAndUnique(t *testing.T) {
	c := newTestClassifier(t)

	result, err := c.Classify("fuck you idiot, shit", Options{Languages: english(), Context: ContextGeneral})
	require.NoError(t, err)
	assert.Equal(t, []Category{CategoryHateSpeech, CategoryProfanity}, result.Categories)
}

func TestClassifier_ConcurrentUse(t *testing.T) {
	c := newTestClassifier(t)
	opts := Options{Context: ContextChat, UsePatternMatching: true}
	expected, err := c.Classify("You are an idiot and I hate you", opts)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Classify("You are an idiot and I hate you", opts)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, expected, r)
	}
}

func TestClassifier_OptionErrors(t *testing.T) {
	c := newTestClassifier(t)

	_, err := c.Classify("hello", Options{Context: "stadium"})
	assert.ErrorIs(t, err, ErrUnknownContext)
	assert.True(t, IsCallerError(err))

	_, err = c.Classify("hello", Options{Languages: []Language{"tamil"}})
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	result, err := c.Classify("hello", Options{})
	require.NoError(t, err)
	assert.Equal(t, ContextGeneral, result.Context)
}

func TestNewClassifier_RuleConfigErrors(t *testing.T) {
	logger := logrus.New()

	tests := []struct {
		name string
		cfg  RuleConfig
	}{
		{name: "empty table", cfg: RuleConfig{}},
		{
			name: "malformed regex",
			cfg: RuleConfig{Categories: []CategoryConfig{{
				ID: CategorySpam, Severity: "low",
				Sets: []PatternSetConfig{{Language: LanguageEnglish, Patterns: []string{`(unclosed`}}},
			}}},
		},
		{
			name: "unknown severity",
			cfg: RuleConfig{Categories: []CategoryConfig{{
				ID: CategorySpam, Severity: "extreme",
				Sets: []PatternSetConfig{{Language: LanguageEnglish, Terms: []string{"promo"}}},
			}}},
		},
		{
			name: "category without terms",
			cfg: RuleConfig{Categories: []CategoryConfig{{
				ID: CategorySpam, Severity: "low",
				Sets: []PatternSetConfig{{Language: LanguageEnglish}},
			}}},
		},
		{
			name: "whitelist without context",
			cfg: RuleConfig{
				Categories: []CategoryConfig{{
					ID: CategorySpam, Severity: "low",
					Sets: []PatternSetConfig{{Language: LanguageEnglish, Terms: []string{"promo"}}},
				}},
				Whitelist: []WhitelistConfig{{Language: LanguageEnglish, Terms: []string{"promo"}}},
			},
		},
		{
			name: "whitelist for a context that never consults it",
			cfg: RuleConfig{
				Categories: []CategoryConfig{{
					ID: CategorySpam, Severity: "low",
					Sets: []PatternSetConfig{{Language: LanguageEnglish, Terms: []string{"promo"}}},
				}},
				Whitelist: []WhitelistConfig{{Language: LanguageEnglish, Context: ContextGeneral, Terms: []string{"promo"}}},
			},
		},
		{
			name: "context pattern with unknown category",
			cfg: RuleConfig{
				Categories: []CategoryConfig{{
					ID: CategorySpam, Severity: "low",
					Sets: []PatternSetConfig{{Language: LanguageEnglish, Terms: []string{"promo"}}},
				}},
				ContextPatterns: []ContextPatternConfig{{
					Name: "threat", Category: CategoryViolence, Severity: "high",
					Language: LanguageEnglish, Pattern: `kill`,
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClassifier(logger, tt.cfg)
			assert.Nil(t, c)
			var ruleErr *RuleConfigError
			assert.True(t, errors.As(err, &ruleErr), "expected RuleConfigError, got %v", err)
		})
	}
}

func TestNewClassifier_WarnsAboutMissingWhitelist(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cfg := DefaultRuleConfig()
	cfg.Whitelist = cfg.Whitelist[:1]

	_, err := NewClassifier(logger, cfg)
	require.NoError(t, err)

	var warned []Language
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = append(warned, entry.Data["language"].(Language))
		}
	}
	assert.Equal(t, []Language{LanguageHindi}, warned)
}

func TestUserMessage(t *testing.T) {
	c := newTestClassifier(t)

	result, err := c.Classify("vote for change, nude pics", Options{Languages: english(), Context: ContextGeneral})
	require.NoError(t, err)
	assert.Equal(t, "Sexual or explicit content is not allowed.", UserMessage(result))

	result, err = c.Classify("Let's discuss the BJP election results", Options{Languages: english()})
	require.NoError(t, err)
	assert.Equal(t, "Political content is not allowed on this platform.", UserMessage(result))

	assert.Equal(t, FallbackMessage, UserMessage(&Result{}))
}

func TestLoadRuleConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `
categories:
  - id: spam
    severity: low
    sets:
      - language: english
        terms: ["promo code"]
  - id: violence
    severity: high
    sets:
      - language: english
        terms: ["smash"]
context_patterns:
  - name: promo_blast
    category: spam
    severity: medium
    language: english
    pattern: 'use\s+code\s+\w+'
whitelist:
  - language: english
    context: sports_showcase
    terms: ["smash"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadRuleConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Categories, 2)
	assert.Equal(t, CategorySpam, cfg.Categories[0].ID)

	logger, _ := test.NewNullLogger()
	c, err := NewClassifier(logger, cfg)
	require.NoError(t, err)

	result, err := c.Classify("Use CODE win10 for a promo code", Options{Context: ContextGeneral, UsePatternMatching: true})
	require.NoError(t, err)
	assert.Len(t, result.Violations, 2)
	assert.True(t, result.ShouldBlock)

	result, err = c.Classify("what a smash", Options{Context: ContextSportsShowcase})
	require.NoError(t, err)
	assert.True(t, result.IsClean)

	t.Run("unknown keys are rejected", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("categories: []\nextra: true\n"), 0o600))
		_, err := LoadRuleConfig(bad)
		var ruleErr *RuleConfigError
		assert.True(t, errors.As(err, &ruleErr))
	})

	t.Run("empty path returns built-in rules", func(t *testing.T) {
		cfg, err := LoadRuleConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultRuleConfig(), cfg)
	})
}

func TestRuleSet_Summary(t *testing.T) {
	c := newTestClassifier(t)
	summary := c.Rules().Summary()

	assert.Equal(t, []Language{LanguageEnglish, LanguageHindi}, summary.Languages)
	require.Len(t, summary.Categories, 7)
	assert.Equal(t, CategoryPolitics, summary.Categories[0].ID)
	assert.NotEmpty(t, summary.ContextPatterns)
	assert.Contains(t, summary.WhitelistTerms, "english/sports_showcase")
}

func TestParseCallerContext(t *testing.T) {
	for value, want := range map[string]Context{
		"":                "general",
		"general":         ContextGeneral,
		"sports_showcase": ContextSportsShowcase,
		"chat":            ContextChat,
	} {
		got, err := ParseCallerContext(value)
		require.NoError(t, err, value)
		assert.Equal(t, want, got, value)
	}

	for _, value := range []string{"server_authoritative", "lobby"} {
		_, err := ParseCallerContext(value)
		assert.ErrorIs(t, err, ErrUnknownContext, value)
	}

	ctx, err := ParseContext("server_authoritative")
	require.NoError(t, err)
	assert.Equal(t, ContextServerAuthoritative, ctx)
}
