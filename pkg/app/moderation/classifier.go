package moderation

import (
	"errors"
	"time"

	"github.com/sportsfeed/contentguard/pkg/domain"
	"github.com/sportsfeed/contentguard/pkg/domain/modlog"
	"github.com/sportsfeed/contentguard/pkg/infra/prometheus"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
)

var (
	ErrInvalidPostEvent = errors.New("post event requires post_id and author_id")
	ErrUserIDRequired   = errors.New("user_id is required")
)

// logFieldLimit bounds user content copied into operational log fields.
const logFieldLimit = 100

//go:generate mockery --name=Classifier --dir=. --output=./mocks --filename=classifier_mock.go --case=underscore --with-expecter
type Classifier interface {
	Classify(text string, opts modcore.Options) (*modcore.Result, error)
}

type observedClassifier struct {
	next Classifier
}

// NewObservedClassifier records classification metrics around next.
func NewObservedClassifier(next Classifier) Classifier {
	return &observedClassifier{next: next}
}

func (o *observedClassifier) Classify(text string, opts modcore.Options) (*modcore.Result, error) {
	start := time.Now()
	result, err := o.next.Classify(text, opts)
	if err != nil {
		return nil, err
	}
	observe(result, time.Since(start))
	return result, nil
}

func observe(result *modcore.Result, elapsed time.Duration) {
	ctx := string(result.Context)
	prometheus.ClassificationsTotal.WithLabelValues(ctx, string(result.Action)).Inc()
	if prometheus.Config.EnableLatency {
		prometheus.ClassificationLatency.WithLabelValues(ctx).Observe(float64(elapsed.Microseconds()) / 1000)
	}
	if prometheus.Config.EnableRiskScore {
		prometheus.RiskScore.WithLabelValues(ctx).Observe(float64(result.RiskScore))
	}
	if prometheus.Config.EnableViolations {
		for _, v := range result.Violations {
			prometheus.ViolationsTotal.WithLabelValues(string(v.Category), v.Severity.String(), string(v.MatchType)).Inc()
		}
	}
}

func newLogEntry(userID, contentID, text, platform string, result *modcore.Result) *modlog.Entry {
	entry := &modlog.Entry{
		UserID:     userID,
		ContentID:  contentID,
		Content:    modlog.TruncateContent(text),
		Context:    string(result.Context),
		Action:     string(result.Action),
		IsClean:    result.IsClean,
		RiskScore:  result.RiskScore,
		Categories: result.CategoryNames(),
		Violations: make(domain.ViolationsJSON, 0, len(result.Violations)),
		Platform:   platform,
		CreatedAt:  time.Now().UTC(),
	}
	if result.MaxSeverity != nil {
		entry.MaxSeverity = result.MaxSeverity.String()
	}
	for _, v := range result.Violations {
		entry.Violations = append(entry.Violations, domain.ViolationRecord{
			Category:  string(v.Category),
			Severity:  v.Severity.String(),
			Match:     v.Match,
			Language:  string(v.Language),
			MatchType: string(v.MatchType),
		})
	}
	return entry
}

func maxSeverity(result *modcore.Result) string {
	if result.MaxSeverity == nil {
		return ""
	}
	return result.MaxSeverity.String()
}
