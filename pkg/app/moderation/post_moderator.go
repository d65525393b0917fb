package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/domain/post"
	"github.com/sportsfeed/contentguard/pkg/domain/report"
	"github.com/sportsfeed/contentguard/pkg/infra/auditlogs"
	"github.com/sportsfeed/contentguard/pkg/infra/cache"
	"github.com/sportsfeed/contentguard/pkg/infra/cache/event"
	"github.com/sportsfeed/contentguard/pkg/infra/prometheus"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
	"github.com/sportsfeed/contentguard/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const DefaultDeliveryTTL = 24 * time.Hour

type PostCreatedEvent struct {
	PostID    uuid.UUID
	AuthorID  string
	Caption   string
	UserAgent string
	CreatedAt time.Time
}

type PostModerationOutcome struct {
	PostID     uuid.UUID       `json:"post_id"`
	Duplicate  bool            `json:"duplicate"`
	Action     modcore.Action  `json:"action,omitempty"`
	Status     post.Status     `json:"status,omitempty"`
	Visibility post.Visibility `json:"visibility,omitempty"`
	ReportID   *uuid.UUID      `json:"report_id,omitempty"`
	Result     *modcore.Result `json:"result,omitempty"`
}

//go:generate mockery --name=PostModerator --dir=. --output=./mocks --filename=post_moderator_mock.go --case=underscore --with-expecter
type PostModerator interface {
	OnPostCreated(ctx context.Context, ev PostCreatedEvent) (*PostModerationOutcome, error)
}

type postModerator struct {
	logger      *logrus.Logger
	classifier  Classifier
	posts       post.Repository
	reports     report.Repository
	cache       cache.Client
	publisher   cache.EventPublisher
	audit       auditlogs.Service
	recorder    LogRecorder
	deliveryTTL time.Duration
}

func NewPostModerator(
	logger *logrus.Logger,
	classifier Classifier,
	posts post.Repository,
	reports report.Repository,
	cacheClient cache.Client,
	publisher cache.EventPublisher,
	audit auditlogs.Service,
	recorder LogRecorder,
	deliveryTTL time.Duration,
) PostModerator {
	if deliveryTTL <= 0 {
		deliveryTTL = DefaultDeliveryTTL
	}
	return &postModerator{
		logger:      logger,
		classifier:  classifier,
		posts:       posts,
		reports:     reports,
		cache:       cacheClient,
		publisher:   publisher,
		audit:       audit,
		recorder:    recorder,
		deliveryTTL: deliveryTTL,
	}
}

// OnPostCreated is the authoritative check run when a post is stored. The
// trigger may deliver the same post more than once; only the first delivery
// within deliveryTTL is processed.
func (m *postModerator) OnPostCreated(ctx context.Context, ev PostCreatedEvent) (*PostModerationOutcome, error) {
	if ev.PostID == uuid.Nil || ev.AuthorID == "" {
		return nil, ErrInvalidPostEvent
	}

	deliveryKey := fmt.Sprintf(cache.PostDeliveryKeyPattern, ev.PostID)
	first, err := m.cache.SetOnce(ctx, deliveryKey, m.deliveryTTL)
	if err != nil {
		m.logger.WithError(err).WithField("post_id", ev.PostID).Warn("failed to record post delivery, moderating anyway")
		first = true
	}
	if !first {
		m.logger.WithField("post_id", ev.PostID).Debug("duplicate post delivery ignored")
		return &PostModerationOutcome{PostID: ev.PostID, Duplicate: true}, nil
	}

	outcome, err := m.moderate(ctx, ev)
	if err != nil {
		// let the trigger redeliver
		if delErr := m.cache.Delete(context.WithoutCancel(ctx), deliveryKey); delErr != nil {
			m.logger.WithError(delErr).WithField("post_id", ev.PostID).Warn("failed to clear post delivery marker")
		}
		return nil, err
	}
	return outcome, nil
}

func (m *postModerator) moderate(ctx context.Context, ev PostCreatedEvent) (*PostModerationOutcome, error) {
	result, err := m.classifier.Classify(ev.Caption, modcore.Options{
		Context:            modcore.ContextServerAuthoritative,
		UsePatternMatching: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to classify post %s: %w", ev.PostID, err)
	}

	now := time.Now().UTC()
	p := &post.Post{
		ID:               ev.PostID,
		AuthorID:         ev.AuthorID,
		Caption:          ev.Caption,
		Visibility:       post.VisibilityVisible,
		ModerationStatus: post.StatusApproved,
		RiskScore:        result.RiskScore,
		Categories:       result.CategoryNames(),
		ModeratedAt:      &now,
		CreatedAt:        ev.CreatedAt,
	}
	switch result.Action {
	case modcore.ActionBlock:
		p.Hide()
	case modcore.ActionFlag:
		p.ModerationStatus = post.StatusNeedsReview
	}

	var rep *report.Report
	if result.ShouldBlock {
		rep = &report.Report{
			ID:          uuid.New(),
			ContentID:   ev.PostID,
			ContentType: report.ContentTypePost,
			ReporterID:  report.SystemReporter,
			Reason:      modcore.UserMessage(result),
			Categories:  result.CategoryNames(),
			Severity:    maxSeverity(result),
			RiskScore:   result.RiskScore,
			Status:      report.StatusOpen,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := m.posts.Save(gctx, p); err != nil {
			return fmt.Errorf("failed to save post moderation: %w", err)
		}
		return nil
	})
	if rep != nil {
		g.Go(func() error {
			if err := m.reports.Create(gctx, rep); err != nil {
				return fmt.Errorf("failed to file report: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		m.logger.WithError(err).WithField("post_id", ev.PostID).Error("failed to persist post moderation")
		return nil, err
	}

	outcome := &PostModerationOutcome{
		PostID:     ev.PostID,
		Action:     result.Action,
		Status:     p.ModerationStatus,
		Visibility: p.Visibility,
		Result:     result,
	}
	if rep != nil {
		outcome.ReportID = &rep.ID
	}

	m.logger.WithFields(logrus.Fields{
		"post_id":    ev.PostID,
		"author_id":  ev.AuthorID,
		"action":     result.Action,
		"risk_score": result.RiskScore,
		"caption":    utils.Truncate(ev.Caption, logFieldLimit),
	}).Info("post moderated")

	m.notify(ctx, ev, result, outcome)
	return outcome, nil
}

// notify fans the outcome out to the audit trail, the moderation log and the
// redis channel. Failures are logged by each sink and never change the outcome.
func (m *postModerator) notify(ctx context.Context, ev PostCreatedEvent, result *modcore.Result, outcome *PostModerationOutcome) {
	prometheus.PostsModeratedTotal.WithLabelValues(string(result.Action)).Inc()

	postID := ev.PostID.String()
	reportID := ""
	if outcome.ReportID != nil {
		reportID = outcome.ReportID.String()
	}

	m.audit.Emit(ctx, auditlogs.Event{
		Event: auditlogs.EventInfo{
			Type:        auditlogs.EventTypePostModerated,
			Category:    auditlogs.CategoryContentModeration,
			Description: fmt.Sprintf("post %s moderated with action %s", postID, result.Action),
			Status:      auditlogs.StatusSuccess,
		},
		Target: auditlogs.Target{Type: auditlogs.TargetTypePost, ID: postID},
		Actor:  auditlogs.Actor{ID: report.SystemReporter, Type: auditlogs.ActorTypeSystem},
		Moderation: &auditlogs.ModerationDetails{
			Action:      string(result.Action),
			RiskScore:   result.RiskScore,
			MaxSeverity: maxSeverity(result),
			Categories:  result.CategoryNames(),
			ReportID:    reportID,
		},
		Context: auditlogs.Context{UserAgent: ev.UserAgent},
	})
	if outcome.ReportID != nil {
		prometheus.ReportsTotal.WithLabelValues("filed").Inc()
		m.audit.Emit(ctx, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeReportFiled,
				Category:    auditlogs.CategoryContentModeration,
				Description: fmt.Sprintf("report %s filed for post %s", reportID, postID),
				Status:      auditlogs.StatusSuccess,
			},
			// keyed by the post so it follows post.moderated on the same partition
			Target: auditlogs.Target{Type: auditlogs.TargetTypePost, ID: postID},
			Actor:  auditlogs.Actor{ID: report.SystemReporter, Type: auditlogs.ActorTypeSystem},
			Moderation: &auditlogs.ModerationDetails{
				Action:      string(result.Action),
				RiskScore:   result.RiskScore,
				MaxSeverity: maxSeverity(result),
				Categories:  result.CategoryNames(),
				ReportID:    reportID,
			},
		})
	}

	m.recorder.Record(newLogEntry(ev.AuthorID, postID, ev.Caption, utils.Platform(ev.UserAgent), result))

	err := m.publisher.Publish(ctx, event.PostModeratedEvent{
		PostID:     postID,
		AuthorID:   ev.AuthorID,
		Action:     string(result.Action),
		Status:     string(outcome.Status),
		Visibility: string(outcome.Visibility),
		RiskScore:  result.RiskScore,
		Categories: result.CategoryNames(),
		ReportID:   reportID,
	})
	if err != nil {
		m.logger.WithError(err).WithField("post_id", postID).Error("failed to publish post moderated event")
	}
}
