package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/infra/auditlogs"
	"github.com/sportsfeed/contentguard/pkg/infra/cache"
	"github.com/sportsfeed/contentguard/pkg/infra/cache/event"
	"github.com/sportsfeed/contentguard/pkg/infra/prometheus"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
)

var ErrRulesRejected = errors.New("rule table rejected")

// RuleLoader builds a classifier from the configured rule source.
type RuleLoader func() (*modcore.Classifier, error)

//go:generate mockery --name=RulesReloader --dir=. --output=./mocks --filename=rules_reloader_mock.go --case=underscore --with-expecter
type RulesReloader interface {
	// Reload rebuilds the local classifier and tells the other processes to do the same.
	Reload(ctx context.Context, actor string) (*modcore.RuleSetSummary, error)
	// Apply rebuilds the local classifier only.
	Apply(ctx context.Context) error
	InstanceID() string
}

type rulesReloader struct {
	logger     *logrus.Logger
	active     *ActiveRules
	load       RuleLoader
	publisher  cache.EventPublisher
	audit      auditlogs.Service
	instanceID string
}

func NewRulesReloader(
	logger *logrus.Logger,
	active *ActiveRules,
	load RuleLoader,
	publisher cache.EventPublisher,
	audit auditlogs.Service,
	instanceID string,
) RulesReloader {
	return &rulesReloader{
		logger:     logger,
		active:     active,
		load:       load,
		publisher:  publisher,
		audit:      audit,
		instanceID: instanceID,
	}
}

func (r *rulesReloader) InstanceID() string {
	return r.instanceID
}

func (r *rulesReloader) Apply(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := r.load()
	if err != nil {
		prometheus.RuleReloadsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: %v", ErrRulesRejected, err)
	}
	r.active.swap(c)
	prometheus.RuleReloadsTotal.WithLabelValues("ok").Inc()
	return nil
}

func (r *rulesReloader) Reload(ctx context.Context, actor string) (*modcore.RuleSetSummary, error) {
	if err := r.Apply(ctx); err != nil {
		r.emit(ctx, actor, err)
		return nil, err
	}
	r.emit(ctx, actor, nil)

	err := r.publisher.Publish(ctx, event.RulesReloadedEvent{
		Origin:     r.instanceID,
		Actor:      actor,
		ReloadedAt: time.Now().UTC(),
	})
	if err != nil {
		r.logger.WithError(err).Error("failed to publish rules reloaded event")
	}

	summary := r.active.Summary()
	r.logger.WithFields(logrus.Fields{
		"actor":      actor,
		"categories": len(summary.Categories),
		"languages":  summary.Languages,
	}).Info("moderation rules reloaded")
	return &summary, nil
}

func (r *rulesReloader) emit(ctx context.Context, actor string, err error) {
	info := auditlogs.EventInfo{
		Type:        auditlogs.EventTypeRulesReloaded,
		Category:    auditlogs.CategoryConfiguration,
		Description: "moderation rule table reloaded",
		Status:      auditlogs.StatusSuccess,
	}
	if err != nil {
		info.Status = auditlogs.StatusFailure
		info.ErrorMessage = err.Error()
	}
	r.audit.Emit(ctx, auditlogs.Event{
		Event:  info,
		Target: auditlogs.Target{Type: auditlogs.TargetTypeRules, ID: r.instanceID},
		Actor:  auditlogs.Actor{ID: actor, Type: auditlogs.ActorTypeAdmin},
	})
}
