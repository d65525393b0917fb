package moderation

import (
	"sync/atomic"

	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
)

// ActiveRules serves the classifier currently in effect. A reload swaps the
// pointer; calls already running keep the classifier they loaded.
type ActiveRules struct {
	current atomic.Pointer[modcore.Classifier]
}

func NewActiveRules(c *modcore.Classifier) *ActiveRules {
	a := &ActiveRules{}
	a.current.Store(c)
	return a
}

func (a *ActiveRules) Classify(text string, opts modcore.Options) (*modcore.Result, error) {
	return a.current.Load().Classify(text, opts)
}

func (a *ActiveRules) Summary() modcore.RuleSetSummary {
	return a.current.Load().Rules().Summary()
}

func (a *ActiveRules) swap(c *modcore.Classifier) {
	a.current.Store(c)
}
