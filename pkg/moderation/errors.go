package moderation

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownContext  = errors.New("unknown moderation context")
	ErrUnknownLanguage = errors.New("unknown rule language")
	ErrEmptyRuleSet    = errors.New("rule set has no categories")
)

// RuleConfigError reports a rule that cannot be compiled. It is a startup
// error: a classifier is never built from a table that produced one.
type RuleConfigError struct {
	Rule string
	Err  error
}

func (e *RuleConfigError) Error() string {
	return fmt.Sprintf("invalid moderation rule %s: %v", e.Rule, e.Err)
}

func (e *RuleConfigError) Unwrap() error {
	return e.Err
}

func IsCallerError(err error) bool {
	return errors.Is(err, ErrUnknownContext) || errors.Is(err, ErrUnknownLanguage)
}
