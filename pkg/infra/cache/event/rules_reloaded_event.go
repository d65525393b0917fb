package event

import "time"

// RulesReloadedEvent asks every process to rebuild its classifier from the
// rule file. Origin is the instance that already applied it.
type RulesReloadedEvent struct {
	Origin     string    `json:"origin"`
	Actor      string    `json:"actor"`
	ReloadedAt time.Time `json:"reloaded_at"`
}

func (e RulesReloadedEvent) Type() string {
	return RulesReloadedEventType
}
