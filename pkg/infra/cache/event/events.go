package event

import "reflect"

type Event interface {
	Type() string
}

var (
	PostModeratedEventType  = "moderation.post_moderated"
	ReportResolvedEventType = "moderation.report_resolved"
	RulesReloadedEventType  = "moderation.rules_reloaded"
)

var Registry = map[string]reflect.Type{
	PostModeratedEventType:  reflect.TypeOf(PostModeratedEvent{}),
	ReportResolvedEventType: reflect.TypeOf(ReportResolvedEvent{}),
	RulesReloadedEventType:  reflect.TypeOf(RulesReloadedEvent{}),
}
