package auditlogs

const (
	EventTypePostModerated   = "post.moderated"
	EventTypeReportFiled     = "report.filed"
	EventTypeReportResolved  = "report.resolved"
	EventTypeReportDismissed = "report.dismissed"
	EventTypeRulesReloaded   = "rules.reloaded"
)

const (
	CategoryContentModeration = "content_moderation"
	CategoryConfiguration     = "configuration"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

const (
	TargetTypePost   = "post"
	TargetTypeReport = "report"
	TargetTypeRules  = "rules"
)

const (
	ActorTypeSystem = "system"
	ActorTypeAdmin  = "admin"
)
