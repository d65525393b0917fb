package event

type ReportResolvedEvent struct {
	ReportID  string `json:"report_id"`
	ContentID string `json:"content_id"`
	Status    string `json:"status"`
	Restored  bool   `json:"restored"`
}

func (e ReportResolvedEvent) Type() string {
	return ReportResolvedEventType
}
