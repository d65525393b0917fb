package event

type PostModeratedEvent struct {
	PostID     string   `json:"post_id"`
	AuthorID   string   `json:"author_id"`
	Action     string   `json:"action"`
	Status     string   `json:"status"`
	Visibility string   `json:"visibility"`
	RiskScore  int      `json:"risk_score"`
	Categories []string `json:"categories"`
	ReportID   string   `json:"report_id,omitempty"`
}

func (e PostModeratedEvent) Type() string {
	return PostModeratedEventType
}
