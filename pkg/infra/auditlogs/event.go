package auditlogs

import "time"

type Event struct {
	Event      EventInfo          `json:"event"`
	Target     Target             `json:"target"`
	Actor      Actor              `json:"actor"`
	Moderation *ModerationDetails `json:"moderation,omitempty"`
	Context    Context            `json:"context"`
	Timestamp  time.Time          `json:"timestamp"`
}

type EventInfo struct {
	Type         string `json:"type"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Target.ID is the content id and doubles as the kafka partition key, so every
// event of one post lands on the same partition in order.
type Target struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type Actor struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type ModerationDetails struct {
	Action      string   `json:"action"`
	RiskScore   int      `json:"riskScore"`
	MaxSeverity string   `json:"maxSeverity,omitempty"`
	Categories  []string `json:"categories"`
	ReportID    string   `json:"reportId,omitempty"`
}

type Context struct {
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// PartitionKey is the content id the event refers to.
func (e Event) PartitionKey() string {
	return e.Target.ID
}
