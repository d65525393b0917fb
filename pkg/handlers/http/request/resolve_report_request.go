package request

import (
	"encoding/json"

	"github.com/sportsfeed/contentguard/pkg/domain/report"
)

type ResolveReportRequest struct {
	Status  string `json:"status"`
	Note    string `json:"note"`
	Restore bool   `json:"restore"`
}

func ParseResolveReportRequest(body []byte) (*ResolveReportRequest, error) {
	err := parseObject(body, func(f fields) error {
		if err := f.requiredNonEmptyString("status"); err != nil {
			return err
		}
		if err := f.optionalString("note"); err != nil {
			return err
		}
		return f.optionalBool("restore")
	})
	if err != nil {
		return nil, err
	}
	var req ResolveReportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, ErrInvalidBody
	}
	return &req, nil
}

func (r *ResolveReportRequest) Validate() error {
	status, ok := report.ParseStatus(r.Status)
	if !ok || status == report.StatusOpen {
		return &FieldError{Field: "status", Reason: "must be 'resolved' or 'dismissed'"}
	}
	return nil
}
