package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ViolationRecord is the persisted shape of a classifier violation.
type ViolationRecord struct {
	Category  string `json:"category"`
	Severity  string `json:"severity"`
	Match     string `json:"match"`
	Language  string `json:"language"`
	MatchType string `json:"match_type"`
}

type ViolationsJSON []ViolationRecord

func (v ViolationsJSON) Value() (driver.Value, error) {
	if v != nil && len(v) == 0 {
		return []byte("[]"), nil
	}
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (v *ViolationsJSON) Scan(value interface{}) error {
	if value == nil {
		*v = make(ViolationsJSON, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, v)
}
