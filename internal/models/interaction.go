// Package models defines data structures and domain types.
package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// InteractionRecord is one interaction as returned by the data source.
// Records are never modified after decoding.
type InteractionRecord struct {
	Date     string   `json:"date"`
	Name     string   `json:"name"`
	SectorID SectorID `json:"sector_id"`
}

// Sector returns the category label the record is bucketed under.
func (r InteractionRecord) Sector() string {
	return r.Name
}

// Day returns the calendar day portion of Date when it looks like an ISO
// timestamp ("2023-01-31T10:00:00"), otherwise Date unchanged.
func (r InteractionRecord) Day() string {
	if len(r.Date) >= 10 && r.Date[4] == '-' && r.Date[7] == '-' {
		return r.Date[:10]
	}
	return strings.TrimSpace(r.Date)
}

// SectorID keeps the sector_id value exactly as it appeared in the payload.
// The API has served it both as a number and as a string.
type SectorID struct {
	raw json.RawMessage
}

// NewSectorID builds a SectorID from a raw JSON value.
func NewSectorID(raw string) SectorID {
	return SectorID{raw: json.RawMessage(raw)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SectorID) UnmarshalJSON(data []byte) error {
	s.raw = append(s.raw[:0], data...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s SectorID) MarshalJSON() ([]byte, error) {
	if len(s.raw) == 0 {
		return []byte("null"), nil
	}
	return s.raw, nil
}

// IsZero reports whether the field was absent or null.
func (s SectorID) IsZero() bool {
	return len(s.raw) == 0 || bytes.Equal(s.raw, []byte("null"))
}

// String returns the value without JSON quoting.
func (s SectorID) String() string {
	if s.IsZero() {
		return ""
	}
	var str string
	if err := json.Unmarshal(s.raw, &str); err == nil {
		return str
	}
	return string(s.raw)
}
