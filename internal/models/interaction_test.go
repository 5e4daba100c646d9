package models

import (
	"encoding/json"
	"testing"
)

func TestInteractionRecord_Unmarshal(t *testing.T) {
	payload := `[
		{"date": "2023-02-01T09:30:00", "name": "Energy", "sector_id": 3},
		{"date": "2023-02-02", "name": "Banks", "sector_id": "7"},
		{"date": "last week", "name": "Retail"}
	]`

	var records []InteractionRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}

	tests := []struct {
		name     string
		rec      InteractionRecord
		sector   string
		day      string
		sectorID string
		zeroID   bool
	}{
		{"NumericID", records[0], "Energy", "2023-02-01", "3", false},
		{"StringID", records[1], "Banks", "2023-02-02", "7", false},
		{"MissingID", records[2], "Retail", "last week", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Sector(); got != tt.sector {
				t.Errorf("Sector() = %q, want %q", got, tt.sector)
			}
			if got := tt.rec.Day(); got != tt.day {
				t.Errorf("Day() = %q, want %q", got, tt.day)
			}
			if got := tt.rec.SectorID.String(); got != tt.sectorID {
				t.Errorf("SectorID.String() = %q, want %q", got, tt.sectorID)
			}
			if got := tt.rec.SectorID.IsZero(); got != tt.zeroID {
				t.Errorf("SectorID.IsZero() = %v, want %v", got, tt.zeroID)
			}
		})
	}
}

func TestSectorID_MarshalKeepsRawValue(t *testing.T) {
	rec := InteractionRecord{Date: "2023-02-01", Name: "Energy", SectorID: NewSectorID(`"S-1"`)}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"date":"2023-02-01","name":"Energy","sector_id":"S-1"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	data, err = json.Marshal(InteractionRecord{Name: "x"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"date":"","name":"x","sector_id":null}` {
		t.Errorf("Marshal of empty SectorID = %s", data)
	}
}

func TestLabels(t *testing.T) {
	got := Labels([]CategoryCount{{Label: "A", Count: 2}, {Label: "B", Count: 1}})
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Labels = %v, want [A B]", got)
	}
}
