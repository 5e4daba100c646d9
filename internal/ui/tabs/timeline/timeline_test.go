package timeline

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/j-veylop/interaction-sector-viewer/internal/app"
	"github.com/j-veylop/interaction-sector-viewer/internal/models"
)

func TestModel_View(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*app.State)
		want  []string
	}{
		{
			name:  "loading",
			setup: func(*app.State) {},
			want:  []string{"Interactions per Day", "Waiting for data"},
		},
		{
			name: "no data",
			setup: func(s *app.State) {
				s.ApplyFetch(nil, errors.New("unreachable"), time.Now())
			},
			want: []string{"No data available"},
		},
		{
			name: "single day",
			setup: func(s *app.State) {
				s.ApplyFetch([]models.InteractionRecord{
					{Date: "2024-01-02T09:00:00", Name: "Tech"},
					{Date: "2024-01-02T10:00:00", Name: "Health"},
				}, nil, time.Now())
			},
			want: []string{"2024-01-02", "Days:     1", "Busiest:  2024-01-02 (2)"},
		},
		{
			name: "several days",
			setup: func(s *app.State) {
				s.ApplyFetch([]models.InteractionRecord{
					{Date: "2024-01-03", Name: "Tech"},
					{Date: "2024-01-01", Name: "Tech"},
					{Date: "2024-01-03", Name: "Health"},
					{Date: "2024-01-02", Name: "Finance"},
				}, nil, time.Now())
			},
			want: []string{"2024-01-01 → 2024-01-03", "Busiest:  2024-01-03 (2)", "Top 3 sectors", "Finance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := app.NewState()
			tt.setup(state)

			m := New(state)
			m.SetSize(100, 60)
			view := m.View()

			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("view missing %q:\n%s", w, view)
				}
			}
		})
	}
}

func TestBusiest(t *testing.T) {
	tests := []struct {
		name   string
		daily  []models.DailyCount
		want   string
		wantOK bool
	}{
		{name: "empty", daily: nil, wantOK: false},
		{
			name:   "tie keeps first",
			daily:  []models.DailyCount{{Day: "a", Count: 2}, {Day: "b", Count: 2}},
			want:   "a",
			wantOK: true,
		},
		{
			name:   "max wins",
			daily:  []models.DailyCount{{Day: "a", Count: 1}, {Day: "b", Count: 4}, {Day: "c", Count: 3}},
			want:   "b",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Busiest(tt.daily)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got.Day != tt.want {
				t.Errorf("Busiest() = %q, want %q", got.Day, tt.want)
			}
		})
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if m.Init() != nil {
		t.Error("Init should not return a command")
	}
	if len(m.ShortHelp()) != 2 {
		t.Errorf("ShortHelp() = %d bindings, want 2", len(m.ShortHelp()))
	}
	if len(m.FullHelp()) != 1 {
		t.Errorf("FullHelp() = %d groups, want 1", len(m.FullHelp()))
	}
}
