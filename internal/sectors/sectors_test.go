package sectors

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/j-veylop/interaction-sector-viewer/internal/models"
)

func records(names ...string) []models.InteractionRecord {
	recs := make([]models.InteractionRecord, len(names))
	for i, n := range names {
		recs[i] = models.InteractionRecord{Name: n, Date: fmt.Sprintf("2023-01-%02d", i%28+1)}
	}
	return recs
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name  string
		input []models.InteractionRecord
		want  []models.CategoryCount
	}{
		{
			name:  "Empty",
			input: nil,
			want:  []models.CategoryCount{},
		},
		{
			name:  "Example",
			input: records("A", "B", "A"),
			want:  []models.CategoryCount{{Label: "A", Count: 2}, {Label: "B", Count: 1}},
		},
		{
			name:  "CaseSensitive",
			input: records("Energy", "energy", "Energy"),
			want:  []models.CategoryCount{{Label: "Energy", Count: 2}, {Label: "energy", Count: 1}},
		},
		{
			name:  "FirstSeenOrder",
			input: records("C", "B", "A", "B"),
			want: []models.CategoryCount{
				{Label: "C", Count: 1}, {Label: "B", Count: 2}, {Label: "A", Count: 1},
			},
		},
		{
			name:  "EmptyLabel",
			input: records("", ""),
			want:  []models.CategoryCount{{Label: "", Count: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.input)
			if got == nil {
				t.Fatal("Aggregate returned nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Aggregate = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Aggregate[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPercentages(t *testing.T) {
	counts := []models.CategoryCount{{Label: "A", Count: 2}, {Label: "B", Count: 1}}

	got, err := Percentages(counts, 3)
	if err != nil {
		t.Fatalf("Percentages failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Label != "A" || math.Abs(got[0].Percent-66.6667) > 0.001 {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Label != "B" || math.Abs(got[1].Percent-33.3333) > 0.001 {
		t.Errorf("got[1] = %+v", got[1])
	}
}

func TestPercentages_ZeroTotal(t *testing.T) {
	if _, err := Percentages(nil, 0); !errors.Is(err, ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}
	if _, err := Percentages([]models.CategoryCount{{Label: "A", Count: 1}}, -1); !errors.Is(err, ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}
}

func TestAggregate_Properties(t *testing.T) {
	labels := []string{"Energy", "Banks", "Retail", "Tech", "energy", "Utilities"}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		n := rng.Intn(500) + 1
		names := make([]string, n)
		for i := range names {
			names[i] = labels[rng.Intn(len(labels))]
		}
		recs := records(names...)

		counts := Aggregate(recs)
		if got := Total(counts); got != n {
			t.Fatalf("run %d: sum of counts = %d, want %d", run, got, n)
		}

		percents, err := Percentages(counts, n)
		if err != nil {
			t.Fatalf("run %d: Percentages failed: %v", run, err)
		}
		sum := 0.0
		for _, p := range percents {
			sum += p.Percent
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Fatalf("run %d: sum of percentages = %v, want 100", run, sum)
		}

		seen := make(map[string]bool)
		for _, c := range counts {
			if seen[c.Label] {
				t.Fatalf("run %d: duplicate label %q", run, c.Label)
			}
			seen[c.Label] = true
		}
	}
}

func TestDaily(t *testing.T) {
	recs := []models.InteractionRecord{
		{Name: "A", Date: "2023-01-02T10:00:00"},
		{Name: "B", Date: "2023-01-01"},
		{Name: "A", Date: "2023-01-02T18:00:00"},
	}

	got := Daily(recs)
	want := []models.DailyCount{{Day: "2023-01-01", Count: 1}, {Day: "2023-01-02", Count: 2}}
	if len(got) != len(want) {
		t.Fatalf("Daily = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Daily[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if len(Daily(nil)) != 0 {
		t.Error("Daily(nil) should be empty")
	}
}

func TestSortedByCount(t *testing.T) {
	counts := []models.CategoryCount{{Label: "A", Count: 1}, {Label: "B", Count: 3}, {Label: "C", Count: 1}}
	got := SortedByCount(counts)
	if got[0].Label != "B" || got[1].Label != "A" || got[2].Label != "C" {
		t.Errorf("SortedByCount = %v", got)
	}
	if counts[0].Label != "A" {
		t.Error("SortedByCount modified its input")
	}
}

func TestBuildView(t *testing.T) {
	view, err := BuildView(records("A", "B", "A"))
	if err != nil {
		t.Fatalf("BuildView failed: %v", err)
	}
	if view.Empty() {
		t.Fatal("view should not be empty")
	}
	if view.Total != 3 {
		t.Errorf("Total = %d, want 3", view.Total)
	}
	if len(view.Chart.Slices) != 2 {
		t.Fatalf("slices = %d, want 2", len(view.Chart.Slices))
	}
	if view.Chart.Slices[0].Label != "A - 66.67%" {
		t.Errorf("label = %q", view.Chart.Slices[0].Label)
	}
	if view.Chart.Slices[1].Label != "B - 33.33%" {
		t.Errorf("label = %q", view.Chart.Slices[1].Label)
	}
}

func TestBuildView_Empty(t *testing.T) {
	view, err := BuildView(nil)
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}
	if view != nil {
		t.Error("no view should be built for empty input")
	}
	if !view.Empty() {
		t.Error("nil view should report Empty")
	}
}
