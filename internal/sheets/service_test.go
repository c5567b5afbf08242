package sheets

import (
	"testing"
	"time"

	"collections/pkg/models"
)

func TestExtractSpreadsheetID(t *testing.T) {
	id, err := ExtractSpreadsheetID("https://docs.google.com/spreadsheets/d/1AbC-d_9/edit#gid=0")
	if err != nil || id != "1AbC-d_9" {
		t.Fatalf("got %q, %v", id, err)
	}
	if _, err := ExtractSpreadsheetID("https://example.com/sheet"); err == nil {
		t.Fatal("expected error for non-sheets URL")
	}
}

func TestScorecardRows(t *testing.T) {
	perf := models.CollectorPerformance{
		Name:   "Sara",
		Score:  93.8,
		Rating: models.RatingExcellent,
		Bonus:  750,
		Salary: 10000,
		KPI:    models.KPI{CollectionRate: 75, DSO: 31, TotalCollected: 1500, TotalOutstanding: 500},
	}
	exported := time.Date(2025, 6, 30, 8, 0, 0, 0, time.UTC)

	rows := ScorecardRows([]models.CollectorPerformance{perf}, exported)
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	row := rows[0]
	if len(row) != len(scorecardHeaders) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(scorecardHeaders))
	}
	if row[0] != "Sara" || row[2] != "Excellent" || row[15] != "2025-06-30 08:00:00" {
		t.Fatalf("unexpected row: %v", row)
	}
	if lastColumn() != 'P' {
		t.Fatalf("last column %c", lastColumn())
	}
}
