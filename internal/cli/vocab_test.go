package cli

import (
	"testing"

	"github.com/Jonathangadeaharder/langplug/internal/vocab"
)

func TestStatsRowsOrdersLevelsAndTotals(t *testing.T) {
	counts := map[vocab.Level][2]int{
		vocab.LevelB1: {2, 3},
		vocab.LevelA1: {1, 0},
	}

	rows := statsRows(counts)
	if len(rows) != 3 {
		t.Fatalf("expected 2 level rows plus totals, got %d rows", len(rows))
	}
	if rows[0][0] != vocab.LevelA1 || rows[1][0] != vocab.LevelB1 {
		t.Errorf("expected A1 before B1, got %v then %v", rows[0][0], rows[1][0])
	}
	if rows[1][1] != 2 || rows[1][2] != 3 || rows[1][3] != 5 {
		t.Errorf("unexpected B1 row: %v", rows[1])
	}

	totals := rows[2]
	if totals[1] != 3 || totals[2] != 3 || totals[3] != 6 {
		t.Errorf("unexpected totals row: %v", totals)
	}
}

func TestStatsRowsEmptyCounts(t *testing.T) {
	rows := statsRows(nil)
	if len(rows) != 1 {
		t.Fatalf("expected only the totals row, got %d rows", len(rows))
	}
	if rows[0][3] != 0 {
		t.Errorf("expected zero total, got %v", rows[0][3])
	}
}
