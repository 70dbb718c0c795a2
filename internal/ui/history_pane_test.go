package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ngmaloney/poseidon/internal/history"
)

func TestRenderHistoryEmpty(t *testing.T) {
	if got := renderHistory(nil, 80); !strings.Contains(got, "No catches") {
		t.Errorf("renderHistory(nil) = %q", got)
	}
}

func TestRenderHistoryTruncates(t *testing.T) {
	var series []history.SeriesPoint
	for i := 1; i <= 20; i++ {
		series = append(series, history.SeriesPoint{
			Date:    fmt.Sprintf("2025-06-%02d", i),
			Outings: 1,
			Rate:    0,
		})
	}

	got := renderHistory(series, 80)
	if strings.Contains(got, "2025-06-01 ") {
		t.Error("oldest rows should be dropped")
	}
	if !strings.Contains(got, "2025-06-20") {
		t.Error("newest row should be kept")
	}
}
