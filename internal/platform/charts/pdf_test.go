package charts

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"recognition/internal/domain/stats"
)

func TestRenderWritesOnePDFPerKind(t *testing.T) {
	dir := t.TempDir()
	r := NewPDFRenderer(dir)
	summary := stats.Summary{
		TotalGoals: 3,
		Priority:   stats.Series{{Label: "High", Value: 2}, {Label: "Low", Value: 1}},
		Status:     stats.Series{},
		Progress:   stats.Series{{Label: "In progress", Value: 45}, {Label: "On hold", Value: 0}},
	}
	if err := r.Render(context.Background(), "u1", summary); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, kind := range []string{stats.ChartPriority, stats.ChartStatus, stats.ChartProgress} {
		data, err := os.ReadFile(filepath.Join(dir, "u1", kind+".pdf"))
		if err != nil {
			t.Fatalf("read %s: %v", kind, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Fatalf("%s chart is not a pdf", kind)
		}
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, "u1", ".chart-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestPathStaysInsideDir(t *testing.T) {
	r := NewPDFRenderer("/charts")
	if got := r.Path("../../etc", "status"); got != filepath.Join("/charts", "etc", "status.pdf") {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestFormatValue(t *testing.T) {
	if got := formatValue(2, ""); got != "2" {
		t.Fatalf("got %q", got)
	}
	if got := formatValue(16.666, "%"); got != "16.7%" {
		t.Fatalf("got %q", got)
	}
}
