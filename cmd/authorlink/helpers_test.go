package main

import (
	"strings"
	"testing"

	"authorlink/internal/authority"
)

func TestCandidateRowsFormatsSignals(t *testing.T) {
	triple := &authority.Triple{
		Candidate: authority.Candidate{
			AuthorityID: "102333412",
			SortName:    "Austen, Jane",
			DisplayName: "Jane Austen",
		},
		Evidence: authority.Evidence{
			SortName:          authority.Signal{Score: 100, Set: true},
			LibraryPopularity: 1,
			Total:             190.2,
		},
	}

	rows := candidateRows([]*authority.Triple{triple})
	if len(rows) != 1 {
		t.Fatalf("rows = %v", rows)
	}
	want := []string{"102333412", "Austen, Jane", "Jane Austen", "1", "100.0", "-", "190.2"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Fatalf("row = %v, want %v", rows[0], want)
		}
	}
}

func TestRenderCandidateTable(t *testing.T) {
	rows := [][]string{
		{"102333412", "Austen, Jane", "Jane Austen", "1", "100.0", "72.0", "262.4"},
	}
	rendered := renderCandidateTable(rows)

	for _, want := range []string{"AUTHORITY ID", "TOTAL", "102333412", "262.4"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendered table missing %q:\n%s", want, rendered)
		}
	}
	if lines := strings.Split(rendered, "\n"); len(lines) < 4 {
		t.Fatalf("expected bordered table, got:\n%s", rendered)
	}
}
