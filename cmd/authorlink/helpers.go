package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"authorlink/internal/authority"
)

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

func formatSignal(signal authority.Signal) string {
	if !signal.Set {
		return "-"
	}
	return formatScore(signal.Score)
}

// candidateRows flattens ranked candidates for table or plain output.
func candidateRows(candidates []*authority.Triple) [][]string {
	rows := make([][]string, 0, len(candidates))
	for _, triple := range candidates {
		rows = append(rows, []string{
			triple.Candidate.AuthorityID,
			triple.Candidate.SortName,
			triple.Candidate.DisplayName,
			strconv.Itoa(triple.Evidence.LibraryPopularity),
			formatSignal(triple.Evidence.SortName),
			formatSignal(triple.Evidence.Title),
			formatScore(triple.Evidence.Total),
		})
	}
	return rows
}

// printCandidates writes ranked candidates as a table on a terminal, or
// as tab-separated lines when the output is piped.
func printCandidates(out io.Writer, candidates []*authority.Triple) {
	rows := candidateRows(candidates)
	if !stdoutIsTerminal() {
		for _, row := range rows {
			fmt.Fprintln(out, strings.Join(row, "\t"))
		}
		return
	}
	fmt.Fprintln(out, renderCandidateTable(rows))
}

func renderCandidateTable(rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"AUTHORITY ID", "SORT NAME", "DISPLAY NAME", "POP", "NAME", "TITLE", "TOTAL"})

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	// Popularity rank and the score columns read better right-aligned;
	// the name columns stay left.
	configs := make([]table.ColumnConfig, 0, 4)
	for _, number := range []int{4, 5, 6, 7} {
		configs = append(configs, table.ColumnConfig{
			Number:      number,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
