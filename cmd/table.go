package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"beatwave/core/catalog"
	"beatwave/model"
)

// renderTable draws rows with a rounded style; columns listed in right are
// right-aligned.
func renderTable(headers []string, rows [][]string, right ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(right))
	for _, col := range right {
		configs = append(configs, table.ColumnConfig{Number: col, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

var beatHeaders = []string{"#", "ID", "Title", "Producer", "BPM", "Key", "Price", "Tags", "Length", "Score"}

func beatRows(beats []model.Beat, score func(model.Beat) float64) [][]string {
	rows := make([][]string, len(beats))
	for i, b := range beats {
		rows[i] = []string{
			fmt.Sprint(i + 1),
			b.ID,
			b.Title,
			b.Producer,
			fmt.Sprint(b.BPM),
			b.Key,
			fmt.Sprintf("$%.2f", b.Price),
			strings.Join(b.Tags, ", "),
			b.Duration,
			fmt.Sprintf("%.0f", score(b)),
		}
	}
	return rows
}

func renderBeats(beats []model.Beat, score func(model.Beat) float64) string {
	if score == nil {
		score = catalog.BestScore
	}
	return renderTable(beatHeaders, beatRows(beats, score), 1, 5, 7, 10)
}
