package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders rows under header: a light box table in text mode and a
// markdown table otherwise. JSON callers encode their own row types.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeText {
		t.Render()
		return
	}
	t.RenderMarkdown()
}
