package modules

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"tavu/internal/menu"
	"tavu/internal/tavus"
)

// renderDetails lays the labelled fields out as a two-column table.
func renderDetails(fields []tavus.DetailField) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, WidthMax: 60},
	})
	for _, f := range fields {
		tw.AppendRow(table.Row{f.Label, f.Value})
	}
	return tw.Render()
}

// showDetails prints a titled detail table and waits for an acknowledgement.
func showDetails(ui menu.UI, title string, fields []tavus.DetailField) {
	ui.Say(strings.ToUpper(title))
	ui.Say(renderDetails(fields))
	ui.Ack("")
}

// trimmedInput prompts and returns the trimmed answer. ok is false when the
// prompt was cancelled or the answer was blank; emptyMsg is shown in that
// case so every screen reports blank input the same way.
func trimmedInput(ui menu.UI, prompt, emptyMsg string) (string, bool) {
	raw, err := ui.Input(prompt)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		ui.Say(emptyMsg)
		ui.Ack("")
		return "", false
	}
	return value, true
}

// confirmed asks a yes/no question, treating cancellation as no.
func confirmed(ui menu.UI, prompt string) bool {
	yes, err := ui.Confirm(prompt)
	return err == nil && yes
}
