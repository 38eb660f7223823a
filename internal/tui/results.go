package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/retype/internal/model"
)

const maxResultRows = 12

var (
	resultsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	resultsTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	resultsValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

func newResultsTable(report model.Report) table.Model {
	columns := []table.Column{
		{Title: "Char", Width: 8},
		{Title: "Accuracy", Width: 9},
		{Title: "Correct", Width: 8},
		{Title: "Total", Width: 6},
	}
	rows := make([]table.Row, 0, len(report.Chars))
	for _, c := range report.Chars {
		rows = append(rows, table.Row{
			c.Label(),
			fmt.Sprintf("%.0f%%", c.Accuracy()*100),
			fmt.Sprintf("%d", c.Correct),
			fmt.Sprintf("%d", c.Total),
		})
	}
	height := min(max(len(rows), 1), maxResultRows) + 1
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(false)
	t.SetStyles(styles)
	return t
}

func renderResults(report model.Report, t table.Model, help string) string {
	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		resultsValueStyle.Render(report.AccuracyLine()),
		"    ",
		resultsValueStyle.Render(report.WPMLine()),
	)
	body := lipgloss.JoinVertical(lipgloss.Left,
		resultsTitleStyle.Render("Typing complete! Here are your results:"),
		"",
		summary,
		"",
		t.View(),
		"",
		footerStyle.Render(help),
	)
	return resultsStyle.Render(body)
}
