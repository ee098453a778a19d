package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/ui/theme"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List study topics and question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), topicsTable(cat))
		return nil
	},
}

func topicsTable(cat *content.Catalog) string {
	rows := make([][]string, 0, len(cat.Topics()))
	for _, t := range cat.Topics() {
		_, hasNote := cat.Note(t.Name)
		note := ""
		if hasNote {
			note = "✓"
		}
		rows = append(rows, []string{
			t.Name,
			strconv.Itoa(cat.CountFor([]string{t.Name})),
			strconv.Itoa(len(cat.Formulas(t.Name))),
			note,
		})
	}
	return newTable().
		Headers("TOPIC", "QUESTIONS", "FORMULAS", "NOTES").
		Rows(rows...).
		String()
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(theme.ArcadeCyan)
			}
			return s
		})
}
