package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fmaprep/internal/screens/formulary"
)

var formulasCmd = &cobra.Command{
	Use:   "formulas",
	Short: "Print the formulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		topic := ""
		if q, _ := cmd.Flags().GetString("topic"); q != "" {
			t, ok := cat.FindTopic(q)
			if !ok {
				return fmt.Errorf("unknown topic %q (see 'fmaprep topics')", q)
			}
			topic = t.Name
		}
		search, _ := cmd.Flags().GetString("search")

		sections := formulary.Filter(cat, topic, search)
		if len(sections) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No formulas match.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), formulary.Render(sections, 80, e.renderer()))
		return nil
	},
}

func init() {
	formulasCmd.Flags().StringP("topic", "t", "", "Only show one topic")
	formulasCmd.Flags().StringP("search", "s", "", "Filter by name, description or equation")
}
