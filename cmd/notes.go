package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fmaprep/internal/screens/notes"
)

var notesCmd = &cobra.Command{
	Use:   "notes <topic>",
	Short: "Print the study notes for a topic",
	Args:  cobra.ExactArgs(1),
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
		t, ok := cat.FindTopic(args[0])
		if !ok {
			return fmt.Errorf("unknown topic %q (see 'fmaprep topics')", args[0])
		}
		src, ok := cat.Note(t.Name)
		if !ok {
			return fmt.Errorf("no notes for %s yet", t.Name)
		}
		width, _ := cmd.Flags().GetInt("width")
		fmt.Fprintln(cmd.OutOrStdout(), notes.Render(src, width, e.renderer()))
		return nil
	},
}

func init() {
	notesCmd.Flags().IntP("width", "w", 80, "Wrap width")
}
