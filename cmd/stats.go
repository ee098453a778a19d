package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/fmaprep/internal/tier"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show XP and tier standing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, counter, err := e.openXP(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		printStats(cmd.OutOrStdout(), counter.Total(), tier.Default())
		return nil
	},
}

func printStats(w io.Writer, total int, ladder []tier.Threshold) {
	s := tier.For(total, ladder)
	fmt.Fprintf(w, "XP:   %d\n", total)
	fmt.Fprintf(w, "Tier: %s\n", s.Name)
	if s.IsTop() {
		fmt.Fprintln(w, "Next: top tier reached")
	} else {
		fmt.Fprintf(w, "Next: %s in %d XP (%d%% of this tier)\n", s.Next, s.Remaining(), int(s.Progress()*100))
	}

	rows := make([][]string, 0, len(ladder))
	for _, t := range ladder {
		mark := ""
		if t.Name == s.Name {
			mark = "◀"
		}
		rows = append(rows, []string{t.Name, strconv.Itoa(t.MinXP), mark})
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, newTable().Headers("TIER", "MIN XP", "").Rows(rows...).String())
}
