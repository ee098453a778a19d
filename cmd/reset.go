package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset accumulated XP to zero",
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

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			prompt := fmt.Sprintf("Reset %d XP to zero? [y/N] ", counter.Total())
			if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
				return errAborted
			}
		}

		before := counter.Total()
		if err := counter.Reset(ctx); err != nil {
			return fmt.Errorf("reset xp: %w", err)
		}
		e.logger.Info("xp reset", zap.Int("previous", before))
		fmt.Fprintln(cmd.OutOrStdout(), "XP reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
