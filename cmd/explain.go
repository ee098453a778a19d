package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/fmaprep/internal/mathrender"
	"github.com/abhisek/fmaprep/internal/tutor"
	"github.com/abhisek/fmaprep/internal/ui/richtext"
)

var explainCmd = &cobra.Command{
	Use:   "explain <question-id>",
	Short: "Ask the AI tutor for a worked explanation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		q, ok := cat.Question(args[0])
		if !ok {
			return fmt.Errorf("unknown question %q", args[0])
		}

		chosen := -1
		if c, _ := cmd.Flags().GetString("choice"); c != "" {
			idx, ok := parseChoice(c, len(q.Options))
			if !ok {
				return fmt.Errorf("invalid choice %q for %d options", c, len(q.Options))
			}
			chosen = idx
		}

		svc, err := e.tutor(ctx)
		if err != nil {
			return fmt.Errorf("tutor: %w", err)
		}
		exp, err := svc.Explain(ctx, tutor.Input{Question: q, Chosen: chosen})
		if errors.Is(err, tutor.ErrDisabled) {
			return errors.New("no LLM provider configured; set ANTHROPIC_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY")
		}
		if err != nil {
			return err
		}
		printExplanation(cmd.OutOrStdout(), exp, e.renderer())
		return nil
	},
}

func init() {
	explainCmd.Flags().StringP("choice", "c", "", "The option you picked (letter or number)")
}

func printExplanation(w io.Writer, exp *tutor.Explanation, math *mathrender.Renderer) {
	fmt.Fprintln(w, richtext.Render(exp.Markup(), quizWidth, math))
	if exp.Model != "" {
		fmt.Fprintf(w, "\n(%s)\n", exp.Model)
	}
}
