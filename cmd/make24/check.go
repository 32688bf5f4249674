package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/i18n"
	"svw.info/make24/internal/usecase"
)

var errIncorrect = errors.New("answer is not 24")

func newCheckCmd(a *app) *cobra.Command {
	var (
		numbers string
		id      string
	)
	cmd := &cobra.Command{
		Use:   "check TOKEN...",
		Short: "Check an answer built from one token per argument",
		Long: `Each argument is one card: a number, an operator (+ - x / or × ÷), or a parenthesis.
Example: make24 check --numbers 8,3,3,2 8 x "(" 3 - 2 ")" x 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toks, err := domain.ParseTokens(args)
			if err != nil {
				return err
			}
			req := usecase.CheckRequest{PuzzleID: id, Tokens: toks}
			if numbers != "" {
				q, err := domain.ParseQuadruple(numbers)
				if err != nil {
					return err
				}
				req.Numbers = &q
			}

			uc, closeFn, err := a.service(cmd.Context(), id != "")
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := uc.Check(cmd.Context(), req)
			if err != nil {
				return err
			}
			p := i18n.Printer(i18n.Default().Match(a.cfg.Locale))
			out := cmd.OutOrStdout()
			st := failStyle
			if res.Correct {
				st = okStyle
			}
			fmt.Fprintln(out, st.Render(i18n.Verdict(p, res.Correct, res.Outcome)))
			for _, c := range res.Conflicts {
				fmt.Fprintln(out, "  "+i18n.ConflictText(p, c))
			}
			if !res.Correct {
				return errIncorrect
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&numbers, "numbers", "", "the four dealt cards, e.g. 8,3,3,2")
	cmd.Flags().StringVar(&id, "id", "", "check against a saved puzzle and record the attempt")
	cmd.MarkFlagsOneRequired("numbers", "id")
	return cmd
}
