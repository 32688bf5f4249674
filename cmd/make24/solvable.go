package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"svw.info/make24/internal/domain"
)

func newSolvableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solvable A B C D",
		Short: "Report whether four cards can make 24",
		Long:  `Searches every ordering, operator choice, and grouping of the four cards. Cards may be given as four arguments or one comma-separated list.`,
		Args:  cobra.RangeArgs(1, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := domain.ParseQuadruple(strings.Join(args, " "))
			if err != nil {
				return err
			}
			uc, closeFn, err := a.service(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeFn()

			ok, st, err := uc.Solvable(cmd.Context(), q)
			if err != nil {
				return err
			}
			verdict := failStyle.Render("not solvable")
			if ok {
				verdict = okStyle.Render("solvable")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
				cardsStyle.Render(formatCards(q)),
				verdict,
				statStyle.Render(fmt.Sprintf("combinations=%d dur=%s", st.Combinations, st.Duration)),
			)
			return nil
		},
	}
}
