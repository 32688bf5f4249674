package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"svw.info/make24/internal/adapters/tui"
	"svw.info/make24/internal/i18n"
)

func newPlayCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			uc, closeFn, err := a.service(ctx, save)
			if err != nil {
				return err
			}
			defer closeFn()

			m := tui.New(ctx, uc, i18n.Default(), a.cfg.Locale)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "persist deals and attempts to the configured store")
	return cmd
}
