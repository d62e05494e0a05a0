package main

import (
	"github.com/Veraticus/spent/internal/tui"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long: `Open a full-screen dashboard with Home, Analytics and Budget tabs.

Use tab to switch tabs, [ and ] to move between months, r to refresh and
q to quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cfg, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			return tui.Run(ctx, store,
				tui.WithToday(today),
				tui.WithRecentLimit(cfg.RecentLimit),
				tui.WithSpikeThreshold(cfg.SpikeThreshold),
			)
		},
	}
}
