package main

import (
	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/reminder"
	"github.com/spf13/cobra"
)

func remindCmd() *cobra.Command {
	var (
		once     bool
		schedule string
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send the daily spending digest",
		Long: `Run in the foreground and send a digest of today's spending and any budget
alerts on a cron schedule (reminder.schedule, 09:00 daily by default).

The digest respects the daily reminder and budget alert settings. With
--once the digest is printed right away, whatever the settings say.

Examples:
  spent remind --once
  spent remind --schedule "0 21 * * *"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cfg, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			printer := reminder.WriterNotifier{W: cmd.OutOrStdout(), Money: cli.FormatMoney}

			if once {
				_, err := reminder.NewScheduler(store, printer).RunOnce(ctx)
				return err
			}

			if schedule == "" {
				schedule = cfg.ReminderSchedule
			}

			ctx, stop := cli.NewShutdownNotice(cmd.OutOrStdout(), "Reminders").Watch(ctx)
			defer stop()

			notifier := reminder.Notifiers{reminder.LogNotifier{}, printer}
			printLine(cmd, cli.FormatInfo("Sending reminders on schedule "+schedule+". Press Ctrl+C to stop."))
			return reminder.NewScheduler(store, notifier).Run(ctx, schedule)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "print the digest now and exit")
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron schedule (default: reminder.schedule)")

	return cmd
}
