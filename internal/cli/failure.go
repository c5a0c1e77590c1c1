package cli

import (
	"github.com/erkineren/pipeline-notify/internal/bot"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newFailureCmd(a *app) *cobra.Command {
	var consoleURL string

	cmd := &cobra.Command{
		Use:   "failure",
		Short: "Notify the chat that the deployment failed",
		Long: `Sends "❌Deployment FAILED." to the configured Telegram chat, followed by
the console URL of the failed build when it is known from --console-url,
BUILD_URL or JOB_URL and BUILD_NUMBER.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if err := cfg.ForNotify(); err != nil {
				return err
			}

			if consoleURL == "" {
				consoleURL = cfg.Build.ConsoleURL()
			}
			if consoleURL == "" {
				log.Warn("Build console URL is unknown, sending the alert without it")
			}

			b, err := bot.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.APIEndpoint, cfg.HTTPTimeout)
			if err != nil {
				return err
			}
			return b.Notify(cmd.Context(), bot.FailureMessage(consoleURL))
		},
	}

	cmd.Flags().StringVar(&consoleURL, "console-url", "", "Console URL of the failed build")

	return cmd
}
