// Package cli wires the notifier, pod lister and issue mirror into the
// pipeline-notify command tree.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/erkineren/pipeline-notify/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries state shared by the subcommands of one root command.
type app struct {
	cfg      *config.Config
	logLevel string
}

// NewRootCmd returns a fresh command tree, so tests do not share flag state.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "pipeline-notify",
		Short: "CI/CD pipeline notifications and SonarQube issue mirroring",
		Long: `pipeline-notify is called from CI pipeline steps. It reports deployment
results to a Telegram chat and files unresolved SonarQube issues as a
single GitHub or Jira issue.

Examples:
  pipeline-notify failure                # Alert that the deployment failed
  pipeline-notify success -n todo-app    # Alert success with the pod list
  pipeline-notify sonar-issues           # Mirror SonarQube issues to the tracker`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(newFailureCmd(a))
	cmd.AddCommand(newSuccessCmd(a))
	cmd.AddCommand(newSonarIssuesCmd(a))

	return cmd
}

// setup loads the configuration and configures logging on stderr.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	log.SetLevel(level)

	a.cfg = cfg
	return nil
}

// Execute runs the command tree with ctx as the root context.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
