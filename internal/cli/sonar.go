package cli

import (
	"fmt"

	"github.com/erkineren/pipeline-notify/internal/config"
	"github.com/erkineren/pipeline-notify/internal/mirror"
	"github.com/erkineren/pipeline-notify/internal/sonar"
	"github.com/erkineren/pipeline-notify/internal/tracker"
	"github.com/erkineren/pipeline-notify/internal/tracker/github"
	"github.com/erkineren/pipeline-notify/internal/tracker/jira"
	"github.com/spf13/cobra"
)

func newSonarIssuesCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sonar-issues",
		Short: "File unresolved SonarQube issues as one tracker issue",
		Long: `Fetches the unresolved issues of SONARQUBE_PROJECT_KEY and, when there are
any, creates a single issue summarizing the first 15 of them in the tracker
selected by ISSUE_TRACKER (github or jira).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg

			// Dry runs never reach the tracker.
			var t tracker.Tracker
			if dryRun {
				if err := cfg.ForReport(); err != nil {
					return err
				}
			} else {
				if err := cfg.ForMirror(); err != nil {
					return err
				}
				var err error
				if t, err = newTracker(cfg); err != nil {
					return err
				}
			}

			m := &mirror.Mirror{
				Source:     sonar.NewClient(cfg.Sonar.URL, cfg.Sonar.Token, cfg.Sonar.ProjectKey, cfg.HTTPTimeout),
				Tracker:    t,
				ProjectKey: cfg.Sonar.ProjectKey,
				LinkBase:   cfg.Sonar.LinkBase(),
				DryRun:     dryRun,
				Out:        cmd.OutOrStdout(),
			}
			return m.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report instead of creating the issue")

	return cmd
}

func newTracker(cfg *config.Config) (tracker.Tracker, error) {
	switch cfg.Tracker.Kind {
	case config.TrackerGitHub:
		gh := cfg.Tracker.GitHub
		return github.NewClient(gh.Token, gh.Owner(), gh.Name(), gh.APIURL, cfg.HTTPTimeout)
	case config.TrackerJira:
		j := cfg.Tracker.Jira
		return jira.NewClient(j.URL, j.User, j.Token, j.Project, j.IssueType, cfg.HTTPTimeout)
	default:
		return nil, fmt.Errorf("unsupported issue tracker %q", cfg.Tracker.Kind)
	}
}
