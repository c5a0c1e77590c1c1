package mirror

import (
	"context"
	"fmt"
	"io"

	"github.com/erkineren/pipeline-notify/internal/models"
	"github.com/erkineren/pipeline-notify/internal/report"
	"github.com/erkineren/pipeline-notify/internal/tracker"
	log "github.com/sirupsen/logrus"
)

// IssueSource yields the unresolved issues to mirror.
type IssueSource interface {
	UnresolvedIssues(ctx context.Context) ([]models.SonarIssue, error)
}

// Mirror copies the unresolved SonarQube issues of a project into one
// tracker issue.
type Mirror struct {
	Source     IssueSource
	Tracker    tracker.Tracker
	ProjectKey string
	LinkBase   string
	// DryRun prints the report instead of filing it.
	DryRun bool
	Out    io.Writer
}

func (m *Mirror) Run(ctx context.Context) error {
	issues, err := m.Source.UnresolvedIssues(ctx)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		fmt.Fprintln(m.Out, "No issues found in SonarQube.")
		return nil
	}

	r := report.Build(issues, m.ProjectKey, m.LinkBase)
	log.WithFields(log.Fields{
		"issues":   len(issues),
		"reported": min(len(issues), report.MaxIssues),
	}).Info("Built SonarQube report")

	if m.DryRun {
		fmt.Fprintf(m.Out, "%s\n\n%s", r.Title, r.Body)
		return nil
	}

	issueURL, err := m.Tracker.CreateIssue(ctx, r.Title, r.Body)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.Out, "%s issue created successfully!\n", m.Tracker.Name())
	fmt.Fprintln(m.Out, "Issue URL:", issueURL)
	return nil
}
