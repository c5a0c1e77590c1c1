package report

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/erkineren/pipeline-notify/internal/models"
)

const (
	Title = "SonarQube Issues Report"

	// MaxIssues caps how many issues go into one report.
	MaxIssues = 15

	header = "### SonarQube Analysis Report\n\n"
)

// Build renders the tracker issue for issues, linking each one to the
// SonarQube UI at linkBase.
func Build(issues []models.SonarIssue, projectKey, linkBase string) models.IssueReport {
	if len(issues) > MaxIssues {
		issues = issues[:MaxIssues]
	}

	var body strings.Builder
	body.WriteString(header)
	for _, issue := range issues {
		fmt.Fprintf(&body, "- **%s**\n", orDefault(issue.Message, "No Message"))
		fmt.Fprintf(&body, "  - Severity: %s\n", orDefault(issue.Severity, "Unknown"))
		fmt.Fprintf(&body, "  - Component: %s\n", orDefault(issue.Component, "Unknown"))
		fmt.Fprintf(&body, "  - Line: %s\n", orDefault(issue.Line, "N/A"))
		fmt.Fprintf(&body, "  - [View in SonarQube](%s)\n\n", IssueURL(linkBase, projectKey, issue.Key))
	}

	return models.IssueReport{Title: Title, Body: body.String()}
}

// IssueURL returns the SonarQube UI link that opens issue key in project.
func IssueURL(linkBase, projectKey, key string) string {
	query := url.Values{}
	query.Set("id", projectKey)
	query.Set("open", key)
	return strings.TrimRight(linkBase, "/") + "/issues?" + query.Encode()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
