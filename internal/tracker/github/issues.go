package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	log "github.com/sirupsen/logrus"
)

// CreateIssue opens an issue in the repository and returns its html_url.
func (c *Client) CreateIssue(ctx context.Context, title, body string) (string, error) {
	req := &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}

	issue, resp, err := c.client.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return "", fmt.Errorf("failed to create GitHub issue: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("failed to create GitHub issue: unexpected status code %d", resp.StatusCode)
	}

	log.WithFields(log.Fields{
		"repo":   c.owner + "/" + c.repo,
		"number": issue.GetNumber(),
	}).Info("GitHub issue created")

	return issue.GetHTMLURL(), nil
}
