package jira

import (
	"context"
	"fmt"
	"strings"
	"time"

	jiraBaseClient "github.com/andygrunwald/go-jira"
	log "github.com/sirupsen/logrus"
)

type Client struct {
	client    *jiraBaseClient.Client
	baseURL   string
	project   string
	issueType string
}

// NewClient returns a client that files issues of issueType in project,
// authenticating with user and an API token.
func NewClient(baseURL, user, token, project, issueType string, timeout time.Duration) (*Client, error) {
	tp := jiraBaseClient.BasicAuthTransport{
		Username: user,
		Password: token,
	}
	httpClient := tp.Client()
	httpClient.Timeout = timeout

	client, err := jiraBaseClient.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Jira client: %w", err)
	}

	return &Client{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		project:   project,
		issueType: issueType,
	}, nil
}

func (c *Client) Name() string {
	return "Jira"
}

// CreateIssue files the issue and returns its browse URL.
func (c *Client) CreateIssue(ctx context.Context, title, body string) (string, error) {
	issue := &jiraBaseClient.Issue{
		Fields: &jiraBaseClient.IssueFields{
			Project:     jiraBaseClient.Project{Key: c.project},
			Type:        jiraBaseClient.IssueType{Name: c.issueType},
			Summary:     title,
			Description: body,
		},
	}

	created, resp, err := c.client.Issue.CreateWithContext(ctx, issue)
	if err != nil {
		// NewJiraError folds Jira's errorMessages into the error.
		return "", fmt.Errorf("failed to create Jira issue: %w", jiraBaseClient.NewJiraError(resp, err))
	}

	log.WithFields(log.Fields{
		"project": c.project,
		"key":     created.Key,
	}).Info("Jira issue created")

	return c.baseURL + "/browse/" + created.Key, nil
}
