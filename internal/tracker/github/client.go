package github

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

type Client struct {
	client *github.Client
	owner  string
	repo   string
}

// NewClient returns a client for owner/repo. apiURL selects a GitHub
// Enterprise server; empty means api.github.com.
func NewClient(token, owner, repo, apiURL string, timeout time.Duration) (*Client, error) {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		client: client,
		owner:  owner,
		repo:   repo,
	}, nil
}

func (c *Client) Name() string {
	return "GitHub"
}
