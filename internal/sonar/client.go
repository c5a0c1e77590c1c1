package sonar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/erkineren/pipeline-notify/internal/models"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// ErrMalformedResponse is returned when SonarQube answers 200 with a body
// that is not JSON.
var ErrMalformedResponse = errors.New("malformed SonarQube response")

// StatusError is returned when the issues search answers anything but 200.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch SonarQube issues: status code %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	token      string
	projectKey string
	httpClient *http.Client
}

func NewClient(baseURL, token, projectKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		projectKey: projectKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) searchURL() string {
	query := url.Values{}
	query.Set("componentKeys", c.projectKey)
	query.Set("resolved", "false")
	return c.baseURL + "/api/issues/search?" + query.Encode()
}

// UnresolvedIssues returns the unresolved issues of the project as reported
// by a single issues search call.
func (c *Client) UnresolvedIssues(ctx context.Context) ([]models.SonarIssue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	// SonarQube user tokens are sent as the basic auth user with no password.
	req.SetBasicAuth(c.token, "")
	req.Header.Set("Accept", "application/json")

	log.WithField("project", c.projectKey).Debug("Fetching SonarQube issues")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch SonarQube issues: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read SonarQube response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	issues, err := parseIssues(body)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"project": c.projectKey,
		"total":   gjson.GetBytes(body, "total").Int(),
		"fetched": len(issues),
	}).Info("Fetched SonarQube issues")

	return issues, nil
}

func parseIssues(body []byte) ([]models.SonarIssue, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, body)
	}

	var issues []models.SonarIssue
	gjson.GetBytes(body, "issues").ForEach(func(_, issue gjson.Result) bool {
		issues = append(issues, models.SonarIssue{
			Key:       issue.Get("key").String(),
			Message:   issue.Get("message").String(),
			Severity:  issue.Get("severity").String(),
			Component: issue.Get("component").String(),
			Line:      issue.Get("line").String(),
		})
		return true
	})

	return issues, nil
}
