package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIssue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/api/2/issue", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ci-bot", user)
		assert.Equal(t, "api-token", pass)

		var payload struct {
			Fields struct {
				Project     struct{ Key string }  `json:"project"`
				IssueType   struct{ Name string } `json:"issuetype"`
				Summary     string                `json:"summary"`
				Description string                `json:"description"`
			} `json:"fields"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "SHOP", payload.Fields.Project.Key)
		assert.Equal(t, "Bug", payload.Fields.IssueType.Name)
		assert.Equal(t, "SonarQube Issues Report", payload.Fields.Summary)
		assert.Equal(t, "### report", payload.Fields.Description)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"10001","key":"SHOP-12","self":"https://acme.atlassian.net/rest/api/2/issue/10001"}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL+"/", "ci-bot", "api-token", "SHOP", "Bug", 5*time.Second)
	require.NoError(t, err)

	issueURL, err := c.CreateIssue(context.Background(), "SonarQube Issues Report", "### report")

	require.NoError(t, err)
	assert.Equal(t, server.URL+"/browse/SHOP-12", issueURL)
	assert.Equal(t, "Jira", c.Name())
}

func TestCreateIssue_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorMessages":[],"errors":{"issuetype":"Specify a valid issue type"}}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "ci-bot", "api-token", "SHOP", "Chore", 5*time.Second)
	require.NoError(t, err)

	_, err = c.CreateIssue(context.Background(), "title", "body")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Specify a valid issue type")
}
