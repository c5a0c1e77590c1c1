package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "❌Deployment FAILED. http://jenkins/job/front/7/console", FailureMessage("http://jenkins/job/front/7/console"))
	assert.Equal(t, "❌Deployment FAILED.", FailureMessage(""))
}

func TestSuccessMessage(t *testing.T) {
	pods := "NAME    READY   STATUS    RESTARTS   AGE\nweb-0   1/1     Running   0          3m\n"

	assert.Equal(t, "✅Cluster with full deployment is ready.\n\nActive Pods:\n"+pods, SuccessMessage(pods))
}
