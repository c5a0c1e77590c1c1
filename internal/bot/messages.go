package bot

const (
	failurePrefix = "❌Deployment FAILED."
	successPrefix = "✅Cluster with full deployment is ready."
)

// FailureMessage announces a failed deployment, linking the build console
// when consoleURL is known.
func FailureMessage(consoleURL string) string {
	if consoleURL == "" {
		return failurePrefix
	}
	return failurePrefix + " " + consoleURL
}

// SuccessMessage announces a finished deployment followed by the pod listing.
func SuccessMessage(pods string) string {
	return successPrefix + "\n\nActive Pods:\n" + pods
}
