package models

// SonarIssue is an unresolved issue reported by SonarQube.
// Optional fields are empty when the scanner did not report them.
type SonarIssue struct {
	Key       string
	Message   string
	Severity  string
	Component string
	Line      string
}

// IssueReport is the tracker issue built from a set of SonarQube issues.
type IssueReport struct {
	Title string
	Body  string
}
