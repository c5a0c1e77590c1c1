package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	TrackerGitHub = "github"
	TrackerJira   = "jira"

	PodsSourceKubectl = "kubectl"
	PodsSourceAPI     = "api"
)

type Config struct {
	Telegram    TelegramConfig `koanf:"telegram"`
	Build       BuildConfig    `koanf:"build"`
	Cluster     ClusterConfig  `koanf:"cluster"`
	Sonar       SonarConfig    `koanf:"sonar"`
	Tracker     TrackerConfig  `koanf:"tracker"`
	HTTPTimeout time.Duration  `koanf:"http_timeout"`
	LogLevel    string         `koanf:"log_level"`
}

type TelegramConfig struct {
	BotToken    string `koanf:"bot_token" env:"TELEGRAM_BOT_TOKEN" validate:"required"`
	ChatID      string `koanf:"chat_id" env:"TELEGRAM_CHAT_ID" validate:"required"`
	APIEndpoint string `koanf:"api_endpoint" env:"TELEGRAM_API_ENDPOINT" validate:"required"`
}

// BuildConfig holds the Jenkins variables used to link back to a failed build.
type BuildConfig struct {
	URL    string `koanf:"url"`
	JobURL string `koanf:"job_url"`
	Number string `koanf:"number"`
}

// ConsoleURL returns the console log URL of the current build, or "" when
// the build cannot be located.
func (b BuildConfig) ConsoleURL() string {
	if b.URL != "" {
		return strings.TrimRight(b.URL, "/") + "/console"
	}
	if b.JobURL != "" && b.Number != "" {
		return fmt.Sprintf("%s/%s/console", strings.TrimRight(b.JobURL, "/"), b.Number)
	}
	return ""
}

type ClusterConfig struct {
	Namespace  string `koanf:"namespace" env:"KUBE_NAMESPACE" validate:"required"`
	Source     string `koanf:"source" env:"PODS_SOURCE" validate:"oneof=kubectl api"`
	Kubectl    string `koanf:"kubectl" env:"KUBECTL_PATH" validate:"required_if=Source kubectl"`
	Sudo       bool   `koanf:"sudo"`
	Kubeconfig string `koanf:"kubeconfig"`
}

type SonarConfig struct {
	URL        string `koanf:"url" env:"SONARQUBE_URL" validate:"required,url"`
	PublicURL  string `koanf:"public_url" env:"SONARQUBE_PUBLIC_URL" validate:"omitempty,url"`
	Token      string `koanf:"token" env:"SONARQUBE_TOKEN" validate:"required"`
	ProjectKey string `koanf:"project_key" env:"SONARQUBE_PROJECT_KEY" validate:"required"`
}

// LinkBase returns the base URL used in links to SonarQube issues.
func (s SonarConfig) LinkBase() string {
	if s.PublicURL != "" {
		return s.PublicURL
	}
	return s.URL
}

type TrackerConfig struct {
	Kind   string       `koanf:"kind" env:"ISSUE_TRACKER" validate:"oneof=github jira"`
	GitHub GitHubConfig `koanf:"github" validate:"-"`
	Jira   JiraConfig   `koanf:"jira" validate:"-"`
}

type GitHubConfig struct {
	Token  string `koanf:"token" env:"GITHUB_TOKEN" validate:"required"`
	Repo   string `koanf:"repo" env:"GITHUB_REPO" validate:"required,repo_slug"`
	APIURL string `koanf:"api_url" env:"GITHUB_API_URL" validate:"omitempty,url"`
}

// Owner returns the owner part of Repo.
func (g GitHubConfig) Owner() string {
	owner, _, _ := strings.Cut(g.Repo, "/")
	return owner
}

// Name returns the repository part of Repo.
func (g GitHubConfig) Name() string {
	_, name, _ := strings.Cut(g.Repo, "/")
	return name
}

type JiraConfig struct {
	URL       string `koanf:"url" env:"JIRA_URL" validate:"required,url"`
	User      string `koanf:"user" env:"JIRA_USER" validate:"required"`
	Token     string `koanf:"token" env:"JIRA_TOKEN" validate:"required"`
	Project   string `koanf:"project" env:"JIRA_PROJECT" validate:"required"`
	IssueType string `koanf:"issue_type" env:"JIRA_ISSUE_TYPE" validate:"required"`
}

// envKeys maps the environment variables read by Load to their config paths.
var envKeys = map[string]string{
	"TELEGRAM_BOT_TOKEN":    "telegram.bot_token",
	"TELEGRAM_CHAT_ID":      "telegram.chat_id",
	"TELEGRAM_API_ENDPOINT": "telegram.api_endpoint",

	"BUILD_URL":    "build.url",
	"JOB_URL":      "build.job_url",
	"BUILD_NUMBER": "build.number",

	"KUBE_NAMESPACE": "cluster.namespace",
	"PODS_SOURCE":    "cluster.source",
	"KUBECTL_PATH":   "cluster.kubectl",
	"KUBECTL_SUDO":   "cluster.sudo",
	"KUBECONFIG":     "cluster.kubeconfig",

	"SONARQUBE_URL":         "sonar.url",
	"SONARQUBE_PUBLIC_URL":  "sonar.public_url",
	"SONARQUBE_TOKEN":       "sonar.token",
	"SONARQUBE_PROJECT_KEY": "sonar.project_key",

	"ISSUE_TRACKER":   "tracker.kind",
	"GITHUB_TOKEN":    "tracker.github.token",
	"GITHUB_REPO":     "tracker.github.repo",
	"GITHUB_API_URL":  "tracker.github.api_url",
	"JIRA_URL":        "tracker.jira.url",
	"JIRA_USER":       "tracker.jira.user",
	"JIRA_TOKEN":      "tracker.jira.token",
	"JIRA_PROJECT":    "tracker.jira.project",
	"JIRA_ISSUE_TYPE": "tracker.jira.issue_type",

	"HTTP_TIMEOUT": "http_timeout",
	"LOG_LEVEL":    "log_level",
}

func defaults() Config {
	return Config{
		Telegram: TelegramConfig{
			APIEndpoint: "https://api.telegram.org/bot%s/%s",
		},
		Cluster: ClusterConfig{
			Namespace: "todo-app",
			Source:    PodsSourceKubectl,
			Kubectl:   "kubectl",
		},
		Tracker: TrackerConfig{
			Kind: TrackerGitHub,
			Jira: JiraConfig{IssueType: "Task"},
		},
		HTTPTimeout: 30 * time.Second,
		LogLevel:    "info",
	}
}

// Load reads the configuration from the environment, after loading an
// optional .env file from the working directory. It does not validate;
// each command validates the sections it needs.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
