package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var repoSlugRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// ValidationError lists the environment variables that are missing or hold
// unusable values.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required configuration: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid configuration: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by the environment variable that sets them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})

	if err := v.RegisterValidation("repo_slug", func(fl validator.FieldLevel) bool {
		return repoSlugRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register repo_slug validation: %v", err))
	}

	return v
}

var validate = newValidator()

// Validate checks each given config section and returns a *ValidationError
// naming every offending variable.
func Validate(sections ...any) error {
	verr := &ValidationError{}
	for _, section := range sections {
		err := validate.Struct(section)
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate configuration: %w", err)
		}
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" || fe.Tag() == "required_if" {
				verr.Missing = append(verr.Missing, fe.Field())
			} else {
				verr.Invalid = append(verr.Invalid, fmt.Sprintf("%s=%q", fe.Field(), fe.Value()))
			}
		}
	}

	if len(verr.Missing) == 0 && len(verr.Invalid) == 0 {
		return nil
	}
	return verr
}

// ForNotify validates what the chat notification commands need.
func (c *Config) ForNotify() error {
	return Validate(c.Telegram)
}

// ForSuccess validates what the deployment success command needs.
func (c *Config) ForSuccess() error {
	return Validate(c.Telegram, c.Cluster)
}

// ForReport validates what fetching and rendering the SonarQube report needs.
func (c *Config) ForReport() error {
	return Validate(c.Sonar)
}

// ForMirror validates what the SonarQube issue mirror needs, including the
// selected tracker's section.
func (c *Config) ForMirror() error {
	sections := []any{c.Sonar, c.Tracker}
	switch c.Tracker.Kind {
	case TrackerGitHub:
		sections = append(sections, c.Tracker.GitHub)
	case TrackerJira:
		sections = append(sections, c.Tracker.Jira)
	}
	return Validate(sections...)
}
