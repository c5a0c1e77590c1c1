package cluster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Kubectl lists pods by running "kubectl get pods" and returning its stdout
// verbatim.
type Kubectl struct {
	Path string
	Sudo bool
}

func NewKubectl(path string, sudo bool) *Kubectl {
	if path == "" {
		path = "kubectl"
	}
	return &Kubectl{Path: path, Sudo: sudo}
}

func (k *Kubectl) command(namespace string) (string, []string) {
	args := []string{"get", "pods", "-n", namespace}
	if k.Sudo {
		return "sudo", append([]string{k.Path}, args...)
	}
	return k.Path, args
}

// ListPods returns whatever kubectl printed on stdout. A non-zero exit is
// logged and does not fail the call; a kubectl that cannot be started does.
func (k *Kubectl) ListPods(ctx context.Context, namespace string) (string, error) {
	name, args := k.command(namespace)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.WithField("command", name+" "+strings.Join(args, " ")).Debug("Listing pods")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			return "", fmt.Errorf("failed to run %s: %w", name, err)
		}
		log.WithFields(log.Fields{
			"exit_code": exitErr.ExitCode(),
			"stderr":    strings.TrimSpace(stderr.String()),
		}).Warn("kubectl exited with an error, using its output as is")
	}

	return stdout.String(), nil
}
