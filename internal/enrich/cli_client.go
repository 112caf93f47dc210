package enrich

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CLIClient runs a locally installed claude binary in print mode.
type CLIClient struct {
	path string
}

func NewCLIClient(path string) *CLIClient {
	return &CLIClient{path: path}
}

func (c *CLIClient) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	cmd := exec.CommandContext(ctx, c.path, "-p", "--max-turns", "1", "--system-prompt", p.System)
	cmd.Stdin = strings.NewReader(p.User)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", c.path, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", c.path, err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return nil, fmt.Errorf("%s printed nothing", c.path)
	}
	return &Completion{Text: text}, nil
}
