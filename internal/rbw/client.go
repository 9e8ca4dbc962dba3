// Package rbw mediates between the lookup contract and the rbw
// command-line client: it invokes rbw as a child process, parses its
// output into normalized entries, and selects the unique entry matching
// a query.
package rbw

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/lalmeras/rbw-lookup/internal/logging"
	"github.com/lalmeras/rbw-lookup/internal/metrics"
	pkgexec "github.com/lalmeras/rbw-lookup/pkg/exec"
	"github.com/lalmeras/rbw-lookup/pkg/lookup"
)

// DefaultTool is the executable invoked when no path is configured.
const DefaultTool = "rbw"

// defaultField is the primary password field revealed by plain 'rbw get'.
const defaultField = "password"

// Client invokes the rbw CLI. It holds no state beyond its configuration
// and is safe for concurrent use.
type Client struct {
	tool     string
	executor pkgexec.CommandExecutor
	logger   *logging.Logger
}

// NewClient creates a client for the given rbw executable path. An empty
// tool falls back to DefaultTool.
func NewClient(tool string, logger *logging.Logger) *Client {
	return newClient(tool, logger, pkgexec.DefaultExecutor())
}

// NewClientWithExecutor creates a client with a custom executor. This is
// primarily for testing, allowing command execution to be mocked.
func NewClientWithExecutor(tool string, logger *logging.Logger, executor pkgexec.CommandExecutor) *Client {
	return newClient(tool, logger, executor)
}

func newClient(tool string, logger *logging.Logger, executor pkgexec.CommandExecutor) *Client {
	if tool == "" {
		tool = DefaultTool
	}
	if logger == nil {
		logger = logging.New(false, false)
	}
	return &Client{tool: tool, executor: executor, logger: logger}
}

// Tool returns the executable name this client invokes.
func (c *Client) Tool() string {
	return c.tool
}

// run executes one rbw subcommand and classifies failures into the
// lookup error taxonomy. Arguments are always passed as an explicit
// vector, so entry names with shell metacharacters are safe.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	c.logger.Debug("running %s %s", c.tool, strings.Join(args, " "))
	metrics.RecordInvocation(args[0])

	stdout, stderr, err := c.executor.Execute(ctx, c.tool, args...)
	if err == nil {
		return stdout, nil
	}

	if pkgexec.IsNotFound(err) {
		return nil, lookup.ToolNotFoundError{Tool: c.tool, Err: err}
	}
	if strings.Contains(strings.ToLower(string(stderr)), "locked") {
		return nil, lookup.StoreLockedError{Stderr: string(stderr)}
	}
	return nil, lookup.ToolExecutionError{
		Args:     args,
		ExitCode: pkgexec.ExitCode(err),
		Stderr:   string(stderr),
		Err:      err,
	}
}

// List enumerates all entries in the store as normalized records.
// Only metadata is fetched; no secret value is revealed.
func (c *Client) List(ctx context.Context) ([]lookup.Entry, error) {
	stdout, err := c.run(ctx, "list", "--fields", "name,folder,id")
	if err != nil {
		return nil, err
	}
	return ParseListing(stdout)
}

// FetchField reveals one field of the entry with the given unique id and
// returns the raw payload. The caller owns the returned bytes and is
// responsible for wiping them.
func (c *Client) FetchField(ctx context.Context, id, field string) ([]byte, error) {
	args := []string{"get"}
	if field != "" && field != defaultField {
		args = append(args, "--field", field)
	}
	args = append(args, id)
	return c.run(ctx, args...)
}

// Unlocked probes the rbw agent state. A locked store reports false
// without error; any other failure is surfaced.
func (c *Client) Unlocked(ctx context.Context) (bool, error) {
	_, err := c.run(ctx, "unlocked")
	if err == nil {
		return true, nil
	}
	var locked lookup.StoreLockedError
	if errors.As(err, &locked) {
		return false, nil
	}
	// 'rbw unlocked' exits non-zero without a "locked" message on some
	// versions; treat a plain non-zero exit as locked too.
	var execErr lookup.ToolExecutionError
	if errors.As(err, &execErr) && execErr.ExitCode > 0 {
		return false, nil
	}
	return false, err
}

// Validate checks that the rbw executable exists and the store is
// unlocked. It never attempts to unlock: unlocking requires interactive
// user action outside this system's control.
func (c *Client) Validate(ctx context.Context) error {
	if _, err := exec.LookPath(c.tool); err != nil {
		return lookup.ToolNotFoundError{Tool: c.tool, Err: err}
	}
	unlocked, err := c.Unlocked(ctx)
	if err != nil {
		return err
	}
	if !unlocked {
		return lookup.StoreLockedError{}
	}
	return nil
}
