package pkgsync

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/kiosk404/animus/pkg/logger"
)

// Installer performs batched plugin package installation. One call covers
// the whole batch; a partial underlying failure is not distinguished
// per-package.
type Installer interface {
	// Install installs the given packages.
	Install(ctx context.Context, pkgs []string) error

	// InstallLatest reinstalls the given packages pinned to latest.
	InstallLatest(ctx context.Context, pkgs []string) error
}

// CommandInstaller shells out to a configured install command, appending
// the package names as arguments.
type CommandInstaller struct {
	command []string
}

// NewCommandInstaller builds an installer around the given argv. Returns
// nil for an empty argv, which disables installation.
func NewCommandInstaller(command []string) *CommandInstaller {
	if len(command) == 0 {
		return nil
	}
	return &CommandInstaller{command: command}
}

func (c *CommandInstaller) Install(ctx context.Context, pkgs []string) error {
	return c.run(ctx, pkgs)
}

func (c *CommandInstaller) InstallLatest(ctx context.Context, pkgs []string) error {
	pinned := make([]string, len(pkgs))
	for i, p := range pkgs {
		pinned[i] = p + "@latest"
	}
	return c.run(ctx, pinned)
}

func (c *CommandInstaller) run(ctx context.Context, pkgs []string) error {
	args := append(append([]string{}, c.command[1:]...), pkgs...)
	cmd := exec.CommandContext(ctx, c.command[0], args...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("install command failed: %w: %s", err, out)
	}
	logger.DebugX(moduleName, "install command succeeded for %d packages", len(pkgs))
	return nil
}
