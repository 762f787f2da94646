package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jfcherng/gitweb/internal/domain"
)

// newVersionCmd creates the `version` subcommand, which reports the resolved
// git binary and its parsed version. Useful for diagnosing discovery issues
// with bundled installations.
func newVersionCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the resolved git binary and its version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, deps)
		},
	}
}

func runVersion(cmd *cobra.Command, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := deps.ConfigLoader()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	gitBin, version, err := deps.GitVersionQuerier(ctx, cfg, ".")
	if err != nil {
		if errors.Is(err, domain.ErrGitNotFound) {
			return fmt.Errorf("can't find git binary; is git installed?")
		}
		return err
	}

	stdout := deps.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	if version == nil {
		fmt.Fprintf(stdout, "git (version unknown) at %s\n", gitBin)
		return nil
	}
	fmt.Fprintf(stdout, "git %s at %s\n", version, gitBin)
	return nil
}
