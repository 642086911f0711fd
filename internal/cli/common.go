package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pythonwiki/wikimig/internal/clock"
	"github.com/pythonwiki/wikimig/internal/config"
	"github.com/pythonwiki/wikimig/internal/engine"
	"github.com/pythonwiki/wikimig/internal/fsops"
	"github.com/pythonwiki/wikimig/internal/gitx"
)

// resolveRoot picks the documentation repository root: an explicit --root
// wins, then the WIKIMIG_ROOT environment variable, then the enclosing git
// checkout of the working directory.
func resolveRoot(flagRoot string) (string, error) {
	if flagRoot != "" {
		return flagRoot, nil
	}
	if envRoot := os.Getenv(config.EnvRoot); envRoot != "" {
		return envRoot, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	root, err := gitx.NewRealGitRepo().Discover(cwd)
	if err != nil {
		return "", fmt.Errorf("cannot locate the documentation repository: %w (use --root or %s)", err, config.EnvRoot)
	}
	return root, nil
}

// newEngine creates an engine over the resolved repository root with real
// implementations of all dependencies.
func newEngine(flagRoot string) (*engine.Engine, error) {
	root, err := resolveRoot(flagRoot)
	if err != nil {
		return nil, err
	}

	fs := fsops.NewRealFS()
	gitRepo := gitx.NewRealGitRepo()
	clk := &clock.RealClock{}
	paths := config.NewPaths(root)

	return engine.New(fs, gitRepo, clk, paths), nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
