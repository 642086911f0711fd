package integration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pythonwiki/wikimig/internal/clock"
	"github.com/pythonwiki/wikimig/internal/config"
	"github.com/pythonwiki/wikimig/internal/engine"
	"github.com/pythonwiki/wikimig/internal/fsops"
	"github.com/pythonwiki/wikimig/internal/gitx"
)

// setupEngine lays out a documentation tree under a temp root and builds an
// engine over it. The git repo is faked with a permanent error so every
// mutation exercises the plain-filesystem fallback, which is what actually
// changes the tree.
func setupEngine(t *testing.T, files map[string]string) (*engine.Engine, string) {
	t.Helper()

	root := t.TempDir()
	writeTree(t, root, files)

	gitRepo := gitx.NewFakeGitRepo(root)
	gitRepo.SetError(errors.New("not a git repository"))

	eng := engine.New(
		fsops.NewRealFS(),
		gitRepo,
		clock.NewFakeClock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)),
		config.NewPaths(root),
	)
	return eng, root
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}

func pathExists(root, rel string) bool {
	_, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}
