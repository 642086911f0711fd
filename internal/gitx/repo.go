// Package gitx wraps the git operations the migration executor shells out to.
// Moves and removals go through git so history is preserved; callers fall back
// to plain filesystem operations when the tree is not a git checkout.
package gitx

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo provides an abstraction for git repository operations.
type GitRepo interface {
	// Discover finds the git repository root starting from cwd.
	Discover(cwd string) (root string, err error)

	// Move stages a rename of src to dst using git mv. Paths are relative
	// to the repository root.
	Move(root, src, dst string) error

	// Remove deletes path from the worktree and index using git rm.
	Remove(root, path string) error
}

// RealGitRepo implements GitRepo using actual git commands.
type RealGitRepo struct{}

// NewRealGitRepo creates a new RealGitRepo.
func NewRealGitRepo() *RealGitRepo {
	return &RealGitRepo{}
}

// Discover finds the git repository root by walking up from cwd looking for .git directory.
func (g *RealGitRepo) Discover(cwd string) (string, error) {
	absPath, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		gitDir := filepath.Join(current, ".git")
		if info, err := os.Stat(gitDir); err == nil {
			// .git can be a directory or a file (for worktrees/submodules)
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached root directory
			return "", fmt.Errorf("not in a git repository")
		}
		current = parent
	}
}

// Move stages a rename of src to dst using git mv.
func (g *RealGitRepo) Move(root, src, dst string) error {
	cmd := exec.Command("git", "mv", src, dst)
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git mv %s %s failed: %w: %s", src, dst, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Remove deletes path from the worktree and index using git rm.
func (g *RealGitRepo) Remove(root, path string) error {
	cmd := exec.Command("git", "rm", "-rf", "--quiet", path)
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git rm %s failed: %w: %s", path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// FakeGitRepo implements GitRepo with predetermined behavior for testing.
// It records the moves and removals requested of it.
type FakeGitRepo struct {
	root    string
	moves   [][2]string
	removes []string
	err     error
}

// NewFakeGitRepo creates a new FakeGitRepo rooted at root.
func NewFakeGitRepo(root string) *FakeGitRepo {
	return &FakeGitRepo{root: root}
}

// SetError sets an error to be returned by all operations. Discover still
// succeeds so callers can exercise their non-git fallback paths.
func (g *FakeGitRepo) SetError(err error) {
	g.err = err
}

// Discover returns the predetermined root.
func (g *FakeGitRepo) Discover(cwd string) (string, error) {
	return g.root, nil
}

// Move records the requested rename.
func (g *FakeGitRepo) Move(root, src, dst string) error {
	if g.err != nil {
		return g.err
	}
	g.moves = append(g.moves, [2]string{src, dst})
	return nil
}

// Remove records the requested removal.
func (g *FakeGitRepo) Remove(root, path string) error {
	if g.err != nil {
		return g.err
	}
	g.removes = append(g.removes, path)
	return nil
}

// Moves returns the renames recorded so far as (src, dst) pairs.
func (g *FakeGitRepo) Moves() [][2]string {
	return g.moves
}

// Removes returns the removals recorded so far.
func (g *FakeGitRepo) Removes() []string {
	return g.removes
}
