package gitx

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// setupGitRepo creates a temporary git repository for testing.
func setupGitRepo(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	// Initialize git repo
	cmd := exec.Command("git", "init")
	cmd.Dir = tmpDir
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to init git repo: %v", err)
	}

	// Configure git user for commits
	cmd = exec.Command("git", "config", "user.email", "test@example.com")
	cmd.Dir = tmpDir
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to configure git email: %v", err)
	}

	cmd = exec.Command("git", "config", "user.name", "Test User")
	cmd.Dir = tmpDir
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to configure git name: %v", err)
	}

	return tmpDir
}

// addFile creates a file under the repo and stages it so git mv/rm can act on it.
func addFile(t *testing.T, repoDir, relPath, content string) {
	t.Helper()

	fullPath := filepath.Join(repoDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cmd := exec.Command("git", "add", relPath)
	cmd.Dir = repoDir
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to stage file: %v", err)
	}
}

func TestRealGitRepo_Discover(t *testing.T) {
	repo := NewRealGitRepo()

	t.Run("finds git repo from root", func(t *testing.T) {
		gitDir := setupGitRepo(t)

		root, err := repo.Discover(gitDir)
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}

		if root != gitDir {
			t.Errorf("Discover returned wrong root: got %s, want %s", root, gitDir)
		}
	})

	t.Run("finds git repo from subdirectory", func(t *testing.T) {
		gitDir := setupGitRepo(t)

		subDir := filepath.Join(gitDir, "python", "people")
		if err := os.MkdirAll(subDir, 0755); err != nil {
			t.Fatalf("failed to create subdirectories: %v", err)
		}

		root, err := repo.Discover(subDir)
		if err != nil {
			t.Fatalf("Discover from subdirectory failed: %v", err)
		}

		if root != gitDir {
			t.Errorf("Discover returned wrong root: got %s, want %s", root, gitDir)
		}
	})

	t.Run("returns error when not in git repo", func(t *testing.T) {
		tmpDir := t.TempDir()

		_, err := repo.Discover(tmpDir)
		if err == nil {
			t.Error("Expected error when not in git repo, got nil")
		}
		if !strings.Contains(err.Error(), "not in a git repository") {
			t.Errorf("Expected 'not in a git repository' error, got: %v", err)
		}
	})
}

func TestRealGitRepo_Move(t *testing.T) {
	repo := NewRealGitRepo()

	t.Run("moves tracked file", func(t *testing.T) {
		gitDir := setupGitRepo(t)
		addFile(t, gitDir, filepath.Join("python", "people", "JohnSmith.md"), "# John")

		dstParent := filepath.Join(gitDir, "people")
		if err := os.MkdirAll(dstParent, 0755); err != nil {
			t.Fatalf("failed to create destination dir: %v", err)
		}

		src := filepath.Join("python", "people", "JohnSmith.md")
		dst := filepath.Join("people", "JohnSmith.md")
		if err := repo.Move(gitDir, src, dst); err != nil {
			t.Fatalf("Move failed: %v", err)
		}

		if _, err := os.Stat(filepath.Join(gitDir, dst)); err != nil {
			t.Errorf("destination missing after move: %v", err)
		}
		if _, err := os.Stat(filepath.Join(gitDir, src)); !os.IsNotExist(err) {
			t.Error("source should be gone after move")
		}
	})

	t.Run("fails for untracked file", func(t *testing.T) {
		gitDir := setupGitRepo(t)

		untracked := filepath.Join(gitDir, "loose.md")
		if err := os.WriteFile(untracked, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		err := repo.Move(gitDir, "loose.md", "moved.md")
		if err == nil {
			t.Error("Expected error moving untracked file, got nil")
		}
	})
}

func TestRealGitRepo_Remove(t *testing.T) {
	repo := NewRealGitRepo()

	t.Run("removes tracked file", func(t *testing.T) {
		gitDir := setupGitRepo(t)
		addFile(t, gitDir, "stale.md", "old")

		if err := repo.Remove(gitDir, "stale.md"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}

		if _, err := os.Stat(filepath.Join(gitDir, "stale.md")); !os.IsNotExist(err) {
			t.Error("file should be gone after remove")
		}
	})

	t.Run("removes tracked directory recursively", func(t *testing.T) {
		gitDir := setupGitRepo(t)
		addFile(t, gitDir, filepath.Join("psf", "people", "Dupe", "index.md"), "# Dupe")

		if err := repo.Remove(gitDir, filepath.Join("psf", "people", "Dupe")); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}

		if _, err := os.Stat(filepath.Join(gitDir, "psf", "people", "Dupe")); !os.IsNotExist(err) {
			t.Error("directory should be gone after remove")
		}
	})

	t.Run("fails for path git does not know", func(t *testing.T) {
		gitDir := setupGitRepo(t)

		err := repo.Remove(gitDir, "never-existed.md")
		if err == nil {
			t.Error("Expected error removing unknown path, got nil")
		}
	})
}

func TestFakeGitRepo(t *testing.T) {
	t.Run("returns predetermined root", func(t *testing.T) {
		repo := NewFakeGitRepo("/fake/repo/root")

		root, err := repo.Discover("/any/path")
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		if root != "/fake/repo/root" {
			t.Errorf("Discover = %s, want /fake/repo/root", root)
		}
	})

	t.Run("records moves and removes", func(t *testing.T) {
		repo := NewFakeGitRepo("/fake/repo/root")

		if err := repo.Move("/fake/repo/root", "a.md", "b.md"); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if err := repo.Remove("/fake/repo/root", "c.md"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}

		moves := repo.Moves()
		if len(moves) != 1 || moves[0] != [2]string{"a.md", "b.md"} {
			t.Errorf("Moves = %v, want [[a.md b.md]]", moves)
		}
		removes := repo.Removes()
		if len(removes) != 1 || removes[0] != "c.md" {
			t.Errorf("Removes = %v, want [c.md]", removes)
		}
	})

	t.Run("returns error when configured", func(t *testing.T) {
		repo := NewFakeGitRepo("/fake/repo/root")
		repo.SetError(os.ErrPermission)

		if err := repo.Move("/fake/repo/root", "a.md", "b.md"); err != os.ErrPermission {
			t.Errorf("Expected os.ErrPermission, got %v", err)
		}
		if err := repo.Remove("/fake/repo/root", "a.md"); err != os.ErrPermission {
			t.Errorf("Expected os.ErrPermission, got %v", err)
		}
		if len(repo.Moves()) != 0 || len(repo.Removes()) != 0 {
			t.Error("failed operations should not be recorded")
		}
	})
}
