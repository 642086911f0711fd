package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pythonwiki/wikimig/internal/corpus"
)

func fileNode(wiki, key string, size int64) corpus.Node {
	return corpus.Node{
		Wiki: wiki,
		Key:  key,
		Path: wiki + "/people/" + key + ".md",
		Kind: corpus.KindFile,
		Size: size,
	}
}

func dirNode(wiki, key string, size int64) corpus.Node {
	return corpus.Node{
		Wiki: wiki,
		Key:  key,
		Path: wiki + "/people/" + key,
		Kind: corpus.KindDir,
		Size: size,
	}
}

func group(wiki, key string, nodes ...corpus.Node) corpus.Group {
	return corpus.Group{Wiki: wiki, Key: key, Nodes: nodes}
}

func TestReconcile(t *testing.T) {
	python := []corpus.Group{
		group("python", "JohnSmith", dirNode("python", "JohnSmith", 900)),
		group("python", "TimPeters", fileNode("python", "TimPeters", 100)),
	}
	psf := []corpus.Group{
		group("psf", "JohnSmith", fileNode("psf", "JohnSmith", 200)),
	}
	jython := []corpus.Group{
		group("jython", "JimHugunin", fileNode("jython", "JimHugunin", 50)),
	}

	g := Reconcile(python, psf, jython)

	t.Run("keys keep first-seen order", func(t *testing.T) {
		want := []string{"JohnSmith", "TimPeters", "JimHugunin"}
		if diff := cmp.Diff(want, g.Keys); diff != "" {
			t.Errorf("Keys mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("contributions stay in wiki priority order", func(t *testing.T) {
		groups := g.ByKey["JohnSmith"]
		if len(groups) != 2 {
			t.Fatalf("got %d contributions, want 2", len(groups))
		}
		if groups[0].Wiki != "python" || groups[1].Wiki != "psf" {
			t.Errorf("contribution order = %s, %s; want python, psf", groups[0].Wiki, groups[1].Wiki)
		}
	})

	t.Run("duplicates are keys with two or more wikis", func(t *testing.T) {
		want := []string{"JohnSmith"}
		if diff := cmp.Diff(want, g.Duplicates()); diff != "" {
			t.Errorf("Duplicates mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestResolveDirFile(t *testing.T) {
	t.Run("container wins over leaf", func(t *testing.T) {
		g := group("python", "JohnSmith",
			fileNode("python", "JohnSmith", 5000),
			dirNode("python", "JohnSmith", 10),
		)
		got := ResolveDirFile(g)
		if !got.IsDir() {
			t.Errorf("winner = %s, want the container", got.Path)
		}
	})

	t.Run("lone leaf survives", func(t *testing.T) {
		g := group("python", "JohnSmith", fileNode("python", "JohnSmith", 200))
		got := ResolveDirFile(g)
		if got.Kind != corpus.KindFile {
			t.Errorf("winner = %s, want the leaf", got.Path)
		}
	})
}

func TestPickRicher(t *testing.T) {
	tests := []struct {
		name     string
		groups   []corpus.Group
		wantWiki string
	}{
		{
			"container beats larger leaf",
			[]corpus.Group{
				group("python", "JohnSmith", fileNode("python", "JohnSmith", 9000)),
				group("psf", "JohnSmith", dirNode("psf", "JohnSmith", 10)),
			},
			"psf",
		},
		{
			"larger leaf beats smaller leaf",
			[]corpus.Group{
				group("python", "JohnSmith", fileNode("python", "JohnSmith", 100)),
				group("psf", "JohnSmith", fileNode("psf", "JohnSmith", 300)),
			},
			"psf",
		},
		{
			"larger container beats smaller container",
			[]corpus.Group{
				group("python", "JohnSmith", dirNode("python", "JohnSmith", 100)),
				group("psf", "JohnSmith", dirNode("psf", "JohnSmith", 900)),
			},
			"psf",
		},
		{
			"size tie keeps earlier wiki",
			[]corpus.Group{
				group("python", "JohnSmith", fileNode("python", "JohnSmith", 200)),
				group("psf", "JohnSmith", fileNode("psf", "JohnSmith", 200)),
			},
			"python",
		},
		{
			"dir+file dupe resolves before comparing",
			[]corpus.Group{
				group("python", "JohnSmith",
					fileNode("python", "JohnSmith", 9000),
					dirNode("python", "JohnSmith", 100),
				),
				group("psf", "JohnSmith", dirNode("psf", "JohnSmith", 300)),
			},
			"psf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickRicher(tt.groups)
			if got.Wiki != tt.wantWiki {
				t.Errorf("winner wiki = %s, want %s", got.Wiki, tt.wantWiki)
			}

			// The pick is a pure function of its input.
			again := PickRicher(tt.groups)
			if diff := cmp.Diff(got, again); diff != "" {
				t.Errorf("second pick differs (-first +second):\n%s", diff)
			}
		})
	}
}
