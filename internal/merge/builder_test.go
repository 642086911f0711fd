package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pythonwiki/wikimig/internal/classify"
	"github.com/pythonwiki/wikimig/internal/config"
	"github.com/pythonwiki/wikimig/internal/corpus"
	"github.com/pythonwiki/wikimig/internal/fsops"
)

// newTestBuilder lays out files under a temp root and returns a builder plus
// a collector for gathering the groups the builder consumes.
func newTestBuilder(t *testing.T, files map[string]string) (*Builder, *corpus.Collector, *config.Paths) {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}

	paths := config.NewPaths(root)
	collector := corpus.NewCollector(fsops.NewRealFS(), paths)
	return NewBuilder(collector, paths), collector, paths
}

func collect(t *testing.T, c *corpus.Collector, wiki string) []corpus.Group {
	t.Helper()
	groups, err := c.Collect(wiki)
	if err != nil {
		t.Fatalf("Collect(%s) failed: %v", wiki, err)
	}
	return groups
}

func TestBuilder_CrossWikiDuplicate(t *testing.T) {
	b, c, _ := newTestBuilder(t, map[string]string{
		"python/people/JohnSmith/index.md": "# John Smith intro, the long version",
		"python/people/JohnSmith/talks.md": "conference talks",
		"python/people/JohnSmith/notes.md": "assorted notes",
		"psf/people/JohnSmith.md":          "# John Smith",
	})

	global := Reconcile(collect(t, c, "python"), collect(t, c, "psf"))
	plan, err := b.Build(global, nil, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	t.Run("container wins the move", func(t *testing.T) {
		wantMoves := []Move{{
			Source: "python/people/JohnSmith",
			Dest:   "people/JohnSmith",
			Desc:   "dupe winner: python/people/JohnSmith",
		}}
		if diff := cmp.Diff(wantMoves, plan.Moves); diff != "" {
			t.Errorf("Moves mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("losing leaf is removed with reason", func(t *testing.T) {
		wantRemoves := []Remove{{
			Path:   "psf/people/JohnSmith.md",
			Reason: "cross-wiki dupe, keeping python version",
		}}
		if diff := cmp.Diff(wantRemoves, plan.Removes); diff != "" {
			t.Errorf("Removes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("every vacated path is redirected", func(t *testing.T) {
		wantRedirects := map[string]string{
			"python/people/JohnSmith/index": "people/JohnSmith/index",
			"python/people/JohnSmith":       "people/JohnSmith",
			"python/people/JohnSmith/talks": "people/JohnSmith/talks",
			"python/people/JohnSmith/notes": "people/JohnSmith/notes",
			"psf/people/JohnSmith":          "people/JohnSmith",
		}
		if diff := cmp.Diff(wantRedirects, plan.Redirects); diff != "" {
			t.Errorf("Redirects mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no node is both moved and removed", func(t *testing.T) {
		assertMovesRemovesDisjoint(t, plan)
	})
}

func TestBuilder_DirFileDupe(t *testing.T) {
	b, c, _ := newTestBuilder(t, map[string]string{
		"python/people/MarySmith.md":       "# Mary Smith, short stub",
		"python/people/MarySmith/index.md": "# Mary Smith",
	})

	global := Reconcile(collect(t, c, "python"))
	plan, err := b.Build(global, nil, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	wantMoves := []Move{{
		Source: "python/people/MarySmith",
		Dest:   "people/MarySmith",
		Desc:   "python/people/MarySmith -> people/",
	}}
	if diff := cmp.Diff(wantMoves, plan.Moves); diff != "" {
		t.Errorf("Moves mismatch (-want +got):\n%s", diff)
	}

	wantRemoves := []Remove{{
		Path:   "python/people/MarySmith.md",
		Reason: "dir+file dupe, keeping dir",
	}}
	if diff := cmp.Diff(wantRemoves, plan.Removes); diff != "" {
		t.Errorf("Removes mismatch (-want +got):\n%s", diff)
	}

	assertMovesRemovesDisjoint(t, plan)
}

func TestBuilder_ContainerDominatesRicherLeaf(t *testing.T) {
	// The psf leaf is far richer, but kind dominates size: the python
	// container still wins and keeps its index page addressable.
	b, c, _ := newTestBuilder(t, map[string]string{
		"python/people/BobJones/index.md": "stub",
		"psf/people/BobJones.md":          "# Bob Jones, with a long and storied career in infrastructure",
	})

	global := Reconcile(collect(t, c, "python"), collect(t, c, "psf"))
	plan, err := b.Build(global, nil, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Container still beats leaf regardless of size.
	if len(plan.Moves) != 1 || plan.Moves[0].Source != "python/people/BobJones" {
		t.Fatalf("Moves = %+v, want the python container to win", plan.Moves)
	}
	if got := plan.Redirects["python/people/BobJones/index"]; got != "people/BobJones/index" {
		t.Errorf("index redirect = %q, want people/BobJones/index", got)
	}
}

func TestBuilder_ArchiveNonPersons(t *testing.T) {
	b, c, _ := newTestBuilder(t, map[string]string{
		"python/people/PyGame.md":          "the game library page",
		"python/people/Podcast/index.md":   "# Podcast",
		"python/people/Podcast/ep1.md":     "episode one",
		"python/people/JohnSmith/index.md": "# John Smith",
	})

	cls, err := classify.New()
	if err != nil {
		t.Fatalf("classify.New failed: %v", err)
	}

	persons, nonPersons := SplitPersons(collect(t, c, "python"), cls)
	global := Reconcile(persons)
	plan, err := b.Build(global, nonPersons, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	moved := map[string]string{}
	for _, m := range plan.Moves {
		moved[m.Source] = m.Dest
	}

	if got := moved["python/people/PyGame.md"]; got != "python/archive/PyGame.md" {
		t.Errorf("PyGame dest = %q, want python/archive/PyGame.md", got)
	}
	if got := moved["python/people/Podcast"]; got != "python/archive/Podcast" {
		t.Errorf("Podcast dest = %q, want python/archive/Podcast", got)
	}
	if got := moved["python/people/JohnSmith"]; got != "people/JohnSmith" {
		t.Errorf("JohnSmith dest = %q, want people/JohnSmith", got)
	}

	wantRedirects := map[string]string{
		"python/people/PyGame":        "python/archive/PyGame",
		"python/people/Podcast/index": "python/archive/Podcast/index",
		"python/people/Podcast":       "python/archive/Podcast",
		"python/people/Podcast/ep1":   "python/archive/Podcast/ep1",
	}
	for old, want := range wantRedirects {
		if got := plan.Redirects[old]; got != want {
			t.Errorf("redirect %s = %q, want %q", old, got, want)
		}
	}
}

func TestBuilder_AuxRouting(t *testing.T) {
	b, c, _ := newTestBuilder(t, map[string]string{
		"jython/people/SummerOfCode/index.md": "# GSoC",
		"jython/people/SummerOfCode/2008.md":  "projects 2008",
		"jython/people/JimHugunin.md":         "# Jim Hugunin",
	})

	cls, err := classify.New()
	if err != nil {
		t.Fatalf("classify.New failed: %v", err)
	}

	people, aux := SplitAux(collect(t, c, "jython"), cls)
	if len(aux) != 1 || aux[0].Group.Key != "SummerOfCode" {
		t.Fatalf("aux = %+v, want the SummerOfCode entry", aux)
	}
	if len(people) != 1 || people[0].Key != "JimHugunin" {
		t.Fatalf("people = %+v, want only JimHugunin", people)
	}

	plan, err := b.Build(Reconcile(people), nil, aux)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	moved := map[string]string{}
	for _, m := range plan.Moves {
		moved[m.Source] = m.Dest
	}
	if got := moved["jython/people/SummerOfCode"]; got != "jython/community/SummerOfCode" {
		t.Errorf("SummerOfCode dest = %q, want jython/community/SummerOfCode", got)
	}

	if got := plan.Redirects["jython/people/SummerOfCode/index"]; got != "jython/community/SummerOfCode/index" {
		t.Errorf("index redirect = %q", got)
	}
	if got := plan.Redirects["jython/people/SummerOfCode/2008"]; got != "jython/community/SummerOfCode/2008" {
		t.Errorf("subpage redirect = %q", got)
	}
}

// assertMovesRemovesDisjoint checks that no path is scheduled both as a move
// source and a removal.
func assertMovesRemovesDisjoint(t *testing.T, plan *Plan) {
	t.Helper()

	sources := map[string]bool{}
	for _, m := range plan.Moves {
		sources[m.Source] = true
	}
	for _, r := range plan.Removes {
		if sources[r.Path] {
			t.Errorf("%s is scheduled as both a move source and a removal", r.Path)
		}
	}
}
