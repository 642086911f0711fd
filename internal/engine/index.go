package engine

import (
	"fmt"
	"os"
	"path"
	"strings"
)

// regeneratePeopleIndex rewrites the unified people index page listing every
// top-level entry: containers with their own index page appear once,
// containers without one list each contained page, leaves appear by stem.
// Returns the number of listed entries.
func (e *Engine) regeneratePeopleIndex() (int, error) {
	peopleAbs := e.paths.Abs(e.paths.PeopleDir)
	dirEntries, err := e.fs.ReadDir(peopleAbs)
	if err != nil {
		return 0, err
	}

	var entries []string
	for _, item := range dirEntries {
		name := item.Name()
		if name == "index.md" {
			continue
		}

		if !item.IsDir() {
			if strings.HasSuffix(name, ".md") {
				entries = append(entries, strings.TrimSuffix(name, ".md"))
			}
			continue
		}

		indexExists, err := e.fs.Exists(e.paths.Abs(path.Join(e.paths.PeopleDir, name, "index.md")))
		if err != nil {
			return 0, err
		}
		if indexExists {
			entries = append(entries, name+"/index")
			continue
		}

		children, err := e.fs.ReadDir(e.paths.Abs(path.Join(e.paths.PeopleDir, name)))
		if err != nil {
			return 0, err
		}
		for _, child := range children {
			if !child.IsDir() && strings.HasSuffix(child.Name(), ".md") {
				entries = append(entries, name+"/"+strings.TrimSuffix(child.Name(), ".md"))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("# People\n\n")
	fmt.Fprintf(&sb, "This section contains %d pages.\n\n", len(entries))
	sb.WriteString("```{toctree}\n:maxdepth: 1\n:hidden:\n\n")
	for _, entry := range entries {
		sb.WriteString(entry)
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")

	indexRel := path.Join(e.paths.PeopleDir, "index.md")
	if err := e.fs.AtomicWrite(e.paths.Abs(indexRel), []byte(sb.String()), 0644); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// updateNavigation adds the unified people section to the root toctree and
// drops the per-wiki people links that now dangle. Index pages that do not
// exist are left alone.
func (e *Engine) updateNavigation() error {
	rootIndex := e.paths.Abs("index.md")
	data, err := e.fs.ReadFile(rootIndex)
	if err == nil {
		text := string(data)
		if !strings.Contains(text, e.paths.PeopleDir+"/index") {
			entry := e.paths.PeopleDir + "/index\n"
			anchor := e.paths.UncuratedWiki + "/index\n"
			text = strings.Replace(text, anchor, entry+anchor, 1)
			if err := e.fs.AtomicWrite(rootIndex, []byte(text), 0644); err != nil {
				return err
			}
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	for _, wiki := range e.paths.Wikis {
		wikiIndex := e.paths.Abs(e.paths.WikiIndex(wiki))
		data, err := e.fs.ReadFile(wikiIndex)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		text := string(data)
		if !strings.Contains(text, "people/index\n") {
			continue
		}
		text = strings.ReplaceAll(text, "people/index\n", "")
		if err := e.fs.AtomicWrite(wikiIndex, []byte(text), 0644); err != nil {
			return err
		}
	}
	return nil
}
