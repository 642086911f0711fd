package engine

import (
	"context"
	"fmt"

	"github.com/pythonwiki/wikimig/internal/classify"
	"github.com/pythonwiki/wikimig/internal/corpus"
	"github.com/pythonwiki/wikimig/internal/merge"
	"github.com/pythonwiki/wikimig/internal/redirects"
)

// Algorithm steps:
//  1. Collect people entries per wiki, classify the uncurated wiki,
//     split configured non-person entries out of the trusted wikis
//  2. Reconcile into the global person map and build the relocation plan
//  3. Stop here on DryRun
//  4. Load the redirect store (fatal if unreadable; nothing has mutated yet)
//  5. Execute moves, then removals; missing sources are skipped, a node
//     whose git and filesystem operations both fail is reported and the
//     run continues
//  6. Merge planned redirects into the store and persist it
//  7. Regenerate the people index and fix up navigation blocks
//  8. Remove wiki people directories the merge emptied
func (e *Engine) MergePeople(ctx context.Context, req *MergePeopleRequest) (*MergePeopleResult, error) {
	start := e.clock.Now()

	cls, err := classify.New()
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}
	collector := corpus.NewCollector(e.fs, e.paths)

	var perWiki [][]corpus.Group
	var nonPersons []corpus.Group
	var aux []merge.AuxGroup
	result := &MergePeopleResult{}

	for _, wiki := range e.paths.Wikis {
		groups, err := collector.Collect(wiki)
		if err != nil {
			return nil, err
		}

		if wiki == e.paths.UncuratedWiki {
			persons, others := merge.SplitPersons(groups, cls)
			perWiki = append(perWiki, persons)
			nonPersons = others
			result.Persons = len(persons)
			result.NonPersons = len(others)
			continue
		}

		people, wikiAux := merge.SplitAux(groups, cls)
		perWiki = append(perWiki, people)
		aux = append(aux, wikiAux...)
	}

	global := merge.Reconcile(perWiki...)
	result.TotalPeople = len(global.Keys)
	for _, key := range global.Duplicates() {
		groups := global.ByKey[key]
		info := DuplicateInfo{Key: key, Winner: merge.PickRicher(groups).Wiki}
		for _, g := range groups {
			info.Wikis = append(info.Wikis, g.Wiki)
		}
		result.Duplicates = append(result.Duplicates, info)
	}

	builder := merge.NewBuilder(collector, e.paths)
	plan, err := builder.Build(global, nonPersons, aux)
	if err != nil {
		return nil, fmt.Errorf("failed to build relocation plan: %w", err)
	}
	result.Plan = plan

	if req.DryRun {
		result.Duration = e.clock.Now().Sub(start)
		return result, nil
	}

	// The store is only opened on live runs; an unreadable store is fatal
	// here, before anything has mutated.
	store := redirects.NewFileStore(e.fs, e.paths.Abs(e.paths.RedirectsFile))
	persisted, err := store.Load()
	if err != nil {
		return nil, err
	}

	if err := e.fs.MkdirAll(e.paths.Abs(e.paths.PeopleDir), 0755); err != nil {
		return nil, err
	}
	e.executePlan(plan, result)

	persisted.Merge(plan.Redirects)
	if err := store.Save(persisted); err != nil {
		return nil, err
	}
	result.RedirectTotal = persisted.Len()

	entries, err := e.regeneratePeopleIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate people index: %w", err)
	}
	result.IndexEntries = entries

	if err := e.updateNavigation(); err != nil {
		return nil, fmt.Errorf("failed to update navigation: %w", err)
	}

	cleaned, err := e.cleanupEmptyPeopleDirs()
	if err != nil {
		return nil, err
	}
	result.CleanedDirs = cleaned

	result.Duration = e.clock.Now().Sub(start)
	return result, nil
}

// executePlan applies moves then removals. Missing sources and per-node
// failures go into the result; neither stops the run.
func (e *Engine) executePlan(plan *merge.Plan, result *MergePeopleResult) {
	for _, mv := range plan.Moves {
		exists, err := e.fs.Exists(e.paths.Abs(mv.Source))
		if err != nil {
			result.Failed = append(result.Failed, ItemFailure{Path: mv.Source, Reason: err.Error()})
			continue
		}
		if !exists {
			result.Skipped = append(result.Skipped, mv.Source)
			continue
		}
		if err := e.moveNode(mv.Source, mv.Dest); err != nil {
			result.Failed = append(result.Failed, ItemFailure{Path: mv.Source, Reason: err.Error()})
			continue
		}
		result.Moved = append(result.Moved, mv.Source)
	}

	for _, rm := range plan.Removes {
		exists, err := e.fs.Exists(e.paths.Abs(rm.Path))
		if err != nil {
			result.Failed = append(result.Failed, ItemFailure{Path: rm.Path, Reason: err.Error()})
			continue
		}
		if !exists {
			result.Skipped = append(result.Skipped, rm.Path)
			continue
		}
		if err := e.removeNode(rm.Path); err != nil {
			result.Failed = append(result.Failed, ItemFailure{Path: rm.Path, Reason: err.Error()})
			continue
		}
		result.Removed = append(result.Removed, rm.Path)
	}
}

// cleanupEmptyPeopleDirs removes each wiki's people directory once the merge
// has emptied it. A directory holding only its index page counts as empty.
func (e *Engine) cleanupEmptyPeopleDirs() ([]string, error) {
	var cleaned []string
	for _, wiki := range e.paths.Wikis {
		rel := e.paths.WikiPeople(wiki)
		exists, err := e.fs.Exists(e.paths.Abs(rel))
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}

		entries, err := e.fs.ReadDir(e.paths.Abs(rel))
		if err != nil {
			return nil, err
		}
		if len(entries) > 1 || (len(entries) == 1 && entries[0].Name() != "index.md") {
			continue
		}

		if err := e.removeNode(rel); err != nil {
			return nil, fmt.Errorf("failed to remove emptied %s: %w", rel, err)
		}
		cleaned = append(cleaned, rel)
	}
	return cleaned, nil
}
