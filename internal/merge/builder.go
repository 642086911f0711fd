package merge

import (
	"fmt"
	"path"
	"strings"

	"github.com/pythonwiki/wikimig/internal/classify"
	"github.com/pythonwiki/wikimig/internal/config"
	"github.com/pythonwiki/wikimig/internal/corpus"
)

// AuxGroup is a trusted-wiki entry routed to a configured section instead
// of the unified people tree.
type AuxGroup struct {
	Group corpus.Group
	Dest  string
}

// SplitPersons divides the uncurated wiki's groups into person and
// non-person sets using the classifier.
func SplitPersons(groups []corpus.Group, cls *classify.Classifier) (persons, nonPersons []corpus.Group) {
	for _, group := range groups {
		if cls.IsPerson(group.Key) {
			persons = append(persons, group)
		} else {
			nonPersons = append(nonPersons, group)
		}
	}
	return persons, nonPersons
}

// SplitAux extracts the known non-person entries of a trusted wiki. The
// remaining groups are taken as people without further classification.
func SplitAux(groups []corpus.Group, cls *classify.Classifier) (people []corpus.Group, aux []AuxGroup) {
	for _, group := range groups {
		if dest, ok := cls.AuxRoute(group.Wiki, group.Key); ok {
			aux = append(aux, AuxGroup{Group: group, Dest: dest})
		} else {
			people = append(people, group)
		}
	}
	return people, aux
}

// Builder turns reconciled groups into a relocation plan, emitting the
// redirect for every vacated document in lockstep with the moves.
type Builder struct {
	collector *corpus.Collector
	paths     *config.Paths
}

// NewBuilder creates a plan builder.
func NewBuilder(collector *corpus.Collector, paths *config.Paths) *Builder {
	return &Builder{collector: collector, paths: paths}
}

// Build produces the full relocation plan: person moves into the unified
// tree, non-person archiving, aux routing, and the implied redirects.
func (b *Builder) Build(persons *Global, nonPersons []corpus.Group, aux []AuxGroup) (*Plan, error) {
	plan := NewPlan()

	for _, key := range persons.Keys {
		groups := persons.ByKey[key]
		if len(groups) == 1 {
			if err := b.planSingle(plan, key, groups[0]); err != nil {
				return nil, err
			}
			continue
		}
		if err := b.planDuplicate(plan, key, groups); err != nil {
			return nil, err
		}
	}

	for _, group := range nonPersons {
		if err := b.planArchive(plan, group); err != nil {
			return nil, err
		}
	}

	for _, entry := range aux {
		if err := b.planAux(plan, entry); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// planSingle relocates a key contributed by exactly one wiki.
func (b *Builder) planSingle(plan *Plan, key string, group corpus.Group) error {
	winner := ResolveDirFile(group)
	dest := path.Join(b.paths.PeopleDir, path.Base(winner.Path))
	plan.AddMove(winner.Path, dest, fmt.Sprintf("%s/people/%s -> %s/", group.Wiki, key, b.paths.PeopleDir))

	for _, node := range group.Nodes {
		if node.Path != winner.Path {
			plan.AddRemove(node.Path, "dir+file dupe, keeping dir")
		}
	}

	for _, node := range group.Nodes {
		if err := b.addNodeRedirects(plan, node, key, winner.IsDir()); err != nil {
			return err
		}
	}
	return nil
}

// planDuplicate relocates a key contributed by several wikis. Every
// non-winning node is removed, and every vacated path still gets a
// redirect pointing at the winner's new home.
func (b *Builder) planDuplicate(plan *Plan, key string, groups []corpus.Group) error {
	winner := PickRicher(groups)
	dest := path.Join(b.paths.PeopleDir, path.Base(winner.Path))
	plan.AddMove(winner.Path, dest, fmt.Sprintf("dupe winner: %s/people/%s", winner.Wiki, key))

	for _, group := range groups {
		if ResolveDirFile(group).Path != winner.Path {
			for _, node := range group.Nodes {
				plan.AddRemove(node.Path, fmt.Sprintf("cross-wiki dupe, keeping %s version", winner.Wiki))
			}
		} else {
			for _, node := range group.Nodes {
				if node.Path != winner.Path {
					plan.AddRemove(node.Path, "dir+file dupe, keeping dir")
				}
			}
		}

		for _, node := range group.Nodes {
			if err := b.addNodeRedirects(plan, node, key, winner.IsDir()); err != nil {
				return err
			}
		}
	}
	return nil
}

// planArchive moves a non-person entry out of the uncurated wiki's people
// section into its archive, keeping the node name.
func (b *Builder) planArchive(plan *Plan, group corpus.Group) error {
	for _, node := range group.Nodes {
		base := path.Base(node.Path)
		dest := path.Join(b.paths.ArchiveDir, base)
		plan.AddMove(node.Path, dest,
			fmt.Sprintf("non-person: %s/%s -> %s/", b.paths.WikiPeople(node.Wiki), base, b.paths.ArchiveDir))

		oldBase := path.Join(b.paths.WikiPeople(node.Wiki), group.Key)
		newBase := path.Join(b.paths.ArchiveDir, group.Key)
		if node.IsDir() {
			plan.Redirects[oldBase+"/index"] = newBase + "/index"
			plan.Redirects[oldBase] = newBase
			if err := b.addContainedRedirects(plan, node, b.paths.WikiPeople(node.Wiki)+"/", b.paths.ArchiveDir+"/"); err != nil {
				return err
			}
		} else {
			plan.Redirects[oldBase] = newBase
		}
	}
	return nil
}

// planAux moves a known non-person entry of a trusted wiki into its
// configured section.
func (b *Builder) planAux(plan *Plan, entry AuxGroup) error {
	group := entry.Group
	for _, node := range group.Nodes {
		dest := path.Join(entry.Dest, path.Base(node.Path))
		plan.AddMove(node.Path, dest, fmt.Sprintf("%s non-person: %s -> %s/", group.Wiki, group.Key, entry.Dest))

		oldBase := path.Join(b.paths.WikiPeople(group.Wiki), group.Key)
		newBase := path.Join(entry.Dest, group.Key)
		if node.IsDir() {
			plan.Redirects[oldBase+"/index"] = newBase + "/index"
			if err := b.addContainedRedirects(plan, node, b.paths.WikiPeople(group.Wiki)+"/", entry.Dest+"/"); err != nil {
				return err
			}
		} else {
			plan.Redirects[oldBase] = newBase
		}
	}
	return nil
}

// addNodeRedirects emits the redirects for one vacated people node.
// winnerIsDir tells whether the key's final form in the unified tree is a
// container; a vacated directory index otherwise points at the bare page.
func (b *Builder) addNodeRedirects(plan *Plan, node corpus.Node, key string, winnerIsDir bool) error {
	oldBase := path.Join(b.paths.WikiPeople(node.Wiki), key)
	newBase := path.Join(b.paths.PeopleDir, key)

	if !node.IsDir() {
		plan.Redirects[oldBase] = newBase
		return nil
	}

	if winnerIsDir {
		plan.Redirects[oldBase+"/index"] = newBase + "/index"
	} else {
		plan.Redirects[oldBase+"/index"] = newBase
	}
	plan.Redirects[oldBase] = newBase
	return b.addContainedRedirects(plan, node, b.paths.WikiPeople(node.Wiki)+"/", b.paths.PeopleDir+"/")
}

// addContainedRedirects emits one redirect per markdown page inside a
// container, substituting the namespace prefix and dropping extensions.
func (b *Builder) addContainedRedirects(plan *Plan, node corpus.Node, oldPrefix, newPrefix string) error {
	pages, err := b.collector.ContainedPages(node)
	if err != nil {
		return err
	}
	for _, page := range pages {
		oldDoc := strings.TrimSuffix(page, ".md")
		plan.Redirects[oldDoc] = newPrefix + strings.TrimPrefix(oldDoc, oldPrefix)
	}
	return nil
}
