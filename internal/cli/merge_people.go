package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pythonwiki/wikimig/internal/engine"
)

var (
	mergePeopleRoot   string
	mergePeopleDryRun bool
)

var mergePeopleCmd = &cobra.Command{
	Use:   "merge-people",
	Short: "Merge the per-wiki people sections into one deduplicated tree",
	Long: `Merge all people/ directories into a single top-level people/ directory.

Person pages from python/people/, psf/people/ and jython/people/ move into a
unified people/ tree. Duplicates across wikis collapse to the richest version,
non-person leftovers in python/people/ go to python/archive/, and every
vacated path gets an entry in _redirects.json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(mergePeopleRoot)
		if err != nil {
			return err
		}

		result, err := eng.MergePeople(context.Background(), &engine.MergePeopleRequest{
			DryRun: mergePeopleDryRun,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Classification")
		PrintLabelValue("Persons", fmt.Sprintf("%d", result.Persons))
		PrintLabelValue("Non-persons", fmt.Sprintf("%d", result.NonPersons))
		PrintLabelValue("Unique people", fmt.Sprintf("%d", result.TotalPeople))

		if len(result.Duplicates) > 0 {
			PrintSubsection("Cross-wiki duplicates:")
			dupes := make([]string, 0, len(result.Duplicates))
			for _, d := range result.Duplicates {
				dupes = append(dupes, fmt.Sprintf("%s: %s (keeping %s)", d.Key, strings.Join(d.Wikis, ", "), d.Winner))
			}
			PrintList(dupes, 1)
		}

		if mergePeopleDryRun {
			printMergePlan(result)
			return nil
		}

		PrintSection("Executed")
		PrintSuccess(fmt.Sprintf("Moved %s, removed %s",
			PrintCount(len(result.Moved), "node", "nodes"),
			PrintCount(len(result.Removed), "node", "nodes")))
		PrintLabelValue("Redirects in store", fmt.Sprintf("%d", result.RedirectTotal))
		PrintLabelValue("People index entries", fmt.Sprintf("%d", result.IndexEntries))
		for _, dir := range result.CleanedDirs {
			PrintInfo(fmt.Sprintf("  removed emptied %s", dir))
		}

		if len(result.Skipped) > 0 {
			PrintWarning(fmt.Sprintf("Skipped %s (missing source)", PrintCount(len(result.Skipped), "node", "nodes")))
			PrintList(truncateList(result.Skipped, 10), 1)
		}
		for _, failure := range result.Failed {
			PrintError(fmt.Sprintf("%s: %s", failure.Path, failure.Reason))
		}
		return nil
	},
}

// printMergePlan renders the dry-run account of every planned mutation.
func printMergePlan(result *engine.MergePeopleResult) {
	plan := result.Plan

	PrintSection("Dry Run")
	PrintInfo(fmt.Sprintf("Would move %s, remove %s, write %s",
		PrintCount(len(plan.Moves), "node", "nodes"),
		PrintCount(len(plan.Removes), "node", "nodes"),
		PrintCount(len(plan.Redirects), "redirect", "redirects")))

	if len(plan.Moves) > 0 {
		PrintSubsection("Moves:")
		moves := make([]string, 0, len(plan.Moves))
		for _, m := range plan.Moves {
			moves = append(moves, fmt.Sprintf("%s -> %s", m.Source, m.Dest))
		}
		PrintList(truncateList(moves, 30), 1)
	}

	if len(plan.Removes) > 0 {
		PrintSubsection("Removes:")
		removes := make([]string, 0, len(plan.Removes))
		for _, r := range plan.Removes {
			removes = append(removes, fmt.Sprintf("%s (%s)", r.Path, r.Reason))
		}
		PrintList(removes, 1)
	}

	if len(plan.Redirects) == 0 {
		PrintEmptyState("no redirects to write")
	}
}

func init() {
	mergePeopleCmd.Flags().StringVar(&mergePeopleRoot, "root", "", "Documentation repository root (default: $WIKIMIG_ROOT or the enclosing git checkout)")
	mergePeopleCmd.Flags().BoolVar(&mergePeopleDryRun, "dry-run", false, "Report the full plan without touching the tree")
}
