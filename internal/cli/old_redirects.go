package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pythonwiki/wikimig/internal/engine"
)

var (
	oldRedirectsRoot   string
	oldRedirectsRawDir string
	oldRedirectsDryRun bool
)

var oldRedirectsCmd = &cobra.Command{
	Use:   "old-redirects",
	Short: "Map hex-encoded MoinMoin URLs to their migrated pages",
	Long: `Scan the raw wiki exports for hex-encoded page names and record redirects.

MoinMoin escaped special characters in page URLs as (hh..) hex runs. Each raw
export filename that decodes to an existing page becomes an entry in
_redirects.json, so links to the old wiki URLs keep resolving. Existing store
entries are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(oldRedirectsRoot)
		if err != nil {
			return err
		}

		result, err := eng.OldRedirects(context.Background(), &engine.OldRedirectsRequest{
			RawDir: oldRedirectsRawDir,
			DryRun: oldRedirectsDryRun,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Old URL Scan")
		PrintLabelValue("Decodable names", fmt.Sprintf("%d", len(result.Found)))
		PrintLabelValue("Unchanged names", fmt.Sprintf("%d", result.SkippedSame))
		PrintLabelValue("Missing targets", fmt.Sprintf("%d", result.SkippedNoTarget))

		if len(result.Found) > 0 {
			PrintSubsection("Redirects:")
			keys := make([]string, 0, len(result.Found))
			for old := range result.Found {
				keys = append(keys, old)
			}
			sort.Strings(keys)
			lines := make([]string, 0, len(keys))
			for _, old := range keys {
				lines = append(lines, fmt.Sprintf("%s -> %s", old, result.Found[old]))
			}
			PrintList(truncateList(lines, 30), 1)
		} else {
			PrintEmptyState("no decodable old URLs found")
		}

		if oldRedirectsDryRun {
			PrintInfo("Dry run: store not modified")
			return nil
		}

		PrintSuccess(fmt.Sprintf("Added %s", PrintCount(result.Added, "redirect", "redirects")))
		PrintLabelValue("Redirects in store", fmt.Sprintf("%d", result.RedirectTotal))
		return nil
	},
}

func init() {
	oldRedirectsCmd.Flags().StringVar(&oldRedirectsRoot, "root", "", "Documentation repository root (default: $WIKIMIG_ROOT or the enclosing git checkout)")
	oldRedirectsCmd.Flags().StringVar(&oldRedirectsRawDir, "raw-dir", "_raw", "Directory holding the raw per-wiki exports, relative to the root")
	oldRedirectsCmd.Flags().BoolVar(&oldRedirectsDryRun, "dry-run", false, "Report decodable URLs without writing the store")
}
