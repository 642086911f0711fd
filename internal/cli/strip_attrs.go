package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pythonwiki/wikimig/internal/engine"
)

var (
	stripAttrsRoot   string
	stripAttrsDryRun bool
)

var stripAttrsCmd = &cobra.Command{
	Use:   "strip-attrs",
	Short: "Remove leftover pandoc attribute blocks from converted pages",
	Long: `Strip inline pandoc attribute blocks like {.class} and {#id} from pages.

The HTML-to-markdown conversion leaves attribute syntax behind that the site
generator renders literally. Braced blocks inside inline code and multi-line
directive bodies are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(stripAttrsRoot)
		if err != nil {
			return err
		}

		result, err := eng.StripAttrs(context.Background(), &engine.StripAttrsRequest{
			DryRun: stripAttrsDryRun,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Attribute Blocks")
		if len(result.Files) == 0 {
			PrintEmptyState("no attribute blocks found")
			return nil
		}

		lines := make([]string, 0, len(result.Files))
		for _, f := range result.Files {
			lines = append(lines, fmt.Sprintf("%s: %d", f.Path, f.Count))
		}
		PrintList(truncateList(lines, 30), 1)

		if stripAttrsDryRun {
			PrintInfo(fmt.Sprintf("Dry run: would strip %s from %s",
				PrintCount(result.TotalAttrs, "block", "blocks"),
				PrintCount(len(result.Files), "page", "pages")))
			return nil
		}

		PrintSuccess(fmt.Sprintf("Stripped %s from %s",
			PrintCount(result.TotalAttrs, "block", "blocks"),
			PrintCount(len(result.Files), "page", "pages")))
		return nil
	},
}

func init() {
	stripAttrsCmd.Flags().StringVar(&stripAttrsRoot, "root", "", "Documentation repository root (default: $WIKIMIG_ROOT or the enclosing git checkout)")
	stripAttrsCmd.Flags().BoolVar(&stripAttrsDryRun, "dry-run", false, "Report attribute blocks without rewriting pages")
}
