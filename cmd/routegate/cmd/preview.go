package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/routegate/routegate/internal/sandbox"
	"github.com/routegate/routegate/internal/template"
	"github.com/routegate/routegate/internal/types"
)

var (
	previewExpr     string
	previewTemplate string
	previewContext  string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Best-effort local preview of an expression or template",
	Long: `Preview evaluates a restricted boolean expression or renders a template
against a sample context JSON file. Local feedback only: a preview fault means
"no result", not "invalid" - the remote service has the final word.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVar(&previewExpr, "expr", "", "expression source to evaluate")
	previewCmd.Flags().StringVar(&previewTemplate, "template", "", "template source to render")
	previewCmd.Flags().StringVar(&previewContext, "context", "", "sample context JSON file")
	previewCmd.MarkFlagsOneRequired("expr", "template")
	previewCmd.MarkFlagsMutuallyExclusive("expr", "template")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx, err := loadSampleContext(previewContext)
	if err != nil {
		return err
	}

	if previewExpr != "" {
		result, err := sandbox.Evaluate(previewExpr, ctx)
		if err != nil {
			// Non-fatal by contract: preview declines, authority is remote
			fmt.Fprintf(cmd.OutOrStdout(), "no result: %v\n", err)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%t\n", result)
		return nil
	}

	out, err := template.Render(previewTemplate, ctx)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "no result: %v\n", err)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func loadSampleContext(path string) (types.SampleContext, error) {
	if path == "" {
		return types.SampleContext{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var ctx types.SampleContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("sample context is not a JSON object: %w", err)
	}
	return ctx, nil
}
