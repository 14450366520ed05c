package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/routegate/routegate/internal/core/config"
	"github.com/routegate/routegate/internal/core/remote"
	"github.com/routegate/routegate/internal/rules"
	"github.com/routegate/routegate/internal/sandbox"
	"github.com/routegate/routegate/internal/types"
)

var (
	lintRemote   bool
	lintConfigID string
)

var lintCmd = &cobra.Command{
	Use:   "lint <config.json>",
	Short: "Decode and validate a rule configuration file",
	Long: `Lint decodes text-form input through the structural decoder, runs the
recursive validator, and screens every embedded expression. With --remote it
additionally submits expression and template leaves to the authoritative
validation service.`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().BoolVar(&lintRemote, "remote", false, "also run authoritative expression/template checks")
	lintCmd.Flags().StringVar(&lintConfigID, "id", "", "draft config id to correlate this lint run with")
}

func runLint(cmd *cobra.Command, args []string) error {
	if lintConfigID != "" {
		id, err := types.ParseConfigID(lintConfigID)
		if err != nil {
			return fmt.Errorf("invalid config id %q: %w", lintConfigID, err)
		}
		log.Info().Str("config_id", string(id)).Time("created", types.ConfigIDTime(id)).Msg("linting draft")
	}

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	// External text is trusted as a node only after Decode; a failure here is
	// a structural error surfaced to the user, never a silent default config.
	node, err := rules.Decode(string(text))
	if err != nil {
		return fmt.Errorf("structural error: %w", err)
	}

	registry := rules.NewDefaultRegistry()
	valid := registry.Validate(node)

	problems := 0
	for _, leaf := range collectAdvancedLeaves(node) {
		if leaf.kind != "expression" {
			continue
		}
		if err := sandbox.Screen(leaf.source); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "expression rejected: %v\n", err)
			problems++
		}
	}

	if lintRemote {
		if err := runRemoteChecks(cmd, node); err != nil {
			return err
		}
	}

	if !valid || problems > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "invalid")
		os.Exit(1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "valid")
	return nil
}

// runRemoteChecks submits advanced leaves to the authoritative service.
// Remote failures are indeterminate, not invalid: reported but not fatal.
func runRemoteChecks(cmd *cobra.Command, node *types.RuleNode) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var signer *remote.Signer
	keyID, secret, err := config.SigningSecret()
	if err != nil {
		return fmt.Errorf("failed to load signing secret: %w", err)
	}
	if keyID != "" {
		signer = remote.NewSigner(keyID, secret)
	}

	client := remote.NewClient(cfg, signer, log)
	ctx := context.Background()

	for _, leaf := range collectAdvancedLeaves(node) {
		var result *types.RemoteResult
		var checkErr error
		switch leaf.kind {
		case "expression":
			result, checkErr = client.ValidateExpression(ctx, leaf.source, nil)
		case "template":
			result, checkErr = client.ValidateTemplate(ctx, leaf.source, nil)
		}
		if checkErr != nil {
			log.Warn().Err(checkErr).Str("kind", leaf.kind).Msg("authoritative check indeterminate")
			continue
		}
		if !result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "remote rejected %s (line %d): %s\n", leaf.kind, result.ErrorLine, result.Error)
		}
	}
	return nil
}

type advancedLeaf struct {
	kind   string // "expression" or "template"
	source string
}

// collectAdvancedLeaves walks the tree gathering mini-language sources.
func collectAdvancedLeaves(node *types.RuleNode) []advancedLeaf {
	if node == nil {
		return nil
	}
	var out []advancedLeaf
	switch node.Type {
	case "expression":
		if src, ok := node.Params["expression"].(string); ok {
			out = append(out, advancedLeaf{kind: "expression", source: src})
		}
	case "template":
		if src, ok := node.Params["template"].(string); ok {
			out = append(out, advancedLeaf{kind: "template", source: src})
		}
	}
	for _, sub := range node.SubRules {
		out = append(out, collectAdvancedLeaves(sub)...)
	}
	return out
}
