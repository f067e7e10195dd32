// packdiff renders a field-by-field structured diff of two rule pack
// documents, for year-over-year audit.
package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"tax-engine/internal/model"
	"tax-engine/internal/rulepack"
)

func main() {
	root := &cobra.Command{
		Use:   "packdiff <old.yaml> <new.yaml>",
		Short: "Compare two rule pack documents field by field",
		Args:  cobra.ExactArgs(2),
		RunE:  run,
	}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	a, err := readPack(args[0])
	if err != nil {
		return err
	}
	b, err := readPack(args[1])
	if err != nil {
		return err
	}

	changes, err := rulepack.Diff(a, b)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(changes, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func readPack(path string) (*model.RulePack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pack, err := rulepack.ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pack, nil
}
