package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/argmaplab/argmap/pkg/graph/transform"
	"github.com/argmaplab/argmap/pkg/payload"
)

// newValidateCmd creates the validate command for document hygiene checks.
func newValidateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [document.json]",
		Short: "Check a document and report hygiene findings",
		Long: `Check a document and report hygiene findings.

The validate command decodes a document, reporting every coercion the
decoder applies (dropped nodes, unknown roles, clamped confidences),
then runs duplicate merging and consistency validation and reports
what they would change. The document itself is not modified.

With --strict, any finding makes the command fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any finding is reported")

	return cmd
}

func runValidate(input string, strict bool) error {
	g, warnings, err := payload.ReadDocumentFile(input)
	if err != nil {
		return err
	}

	findings := len(warnings)
	for _, w := range warnings {
		printWarning("%s", w)
	}

	dedup := transform.Dedupe(g, 0.8)
	for _, dup := range slices.Sorted(maps.Keys(dedup.Merged)) {
		printDetail("duplicate: %s merges into %s", dup, dedup.Merged[dup])
	}
	findings += len(dedup.Merged)

	valid := transform.Validate(g)
	for _, e := range valid.CycleEdgesRemoved {
		printDetail("support cycle: edge %s -> %s removed", e.Source, e.Target)
	}
	for _, id := range valid.OrphansRemoved {
		printDetail("orphan: %s removed", id)
	}
	findings += len(valid.CycleEdgesRemoved) + len(valid.OrphansRemoved)

	if findings == 0 {
		printSuccess("Document is clean")
	} else {
		printInfo("%d findings", findings)
	}
	printStats(g.NodeCount(), g.EdgeCount(), false)

	if strict && findings > 0 {
		return fmt.Errorf("%d findings in %s", findings, input)
	}
	return nil
}
