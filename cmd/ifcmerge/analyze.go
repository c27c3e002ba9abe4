package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/irodionov/ifcmerge/internal/domain/services"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file.ifc>",
		Short: "Print an appearance report for one IFC file",
		Long: "Opens a single IFC file and prints counts and samples of its appearance\n" +
			"entities: materials, surface styles, styled items and RGB colours. The\n" +
			"command is read-only and never creates or modifies files.",
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		report, err := d.Analyze.Handle(ctx, args[0])
		if err != nil {
			// Diagnostic command: failures are reported but never change the
			// exit code.
			d.Log.Error().Err(err).Str("path", args[0]).Msg("analysis failed")
			return nil
		}
		displayReport(report)
		return nil
	})
}

func displayReport(report *services.AppearanceReport) {
	fmt.Printf("=== Appearance report for %s ===\n", report.Path)
	fmt.Printf("Schema: %s\n", report.Schema)
	fmt.Printf("Products: %d\n", report.Products)
	fmt.Printf("Materials: %d\n", report.Materials)
	for _, name := range report.MaterialNames {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Printf("Surface styles: %d\n", report.SurfaceStyles)
	for _, name := range report.SurfaceStyleNames {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Printf("Styled items: %d\n", report.StyledItems)
	fmt.Printf("RGB colours: %d\n", report.Colours)
	for _, c := range report.ColourSamples {
		fmt.Printf("  - RGB(%.3f, %.3f, %.3f)\n", c.R, c.G, c.B)
	}
	fmt.Printf("Material relations: %d\n", report.MaterialRelations)
	if report.MalformedGlobalIDs > 0 {
		fmt.Printf("Malformed product GlobalIds: %d\n", report.MalformedGlobalIDs)
	}
	if report.DuplicateGlobalIDs > 0 {
		fmt.Printf("Duplicate product GlobalIds: %d\n", report.DuplicateGlobalIDs)
	}
}
