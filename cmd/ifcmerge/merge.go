package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/irodionov/ifcmerge/internal/application/handlers"
)

func newMergeCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "merge <output.ifc> <base.ifc> <file2.ifc> [file3.ifc ...]",
		Short: "Merge IFC files into one model",
		Long: "Merges the listed IFC files into a single output model. The first input\n" +
			"file is the base: its entities, colour scheme and material definitions win\n" +
			"every appearance conflict. Later files contribute only appearance entities\n" +
			"not already known, plus their structural entities.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args[0], args[1:], reportPath)
		},
	}

	cmd.Flags().StringVarP(&reportPath, "report", "r", "", "Write the per-file merge report as YAML to this path")

	return cmd
}

func runMerge(cmd *cobra.Command, outputPath string, inputPaths []string, reportPath string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		// Show the appearance state of the base file before merging, and of
		// the written output after, for operator visibility.
		if report, err := d.Analyze.Handle(ctx, inputPaths[0]); err != nil {
			d.Log.Warn().Err(err).Str("path", inputPaths[0]).Msg("could not analyze base file")
		} else {
			displayReport(report)
		}

		result, err := d.Merger.Handle(ctx, outputPath, inputPaths)
		if err != nil {
			return err
		}

		displaySummary(result)

		if reportPath != "" {
			if err := writeReport(reportPath, result); err != nil {
				return err
			}
			fmt.Printf("Merge report written to %s\n", reportPath)
		}

		if report, err := d.Analyze.Handle(ctx, outputPath); err != nil {
			d.Log.Warn().Err(err).Str("path", outputPath).Msg("could not analyze merged output")
		} else {
			displayReport(report)
		}
		return nil
	})
}

func displaySummary(result *handlers.MergeResult) {
	fmt.Printf("\nMerged %d files into %s\n", len(result.Files), result.OutputPath)
	for _, path := range result.SkippedFiles {
		fmt.Printf("  Skipped (unreadable): %s\n", path)
	}
	fmt.Printf("  Products: %d\n", result.Summary.Products)
	fmt.Printf("  Materials: %d\n", result.Summary.Materials)
	fmt.Printf("  Surface styles: %d\n", result.Summary.SurfaceStyles)
	fmt.Printf("  Styled items: %d\n", result.Summary.StyledItems)
}

func writeReport(path string, result *handlers.MergeResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding merge report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing merge report: %w", err)
	}
	return nil
}
