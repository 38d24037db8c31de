package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/packforge/packforge/core/catalog"
	"github.com/packforge/packforge/core/fsx"
	"github.com/packforge/packforge/core/manifest"
)

func runReadme(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Render the README manifest table for a release: one combined table with category derived from placement.")
	}
	arguments = reorderInterspersedFlags(arguments, map[string]bool{
		"catalog":      true,
		"game-version": true,
		"name":         true,
		"pack-version": true,
		"out":          true,
	})
	flagSet := flag.NewFlagSet("readme", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var catalogPath string
	var gameVersion string
	var packName string
	var packVersion string
	var outPath string
	flagSet.StringVar(&catalogPath, "catalog", "", "catalog CSV path")
	flagSet.StringVar(&gameVersion, "game-version", "", "target game version")
	flagSet.StringVar(&packName, "name", "modpack", "pack name")
	flagSet.StringVar(&packVersion, "pack-version", "", "pack version")
	flagSet.StringVar(&outPath, "out", "", "write to this path instead of stdout")
	if err := flagSet.Parse(arguments); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Println("Usage:")
			fmt.Println("  packforge readme --catalog <catalog.csv> --game-version <version> [--name <pack>] [--pack-version <version>] [--out README.md] [--explain]")
			return exitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidInput
	}
	catalogPath = catalogPathFromFlags(catalogPath)
	if catalogPath == "" || gameVersion == "" {
		fmt.Fprintln(os.Stderr, "--catalog and --game-version are required")
		return exitInvalidInput
	}

	snapshot, rowErrors, err := catalog.Load(catalogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidInput
	}
	if len(rowErrors) > 0 {
		fmt.Fprintf(os.Stderr, "%d corrupt catalog row(s); run catalog validate\n", len(rowErrors))
		return exitInvalidInput
	}

	content := renderReadme(packName, packVersion, gameVersion, manifest.BuildReadmeRows(snapshot, gameVersion))
	if outPath == "" {
		fmt.Print(content)
		return exitOK
	}
	if err := fsx.WriteFileAtomic(outPath, []byte(content), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternalFailure
	}
	return exitOK
}

// renderReadme emits one combined markdown table, not split by group.
func renderReadme(packName, packVersion, gameVersion string, rows []manifest.ReadmeRow) string {
	var builder strings.Builder
	builder.WriteString("# " + packName)
	if packVersion != "" {
		builder.WriteString(" " + packVersion)
	}
	builder.WriteString("\n\n")
	builder.WriteString(fmt.Sprintf("Contents for Minecraft %s.\n\n", gameVersion))
	builder.WriteString("| Name | ID | Version | Description | Category | Type |\n")
	builder.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, row := range rows {
		builder.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			escapeCell(row.Name), escapeCell(row.ID), escapeCell(row.Version),
			escapeCell(row.Description), row.Category, row.Type))
	}
	return builder.String()
}

func escapeCell(value string) string {
	return strings.ReplaceAll(strings.ReplaceAll(value, "|", "\\|"), "\n", " ")
}
