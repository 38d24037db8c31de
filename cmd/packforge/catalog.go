package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/packforge/packforge/core/catalog"
	"github.com/packforge/packforge/core/projectconfig"
)

type catalogListOutput struct {
	OK      bool             `json:"ok"`
	Count   int              `json:"count"`
	Records []catalogRowJSON `json:"records,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type catalogRowJSON struct {
	Group            string `json:"group"`
	Kind             string `json:"kind"`
	ID               string `json:"id"`
	Name             string `json:"name"`
	Version          string `json:"version"`
	ArtifactFilename string `json:"artifact_filename"`
	GameVersion      string `json:"game_version"`
}

type catalogValidateOutput struct {
	OK          bool     `json:"ok"`
	Records     int      `json:"records"`
	CorruptRows []string `json:"corrupt_rows,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func runCatalog(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Inspect the catalog record store: list rows (blocked included), show one record, or validate every integrity hash.")
	}
	if len(arguments) == 0 {
		printCatalogUsage()
		return exitInvalidInput
	}
	switch arguments[0] {
	case "--help", "-h":
		printCatalogUsage()
		return exitOK
	case "list":
		return runCatalogList(arguments[1:])
	case "get":
		return runCatalogGet(arguments[1:])
	case "validate":
		return runCatalogValidate(arguments[1:])
	default:
		printCatalogUsage()
		return exitInvalidInput
	}
}

func catalogPathFromFlags(explicit string) string {
	if explicit != "" {
		return explicit
	}
	configuration, err := projectconfig.Load(projectconfig.DefaultPath, true)
	if err != nil {
		return ""
	}
	return configuration.Catalog.Path
}

func runCatalogList(arguments []string) int {
	arguments = reorderInterspersedFlags(arguments, map[string]bool{"catalog": true})
	flagSet := flag.NewFlagSet("catalog-list", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var catalogPath string
	var jsonOutput bool
	flagSet.StringVar(&catalogPath, "catalog", "", "catalog CSV path")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	if err := flagSet.Parse(arguments); err != nil {
		return writeJSONOutput(catalogListOutput{Error: err.Error()}, exitInvalidInput)
	}
	catalogPath = catalogPathFromFlags(catalogPath)
	if catalogPath == "" {
		return writeCatalogListError(jsonOutput, "catalog path is required (--catalog or catalog.path in config)")
	}

	snapshot, rowErrors, err := catalog.Load(catalogPath)
	if err != nil {
		return writeCatalogListError(jsonOutput, err.Error())
	}
	if len(rowErrors) > 0 {
		return writeCatalogListError(jsonOutput, fmt.Sprintf("%d corrupt row(s); run catalog validate for details", len(rowErrors)))
	}

	// Listings deliberately include blocked rows. Blocking controls release
	// placement, not catalog visibility.
	records := snapshot.Records()
	if jsonOutput {
		output := catalogListOutput{OK: true, Count: len(records)}
		for _, record := range records {
			output.Records = append(output.Records, catalogRowJSON{
				Group:            string(record.Group),
				Kind:             string(record.Kind),
				ID:               record.ID,
				Name:             record.Name,
				Version:          record.Version,
				ArtifactFilename: record.ArtifactFilename,
				GameVersion:      record.GameVersion,
			})
		}
		return writeJSONOutput(output, exitOK)
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tGROUP\tKIND\tVERSION\tGAME")
	for _, record := range records {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
			record.ID, record.Name, record.Group, record.Kind, record.Version, record.GameVersion)
	}
	_ = writer.Flush()
	return exitOK
}

func writeCatalogListError(jsonOutput bool, message string) int {
	if jsonOutput {
		return writeJSONOutput(catalogListOutput{Error: message}, exitInvalidInput)
	}
	fmt.Fprintln(os.Stderr, message)
	return exitInvalidInput
}

func runCatalogGet(arguments []string) int {
	arguments = reorderInterspersedFlags(arguments, map[string]bool{"catalog": true})
	flagSet := flag.NewFlagSet("catalog-get", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var catalogPath string
	var jsonOutput bool
	flagSet.StringVar(&catalogPath, "catalog", "", "catalog CSV path")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	if err := flagSet.Parse(arguments); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidInput
	}
	positionals := flagSet.Args()
	if len(positionals) != 1 {
		fmt.Fprintln(os.Stderr, "exactly one record id is required")
		return exitInvalidInput
	}
	catalogPath = catalogPathFromFlags(catalogPath)
	if catalogPath == "" {
		fmt.Fprintln(os.Stderr, "catalog path is required (--catalog or catalog.path in config)")
		return exitInvalidInput
	}

	snapshot, _, err := catalog.Load(catalogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidInput
	}
	record, ok := snapshot.Lookup(positionals[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "record not found: %s\n", positionals[0])
		return exitInvalidInput
	}
	if jsonOutput {
		return writeJSONOutput(map[string]any{
			"ok":                true,
			"group":             record.Group,
			"kind":              record.Kind,
			"id":                record.ID,
			"name":              record.Name,
			"description":       record.Description,
			"version":           record.Version,
			"artifact_filename": record.ArtifactFilename,
			"client_support":    record.ClientSupport,
			"server_support":    record.ServerSupport,
			"game_version":      record.GameVersion,
			"integrity_hash":    record.IntegrityHash,
		}, exitOK)
	}
	fmt.Printf("%s (%s)\n", record.Name, record.ID)
	fmt.Printf("  group: %s  kind: %s\n", record.Group, record.Kind)
	fmt.Printf("  version: %s  game: %s\n", record.Version, record.GameVersion)
	fmt.Printf("  artifact: %s\n", record.ArtifactFilename)
	fmt.Printf("  client: %s  server: %s\n", record.ClientSupport, record.ServerSupport)
	fmt.Printf("  hash: %s\n", record.IntegrityHash)
	return exitOK
}

func runCatalogValidate(arguments []string) int {
	arguments = reorderInterspersedFlags(arguments, map[string]bool{"catalog": true})
	flagSet := flag.NewFlagSet("catalog-validate", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var catalogPath string
	var jsonOutput bool
	flagSet.StringVar(&catalogPath, "catalog", "", "catalog CSV path")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	if err := flagSet.Parse(arguments); err != nil {
		return writeJSONOutput(catalogValidateOutput{Error: err.Error()}, exitInvalidInput)
	}
	catalogPath = catalogPathFromFlags(catalogPath)
	if catalogPath == "" {
		fmt.Fprintln(os.Stderr, "catalog path is required (--catalog or catalog.path in config)")
		return exitInvalidInput
	}

	snapshot, rowErrors, err := catalog.Load(catalogPath)
	if err != nil {
		if jsonOutput {
			return writeJSONOutput(catalogValidateOutput{Error: err.Error()}, exitInvalidInput)
		}
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidInput
	}

	output := catalogValidateOutput{Records: snapshot.Len()}
	for _, rowError := range rowErrors {
		output.CorruptRows = append(output.CorruptRows, rowError.Error())
	}
	if len(rowErrors) > 0 {
		output.Error = fmt.Sprintf("%d corrupt row(s)", len(rowErrors))
		if jsonOutput {
			return writeJSONOutput(output, exitInvalidInput)
		}
		fmt.Fprintln(os.Stderr, output.Error)
		for _, row := range output.CorruptRows {
			fmt.Fprintln(os.Stderr, "  "+row)
		}
		return exitInvalidInput
	}
	output.OK = true
	if jsonOutput {
		return writeJSONOutput(output, exitOK)
	}
	fmt.Printf("catalog ok: %d records, all hashes match\n", output.Records)
	return exitOK
}
