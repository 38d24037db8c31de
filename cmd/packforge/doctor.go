package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/packforge/packforge/core/doctor"
	"github.com/packforge/packforge/core/projectconfig"
)

func runDoctor(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Check the local environment: catalog readability, artifact cache, output directory, and signing key.")
	}
	arguments = reorderInterspersedFlags(arguments, map[string]bool{
		"config":  true,
		"catalog": true,
		"cache":   true,
		"out":     true,
	})
	flagSet := flag.NewFlagSet("doctor", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var configPath string
	var catalogPath string
	var cacheDir string
	var outDir string
	var jsonOutput bool
	flagSet.StringVar(&configPath, "config", projectconfig.DefaultPath, "project config path")
	flagSet.StringVar(&catalogPath, "catalog", "", "catalog CSV path")
	flagSet.StringVar(&cacheDir, "cache", "", "flat source artifact pool directory")
	flagSet.StringVar(&outDir, "out", "", "output directory")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	if err := flagSet.Parse(arguments); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Println("Usage:")
			fmt.Println("  packforge doctor [--config <path>] [--catalog <catalog.csv>] [--cache <dir>] [--out <dir>] [--json] [--explain]")
			return exitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidInput
	}

	configuration, err := projectconfig.Load(configPath, configPath == projectconfig.DefaultPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidInput
	}

	result := doctor.Run(doctor.Options{
		CatalogPath:     firstNonEmpty(catalogPath, configuration.Catalog.Path),
		CacheDir:        firstNonEmpty(cacheDir, configuration.Build.CacheDir),
		OutputDir:       firstNonEmpty(outDir, configuration.Build.OutputDir, "dist"),
		SigningKeyPath:  configuration.Build.SigningPrivateKey,
		ProducerVersion: version,
	})

	if jsonOutput {
		exitCode := exitOK
		if result.Status == "fail" {
			exitCode = exitMissingDependency
		}
		return writeJSONOutput(result, exitCode)
	}

	fmt.Printf("doctor: %s (%s)\n", result.Status, result.Summary)
	for _, check := range result.Checks {
		fmt.Printf("  [%s] %s: %s\n", check.Status, check.Name, check.Message)
		if check.FixCommand != "" {
			fmt.Printf("         fix: %s\n", check.FixCommand)
		}
	}
	if result.Status == "fail" {
		return exitMissingDependency
	}
	return exitOK
}
