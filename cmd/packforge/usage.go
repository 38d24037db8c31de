package main

import "fmt"

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  packforge build --catalog <catalog.csv> --cache <dir> --game-version <version> --pack-version <version> [--out dist] [--name <pack>] [--sign-key <path>|--sign-key-env <VAR>] [--readme <path>] [--json] [--explain]")
	fmt.Println("  packforge verify <release-dir|release.zip> --catalog <catalog.csv> --game-version <version> [--public-key <path>] [--json] [--explain]")
	fmt.Println("  packforge catalog list [--catalog <catalog.csv>] [--json] [--explain]")
	fmt.Println("  packforge catalog get <record-id> [--catalog <catalog.csv>] [--json] [--explain]")
	fmt.Println("  packforge catalog validate [--catalog <catalog.csv>] [--json] [--explain]")
	fmt.Println("  packforge readme --catalog <catalog.csv> --game-version <version> [--name <pack>] [--pack-version <version>] [--out README.md] [--explain]")
	fmt.Println("  packforge keys generate [--out-dir .packforge/keys] [--prefix packforge] [--force] [--json] [--explain]")
	fmt.Println("  packforge doctor [--config <path>] [--catalog <catalog.csv>] [--cache <dir>] [--out <dir>] [--json] [--explain]")
	fmt.Println("  packforge version [--json]")
}

func printBuildUsage() {
	fmt.Println("Usage:")
	fmt.Println("  packforge build --catalog <catalog.csv> --cache <dir> --game-version <version> --pack-version <version> [--out dist] [--name <pack>] [--sign-key <path>|--sign-key-env <VAR>] [--readme <path>] [--json] [--explain]")
}

func printVerifyUsage() {
	fmt.Println("Usage:")
	fmt.Println("  packforge verify <release-dir|release.zip> --catalog <catalog.csv> --game-version <version> [--public-key <path>] [--json] [--explain]")
}

func printCatalogUsage() {
	fmt.Println("Usage:")
	fmt.Println("  packforge catalog list [--catalog <catalog.csv>] [--json] [--explain]")
	fmt.Println("  packforge catalog get <record-id> [--catalog <catalog.csv>] [--json] [--explain]")
	fmt.Println("  packforge catalog validate [--catalog <catalog.csv>] [--json] [--explain]")
}

func printKeysUsage() {
	fmt.Println("Usage:")
	fmt.Println("  packforge keys generate [--out-dir .packforge/keys] [--prefix packforge] [--force] [--json] [--explain]")
}
