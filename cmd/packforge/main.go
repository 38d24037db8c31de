package main

import (
	"fmt"
	"os"
)

// version is stamped at release time via ldflags; default stays dev for local builds.
var version = "0.0.0-dev"

const (
	exitOK                = 0
	exitInternalFailure   = 1
	exitInvalidInput      = 2
	exitVerifyFailed      = 3
	exitMissingDependency = 4
)

func main() {
	os.Exit(run(os.Args))
}

func run(arguments []string) int {
	if len(arguments) < 2 {
		printUsage()
		return exitOK
	}
	if arguments[1] == "--explain" {
		return writeExplain("Packforge turns a declarative mod catalog into a versioned, verifiably-correct release archive.")
	}

	switch arguments[1] {
	case "build":
		return runBuild(arguments[2:])
	case "verify":
		return runVerify(arguments[2:])
	case "catalog":
		return runCatalog(arguments[2:])
	case "readme":
		return runReadme(arguments[2:])
	case "keys":
		return runKeys(arguments[2:])
	case "doctor":
		return runDoctor(arguments[2:])
	case "version", "--version", "-v":
		if hasExplainFlag(arguments[2:]) {
			return writeExplain("Print the CLI version.")
		}
		fmt.Println("packforge", version)
		return exitOK
	default:
		printUsage()
		return exitInvalidInput
	}
}
