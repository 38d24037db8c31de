package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/packforge/packforge/core/sign"
)

type keysGenerateOutput struct {
	OK             bool   `json:"ok"`
	KeyID          string `json:"key_id,omitempty"`
	PublicKeyPath  string `json:"public_key_path,omitempty"`
	PrivateKeyPath string `json:"private_key_path,omitempty"`
	Error          string `json:"error,omitempty"`
}

func runKeys(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Manage the local ed25519 keypair used to sign release manifests.")
	}
	if len(arguments) == 0 {
		printKeysUsage()
		return exitInvalidInput
	}
	switch arguments[0] {
	case "--help", "-h":
		printKeysUsage()
		return exitOK
	case "generate":
		return runKeysGenerate(arguments[1:])
	default:
		printKeysUsage()
		return exitInvalidInput
	}
}

func runKeysGenerate(arguments []string) int {
	arguments = reorderInterspersedFlags(arguments, map[string]bool{
		"out-dir": true,
		"prefix":  true,
	})
	flagSet := flag.NewFlagSet("keys-generate", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var outDir string
	var prefix string
	var force bool
	var jsonOutput bool
	flagSet.StringVar(&outDir, "out-dir", filepath.Join(".packforge", "keys"), "directory for generated key files")
	flagSet.StringVar(&prefix, "prefix", "packforge", "key file prefix")
	flagSet.BoolVar(&force, "force", false, "overwrite existing key files")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	if err := flagSet.Parse(arguments); err != nil {
		return writeKeysGenerateOutput(jsonOutput, keysGenerateOutput{Error: err.Error()}, exitInvalidInput)
	}

	privatePath := filepath.Join(outDir, prefix+".key")
	publicPath := filepath.Join(outDir, prefix+".pub")
	if !force {
		for _, existing := range []string{privatePath, publicPath} {
			if _, err := os.Stat(existing); err == nil {
				return writeKeysGenerateOutput(jsonOutput, keysGenerateOutput{
					Error: fmt.Sprintf("key file already exists: %s (use --force to overwrite)", existing),
				}, exitInvalidInput)
			}
		}
	}

	keys, err := sign.GenerateKeyPair()
	if err != nil {
		return writeKeysGenerateOutput(jsonOutput, keysGenerateOutput{Error: err.Error()}, exitInternalFailure)
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return writeKeysGenerateOutput(jsonOutput, keysGenerateOutput{Error: err.Error()}, exitInternalFailure)
	}
	if err := os.WriteFile(privatePath, []byte(base64.StdEncoding.EncodeToString(keys.Private)+"\n"), 0o600); err != nil {
		return writeKeysGenerateOutput(jsonOutput, keysGenerateOutput{Error: err.Error()}, exitInternalFailure)
	}
	if err := os.WriteFile(publicPath, []byte(base64.StdEncoding.EncodeToString(keys.Public)+"\n"), 0o644); err != nil {
		return writeKeysGenerateOutput(jsonOutput, keysGenerateOutput{Error: err.Error()}, exitInternalFailure)
	}

	return writeKeysGenerateOutput(jsonOutput, keysGenerateOutput{
		OK:             true,
		KeyID:          sign.KeyID(keys.Public),
		PublicKeyPath:  publicPath,
		PrivateKeyPath: privatePath,
	}, exitOK)
}

func writeKeysGenerateOutput(jsonOutput bool, output keysGenerateOutput, exitCode int) int {
	if jsonOutput {
		return writeJSONOutput(output, exitCode)
	}
	if output.Error != "" {
		fmt.Fprintln(os.Stderr, output.Error)
		return exitCode
	}
	fmt.Printf("generated keypair %s\n  private: %s\n  public:  %s\n", output.KeyID, output.PrivateKeyPath, output.PublicKeyPath)
	return exitCode
}
