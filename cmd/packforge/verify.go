package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/packforge/packforge/core/catalog"
	"github.com/packforge/packforge/core/manifest"
	"github.com/packforge/packforge/core/placement"
	"github.com/packforge/packforge/core/projectconfig"
	"github.com/packforge/packforge/core/release"
	"github.com/packforge/packforge/core/sign"
)

type verifyOutput struct {
	OK                bool                        `json:"ok"`
	Path              string                      `json:"path,omitempty"`
	BuildID           string                      `json:"build_id,omitempty"`
	FilesChecked      int                         `json:"files_checked,omitempty"`
	Verification      *release.VerificationResult `json:"verification,omitempty"`
	InternalArtifacts []string                    `json:"internal_artifacts,omitempty"`
	ManifestDigestOK  bool                        `json:"manifest_digest_ok,omitempty"`
	SignatureStatus   string                      `json:"signature_status,omitempty"`
	SignatureErrors   []string                    `json:"signature_errors,omitempty"`
	Error             string                      `json:"error,omitempty"`
}

func runVerify(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Verify a release tree or archive against the catalog's expected file set, and check the embedded manifest when present.")
	}
	arguments = reorderInterspersedFlags(arguments, map[string]bool{
		"catalog":      true,
		"game-version": true,
		"public-key":   true,
	})
	flagSet := flag.NewFlagSet("verify", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var catalogPath string
	var gameVersion string
	var publicKeyPath string
	var jsonOutput bool
	var helpFlag bool

	flagSet.StringVar(&catalogPath, "catalog", "", "catalog CSV path")
	flagSet.StringVar(&gameVersion, "game-version", "", "target game version")
	flagSet.StringVar(&publicKeyPath, "public-key", "", "path to base64 ed25519 public key")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	flagSet.BoolVar(&helpFlag, "help", false, "show help")

	if err := flagSet.Parse(arguments); err != nil {
		return writeVerifyOutput(jsonOutput, verifyOutput{Error: err.Error()}, exitInvalidInput)
	}
	if helpFlag {
		printVerifyUsage()
		return exitOK
	}
	positionals := flagSet.Args()
	if len(positionals) != 1 {
		return writeVerifyOutput(jsonOutput, verifyOutput{Error: "exactly one release tree or archive path is required"}, exitInvalidInput)
	}
	if configuration, err := projectconfig.Load(projectconfig.DefaultPath, true); err == nil {
		catalogPath = firstNonEmpty(catalogPath, configuration.Catalog.Path)
		gameVersion = firstNonEmpty(gameVersion, configuration.Build.GameVersion)
		publicKeyPath = firstNonEmpty(publicKeyPath, configuration.Build.VerifyPublicKey)
	}
	if catalogPath == "" || gameVersion == "" {
		return writeVerifyOutput(jsonOutput, verifyOutput{Error: "--catalog and --game-version are required"}, exitInvalidInput)
	}

	targetPath := positionals[0]
	output := verifyOutput{Path: targetPath}

	snapshot, rowErrors, err := catalog.Load(catalogPath)
	if err != nil {
		output.Error = err.Error()
		return writeVerifyOutput(jsonOutput, output, exitInvalidInput)
	}
	if len(rowErrors) > 0 {
		output.Error = fmt.Sprintf("%d corrupt catalog row(s)", len(rowErrors))
		return writeVerifyOutput(jsonOutput, output, exitInvalidInput)
	}
	expected, err := placement.BuildExpectedSet(snapshot, gameVersion)
	if err != nil {
		output.Error = err.Error()
		return writeVerifyOutput(jsonOutput, output, exitCodeForError(err, exitInvalidInput))
	}
	output.FilesChecked = len(expected)

	isArchive := strings.HasSuffix(strings.ToLower(targetPath), ".zip")
	var actual []string
	if isArchive {
		actual, err = release.ListZip(targetPath)
	} else {
		actual, err = release.ListTree(targetPath)
	}
	if err != nil {
		output.Error = err.Error()
		return writeVerifyOutput(jsonOutput, output, exitInvalidInput)
	}

	if isArchive {
		// An assembled archive must never contain verification diagnostics
		// or reconcile scratch; their presence alone fails the build.
		if polluted := release.FindInternalArtifacts(actual); len(polluted) > 0 {
			output.InternalArtifacts = polluted
			output.Error = fmt.Sprintf("archive contains %d internal artifact(s)", len(polluted))
			return writeVerifyOutput(jsonOutput, output, exitVerifyFailed)
		}
		actual = withoutMetadata(actual)
		if code, ok := checkArchiveManifest(targetPath, publicKeyPath, &output); !ok {
			return writeVerifyOutput(jsonOutput, output, code)
		}
	}

	diff := release.Verify(expected, actual)
	if mismatch := diff.Err(); mismatch != nil {
		output.Verification = &diff
		output.Error = mismatch.Error()
		return writeVerifyOutput(jsonOutput, output, exitCodeForError(mismatch, exitVerifyFailed))
	}

	output.OK = true
	return writeVerifyOutput(jsonOutput, output, exitOK)
}

func withoutMetadata(paths []string) []string {
	filtered := make([]string, 0, len(paths))
	for _, candidate := range paths {
		if release.IsReleaseMetadata(candidate) {
			continue
		}
		filtered = append(filtered, candidate)
	}
	return filtered
}

// checkArchiveManifest validates the embedded manifest's digest and, when a
// public key is supplied, its signatures. A missing manifest is tolerated
// for unsigned ad-hoc archives unless a key was given.
func checkArchiveManifest(archivePath, publicKeyPath string, output *verifyOutput) (int, bool) {
	manifestBytes, found, err := release.ReadZipEntry(archivePath, release.ManifestFileName)
	if err != nil {
		output.Error = err.Error()
		return exitInternalFailure, false
	}
	if !found {
		if publicKeyPath != "" {
			output.Error = "archive has no manifest to verify signatures against"
			return exitVerifyFailed, false
		}
		output.SignatureStatus = "missing"
		return exitOK, true
	}
	parsed, err := manifest.Parse(manifestBytes)
	if err != nil {
		output.Error = err.Error()
		return exitVerifyFailed, false
	}
	output.BuildID = parsed.BuildID
	if err := manifest.CheckDigest(parsed); err != nil {
		output.Error = err.Error()
		return exitVerifyFailed, false
	}
	output.ManifestDigestOK = true

	if publicKeyPath == "" {
		output.SignatureStatus = "skipped"
		return exitOK, true
	}
	publicKey, err := sign.LoadPublicKeyBase64(publicKeyPath)
	if err != nil {
		output.Error = err.Error()
		return exitInvalidInput, false
	}
	valid, failures := manifest.VerifySignatures(parsed, publicKey)
	output.SignatureErrors = failures
	if valid == 0 {
		output.SignatureStatus = "failed"
		output.Error = "no valid manifest signature"
		return exitVerifyFailed, false
	}
	output.SignatureStatus = "verified"
	return exitOK, true
}

func writeVerifyOutput(jsonOutput bool, output verifyOutput, exitCode int) int {
	if jsonOutput {
		return writeJSONOutput(output, exitCode)
	}
	if output.Error != "" {
		fmt.Fprintln(os.Stderr, "verify failed:", output.Error)
		if output.Verification != nil {
			for _, path := range output.Verification.Missing {
				fmt.Fprintln(os.Stderr, "  missing:", path)
			}
			for _, path := range output.Verification.Extra {
				fmt.Fprintln(os.Stderr, "  extra:", path)
			}
		}
		for _, path := range output.InternalArtifacts {
			fmt.Fprintln(os.Stderr, "  internal artifact:", path)
		}
		return exitCode
	}
	fmt.Printf("verified %s: %d files match the expected set\n", output.Path, output.FilesChecked)
	return exitCode
}
