package main

import (
	"crypto/ed25519"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/packforge/packforge/core/archive"
	"github.com/packforge/packforge/core/catalog"
	"github.com/packforge/packforge/core/fsx"
	"github.com/packforge/packforge/core/manifest"
	"github.com/packforge/packforge/core/placement"
	"github.com/packforge/packforge/core/projectconfig"
	"github.com/packforge/packforge/core/release"
	"github.com/packforge/packforge/core/sign"
)

type buildOutput struct {
	OK               bool                        `json:"ok"`
	BuildID          string                      `json:"build_id,omitempty"`
	PackName         string                      `json:"pack_name,omitempty"`
	PackVersion      string                      `json:"pack_version,omitempty"`
	GameVersion      string                      `json:"game_version,omitempty"`
	FilesPlaced      int                         `json:"files_placed,omitempty"`
	ArchivePath      string                      `json:"archive_path,omitempty"`
	ManifestPath     string                      `json:"manifest_path,omitempty"`
	ReadmePath       string                      `json:"readme_path,omitempty"`
	Signed           bool                        `json:"signed,omitempty"`
	CorruptRows      []string                    `json:"corrupt_rows,omitempty"`
	MissingArtifacts []release.MissingArtifact   `json:"missing_artifacts,omitempty"`
	Verification     *release.VerificationResult `json:"verification,omitempty"`
	Error            string                      `json:"error,omitempty"`
}

func runBuild(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Build a release: resolve placements, copy artifacts from the cache, verify the tree against the expected set, and assemble the archive.")
	}
	arguments = reorderInterspersedFlags(arguments, map[string]bool{
		"config":       true,
		"catalog":      true,
		"cache":        true,
		"out":          true,
		"name":         true,
		"game-version": true,
		"pack-version": true,
		"sign-key":     true,
		"sign-key-env": true,
		"readme":       true,
	})
	flagSet := flag.NewFlagSet("build", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var configPath string
	var catalogPath string
	var cacheDir string
	var outDir string
	var packName string
	var gameVersion string
	var packVersion string
	var signKeyPath string
	var signKeyEnv string
	var readmePath string
	var jsonOutput bool
	var helpFlag bool

	flagSet.StringVar(&configPath, "config", projectconfig.DefaultPath, "project config path")
	flagSet.StringVar(&catalogPath, "catalog", "", "catalog CSV path")
	flagSet.StringVar(&cacheDir, "cache", "", "flat source artifact pool directory")
	flagSet.StringVar(&outDir, "out", "", "output directory for the release tree and archive")
	flagSet.StringVar(&packName, "name", "", "pack name")
	flagSet.StringVar(&gameVersion, "game-version", "", "target game version")
	flagSet.StringVar(&packVersion, "pack-version", "", "release version of the pack itself")
	flagSet.StringVar(&signKeyPath, "sign-key", "", "path to base64 ed25519 private key")
	flagSet.StringVar(&signKeyEnv, "sign-key-env", "", "env var containing base64 ed25519 private key")
	flagSet.StringVar(&readmePath, "readme", "", "also write the README manifest to this path")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	flagSet.BoolVar(&helpFlag, "help", false, "show help")

	if err := flagSet.Parse(arguments); err != nil {
		return writeBuildOutput(jsonOutput, buildOutput{Error: err.Error()}, exitInvalidInput)
	}
	if helpFlag {
		printBuildUsage()
		return exitOK
	}

	configuration, err := projectconfig.Load(configPath, configPath == projectconfig.DefaultPath)
	if err != nil {
		return writeBuildOutput(jsonOutput, buildOutput{Error: err.Error()}, exitInvalidInput)
	}
	catalogPath = firstNonEmpty(catalogPath, configuration.Catalog.Path)
	cacheDir = firstNonEmpty(cacheDir, configuration.Build.CacheDir)
	outDir = firstNonEmpty(outDir, configuration.Build.OutputDir, "dist")
	packName = firstNonEmpty(packName, configuration.Build.PackName, "modpack")
	gameVersion = firstNonEmpty(gameVersion, configuration.Build.GameVersion)
	signKeyPath = firstNonEmpty(signKeyPath, configuration.Build.SigningPrivateKey)
	signKeyEnv = firstNonEmpty(signKeyEnv, configuration.Build.SigningPrivateKeyEnv)
	readmePath = firstNonEmpty(readmePath, configuration.Readme.OutputPath)

	if catalogPath == "" {
		return writeBuildOutput(jsonOutput, buildOutput{Error: "catalog path is required (--catalog or catalog.path in config)"}, exitInvalidInput)
	}
	if cacheDir == "" {
		return writeBuildOutput(jsonOutput, buildOutput{Error: "cache dir is required (--cache or build.cache_dir in config)"}, exitInvalidInput)
	}
	if gameVersion == "" {
		return writeBuildOutput(jsonOutput, buildOutput{Error: "game version is required (--game-version or build.game_version in config)"}, exitInvalidInput)
	}
	if packVersion == "" {
		return writeBuildOutput(jsonOutput, buildOutput{Error: "pack version is required (--pack-version)"}, exitInvalidInput)
	}

	signingKey, err := resolveSigningKey(signKeyPath, signKeyEnv)
	if err != nil {
		return writeBuildOutput(jsonOutput, buildOutput{Error: err.Error()}, exitInvalidInput)
	}

	output := buildOutput{
		PackName:    packName,
		PackVersion: packVersion,
		GameVersion: gameVersion,
	}

	snapshot, rowErrors, err := catalog.Load(catalogPath)
	if err != nil {
		output.Error = err.Error()
		return writeBuildOutput(jsonOutput, output, exitInvalidInput)
	}
	if len(rowErrors) > 0 {
		for _, rowError := range rowErrors {
			output.CorruptRows = append(output.CorruptRows, rowError.Error())
		}
		output.Error = fmt.Sprintf("%d corrupt catalog row(s); refusing to build from a damaged catalog", len(rowErrors))
		return writeBuildOutput(jsonOutput, output, exitInvalidInput)
	}

	expected, err := placement.BuildExpectedSet(snapshot, gameVersion)
	if err != nil {
		output.Error = err.Error()
		return writeBuildOutput(jsonOutput, output, exitCodeForError(err, exitInvalidInput))
	}
	if len(expected) == 0 {
		output.Error = fmt.Sprintf("no catalog records place into a %s release", gameVersion)
		return writeBuildOutput(jsonOutput, output, exitInvalidInput)
	}

	releaseName := fmt.Sprintf("%s-%s", packName, packVersion)
	treeRoot := filepath.Join(outDir, releaseName)

	executed, err := release.Execute(expected, cacheDir, treeRoot)
	if err != nil {
		output.Error = err.Error()
		return writeBuildOutput(jsonOutput, output, exitCodeForError(err, exitInternalFailure))
	}
	output.FilesPlaced = executed.Copied
	if aggregate := executed.Err(); aggregate != nil {
		output.MissingArtifacts = executed.Missing
		output.Error = aggregate.Error()
		return writeBuildOutput(jsonOutput, output, exitCodeForError(aggregate, exitMissingDependency))
	}

	actual, err := release.ListTree(treeRoot)
	if err != nil {
		output.Error = err.Error()
		return writeBuildOutput(jsonOutput, output, exitInternalFailure)
	}
	writeFileListDiagnostics(treeRoot, expected, actual)

	diff := release.Verify(expected, actual)
	if mismatch := diff.Err(); mismatch != nil {
		writeVerificationDiagnostics(treeRoot, diff)
		output.Verification = &diff
		output.Error = mismatch.Error()
		return writeBuildOutput(jsonOutput, output, exitCodeForError(mismatch, exitVerifyFailed))
	}

	built, err := manifest.Build(treeRoot, expected, manifest.BuildOptions{
		PackName:    packName,
		PackVersion: packVersion,
		GameVersion: gameVersion,
	})
	if err != nil {
		output.Error = err.Error()
		return writeBuildOutput(jsonOutput, output, exitInternalFailure)
	}
	if signingKey != nil {
		if err := manifest.Sign(&built, signingKey); err != nil {
			output.Error = err.Error()
			return writeBuildOutput(jsonOutput, output, exitInternalFailure)
		}
		output.Signed = true
	}
	output.BuildID = built.BuildID

	manifestJSON, err := json.MarshalIndent(built, "", "  ")
	if err != nil {
		output.Error = err.Error()
		return writeBuildOutput(jsonOutput, output, exitInternalFailure)
	}
	if err := manifest.ValidateJSON(manifestJSON); err != nil {
		output.Error = err.Error()
		return writeBuildOutput(jsonOutput, output, exitInternalFailure)
	}
	manifestPath := filepath.Join(outDir, releaseName+".manifest.json")
	if err := fsx.WriteFileAtomic(manifestPath, manifestJSON, 0o644); err != nil {
		output.Error = err.Error()
		return writeBuildOutput(jsonOutput, output, exitInternalFailure)
	}
	output.ManifestPath = manifestPath

	readmeContent := renderReadme(packName, packVersion, gameVersion, manifest.BuildReadmeRows(snapshot, gameVersion))
	if readmePath != "" {
		if err := fsx.WriteFileAtomic(readmePath, []byte(readmeContent), 0o644); err != nil {
			output.Error = err.Error()
			return writeBuildOutput(jsonOutput, output, exitInternalFailure)
		}
		output.ReadmePath = readmePath
	}

	assembled, err := archive.Assemble(archive.Options{
		TreeRoot:   treeRoot,
		OutputPath: filepath.Join(outDir, releaseName+".zip"),
		Metadata: map[string][]byte{
			release.ManifestFileName: manifestJSON,
			release.ReadmeFileName:   []byte(readmeContent),
		},
	})
	if err != nil {
		output.Error = err.Error()
		return writeBuildOutput(jsonOutput, output, exitInternalFailure)
	}
	output.ArchivePath = assembled.Path
	output.OK = true
	return writeBuildOutput(jsonOutput, output, exitOK)
}

// Diagnostics land inside the tree root on purpose: they are covered by the
// internal-artifact exclusions, so the verifier tolerates them and the
// assembler never packages them.
func writeFileListDiagnostics(treeRoot string, expected []placement.ExpectedFileEntry, actual []string) {
	var expectedLines strings.Builder
	for _, entry := range expected {
		expectedLines.WriteString(entry.RelativePath)
		expectedLines.WriteString("\n")
	}
	_ = fsx.WriteFileAtomic(filepath.Join(treeRoot, "expected-release-files.txt"), []byte(expectedLines.String()), 0o644)

	var actualLines strings.Builder
	for _, entry := range actual {
		actualLines.WriteString(entry)
		actualLines.WriteString("\n")
	}
	_ = fsx.WriteFileAtomic(filepath.Join(treeRoot, "actual-release-files.txt"), []byte(actualLines.String()), 0o644)
}

func writeVerificationDiagnostics(treeRoot string, diff release.VerificationResult) {
	_ = fsx.WriteFileAtomic(filepath.Join(treeRoot, "verification-missing.txt"), []byte(strings.Join(diff.Missing, "\n")+"\n"), 0o644)
	_ = fsx.WriteFileAtomic(filepath.Join(treeRoot, "verification-extra.txt"), []byte(strings.Join(diff.Extra, "\n")+"\n"), 0o644)
}

func resolveSigningKey(path, envName string) (ed25519.PrivateKey, error) {
	if path != "" {
		key, err := sign.LoadPrivateKeyBase64(path)
		if err != nil {
			return nil, fmt.Errorf("signing key: %w", err)
		}
		return key, nil
	}
	if envName != "" {
		encoded, ok := os.LookupEnv(envName)
		if !ok || strings.TrimSpace(encoded) == "" {
			return nil, fmt.Errorf("signing key env %s is empty", envName)
		}
		key, err := sign.ParsePrivateKeyBase64(strings.TrimSpace(encoded))
		if err != nil {
			return nil, fmt.Errorf("signing key env %s: %w", envName, err)
		}
		return key, nil
	}
	return nil, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func writeBuildOutput(jsonOutput bool, output buildOutput, exitCode int) int {
	if jsonOutput {
		return writeJSONOutput(output, exitCode)
	}
	if output.Error != "" {
		fmt.Fprintln(os.Stderr, "build failed:", output.Error)
		for _, row := range output.CorruptRows {
			fmt.Fprintln(os.Stderr, "  corrupt:", row)
		}
		for _, missing := range output.MissingArtifacts {
			fmt.Fprintln(os.Stderr, "  missing artifact:", missing.SourceName, "for", missing.RecordID)
		}
		if output.Verification != nil {
			for _, path := range output.Verification.Missing {
				fmt.Fprintln(os.Stderr, "  missing from tree:", path)
			}
			for _, path := range output.Verification.Extra {
				fmt.Fprintln(os.Stderr, "  unexpected in tree:", path)
			}
		}
		return exitCode
	}
	fmt.Printf("built %s (%d files, build %s)\n", output.ArchivePath, output.FilesPlaced, output.BuildID)
	return exitCode
}
