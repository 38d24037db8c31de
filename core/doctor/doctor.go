// Package doctor runs local environment checks so a failing build can be
// diagnosed before any placement work starts.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/packforge/packforge/core/catalog"
	"github.com/packforge/packforge/core/sign"
)

const (
	statusPass = "pass"
	statusWarn = "warn"
	statusFail = "fail"
)

type Options struct {
	CatalogPath     string
	CacheDir        string
	OutputDir       string
	SigningKeyPath  string
	ProducerVersion string
}

type Result struct {
	SchemaID        string  `json:"schema_id"`
	SchemaVersion   string  `json:"schema_version"`
	CreatedAt       string  `json:"created_at"`
	ProducerVersion string  `json:"producer_version"`
	Status          string  `json:"status"`
	Summary         string  `json:"summary"`
	Checks          []Check `json:"checks"`
}

type Check struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	FixCommand string `json:"fix_command,omitempty"`
}

func Run(opts Options) Result {
	producerVersion := strings.TrimSpace(opts.ProducerVersion)
	if producerVersion == "" {
		producerVersion = "0.0.0-dev"
	}

	checks := []Check{
		checkCatalog(opts.CatalogPath),
		checkCacheDir(opts.CacheDir),
		checkOutputDir(opts.OutputDir),
		checkSigningKey(opts.SigningKeyPath),
	}

	failed := 0
	warned := 0
	for _, check := range checks {
		switch check.Status {
		case statusFail:
			failed++
		case statusWarn:
			warned++
		}
	}

	status := statusPass
	summary := "all checks passed"
	if warned > 0 {
		status = statusWarn
		summary = fmt.Sprintf("%d check(s) warned", warned)
	}
	if failed > 0 {
		status = statusFail
		summary = fmt.Sprintf("%d check(s) failed", failed)
	}

	return Result{
		SchemaID:        "packforge.doctor.result",
		SchemaVersion:   "1.0.0",
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		ProducerVersion: producerVersion,
		Status:          status,
		Summary:         summary,
		Checks:          checks,
	}
}

func checkCatalog(path string) Check {
	check := Check{Name: "catalog"}
	if strings.TrimSpace(path) == "" {
		check.Status = statusFail
		check.Message = "catalog path not configured"
		check.FixCommand = "set catalog.path in .packforge/config.yaml or pass --catalog"
		return check
	}
	snapshot, rowErrors, err := catalog.Load(path)
	if err != nil {
		check.Status = statusFail
		check.Message = fmt.Sprintf("catalog unreadable: %v", err)
		return check
	}
	if len(rowErrors) > 0 {
		check.Status = statusFail
		check.Message = fmt.Sprintf("%d corrupt row(s) in %s", len(rowErrors), path)
		check.FixCommand = "packforge catalog validate --catalog " + path
		return check
	}
	check.Status = statusPass
	check.Message = fmt.Sprintf("%d records in %s", snapshot.Len(), path)
	return check
}

func checkCacheDir(dir string) Check {
	check := Check{Name: "artifact_cache"}
	if strings.TrimSpace(dir) == "" {
		check.Status = statusWarn
		check.Message = "cache dir not configured"
		check.FixCommand = "set build.cache_dir in .packforge/config.yaml or pass --cache"
		return check
	}
	info, err := os.Stat(dir)
	if err != nil {
		check.Status = statusWarn
		check.Message = fmt.Sprintf("cache dir missing: %s", dir)
		check.FixCommand = "run the artifact downloader to populate " + dir
		return check
	}
	if !info.IsDir() {
		check.Status = statusFail
		check.Message = fmt.Sprintf("cache path is not a directory: %s", dir)
		return check
	}
	check.Status = statusPass
	check.Message = dir
	return check
}

func checkOutputDir(dir string) Check {
	check := Check{Name: "output_dir"}
	if strings.TrimSpace(dir) == "" {
		dir = "dist"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		check.Status = statusFail
		check.Message = fmt.Sprintf("cannot create output dir: %v", err)
		return check
	}
	probe := filepath.Join(dir, ".packforge-doctor-probe")
	if err := os.WriteFile(probe, []byte("probe"), 0o600); err != nil {
		check.Status = statusFail
		check.Message = fmt.Sprintf("output dir not writable: %v", err)
		return check
	}
	_ = os.Remove(probe)
	check.Status = statusPass
	check.Message = dir
	return check
}

func checkSigningKey(path string) Check {
	check := Check{Name: "signing_key"}
	if strings.TrimSpace(path) == "" {
		check.Status = statusWarn
		check.Message = "no signing key configured; releases will be unsigned"
		check.FixCommand = "packforge keys generate"
		return check
	}
	if _, err := sign.LoadPrivateKeyBase64(path); err != nil {
		check.Status = statusFail
		check.Message = fmt.Sprintf("signing key unusable: %v", err)
		return check
	}
	check.Status = statusPass
	check.Message = path
	return check
}
