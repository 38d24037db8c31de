package release

import (
	"path"
	"strings"
)

// internalArtifactPatterns match diagnostic files the build writes next to
// the release tree. They must never count as release content and must never
// end up inside the assembled archive.
var internalArtifactPatterns = []string{
	"expected-release-files.*",
	"actual-release-files.*",
	"verification-missing.*",
	"verification-extra.*",
}

// IsInternalArtifact reports whether a slash-separated relative path is a
// verification diagnostic or lives under a reconcile-* scratch directory.
func IsInternalArtifact(relativePath string) bool {
	normalized := path.Clean(strings.ReplaceAll(relativePath, "\\", "/"))
	segments := strings.Split(normalized, "/")
	for _, segment := range segments[:len(segments)-1] {
		if strings.HasPrefix(segment, "reconcile-") {
			return true
		}
	}
	base := segments[len(segments)-1]
	if strings.HasPrefix(base, "reconcile-") {
		return true
	}
	for _, pattern := range internalArtifactPatterns {
		if matched, err := path.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// MetadataFileNames are assembler outputs that ride along at the archive
// root but are not part of the expected mod tree.
const (
	ManifestFileName = "release-manifest.json"
	ReadmeFileName   = "README.md"
)

// IsReleaseMetadata reports whether a relative path is a well-known
// assembler output rather than placed release content.
func IsReleaseMetadata(relativePath string) bool {
	normalized := path.Clean(strings.ReplaceAll(relativePath, "\\", "/"))
	return normalized == ManifestFileName || normalized == ReadmeFileName
}
