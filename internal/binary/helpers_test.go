package binary

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
)

var (
	linuxAMD64  = &platform.Info{OS: "linux", Arch: "amd64"}
	darwinARM64 = &platform.Info{OS: "darwin", Arch: "arm64"}
	windowsAMD  = &platform.Info{OS: "windows", Arch: "amd64"}
)

// createTarGz builds a gzipped tarball in memory.
func createTarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzipWriter)

	for name, content := range files {
		header := &tar.Header{
			Name:     name,
			Mode:     0755,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("failed to write header for %s: %v", name, err)
		}
		if _, err := tarWriter.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write content for %s: %v", name, err)
		}
	}

	if err := tarWriter.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	return buf.Bytes()
}

// artifactServer serves fixed bodies by path and counts requests.
type artifactServer struct {
	*httptest.Server
	hits  atomic.Int32
	files map[string][]byte
}

func newArtifactServer(t *testing.T, files map[string][]byte) *artifactServer {
	t.Helper()

	s := &artifactServer{files: files}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		body, ok := s.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}

// twoVariantDescriptor mirrors the into-docker formula: a Linux artifact
// followed by the catch-all.
func twoVariantDescriptor(linuxURL, linuxSum, defaultURL, defaultSum string) *formula.Descriptor {
	return &formula.Descriptor{
		Name:    "into-docker",
		Version: "1.1.0",
		Binary:  "into",
		Artifacts: []formula.Artifact{
			{
				When:      platform.Matcher{OS: platform.OSLinux},
				URL:       linuxURL,
				Checksum:  linuxSum,
				Algorithm: formula.SHA256,
			},
			{
				URL:       defaultURL,
				Checksum:  defaultSum,
				Algorithm: formula.SHA256,
			},
		},
	}
}
