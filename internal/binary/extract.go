package binary

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path"

	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
)

// Unpack returns the executable contained in data according to format.
// Binary artifacts are returned as-is.
func Unpack(data []byte, format formula.ArtifactFormat, binaryName string) ([]byte, error) {
	switch format {
	case formula.FormatBinary:
		return data, nil
	case formula.FormatTarGz:
		return extractBinary(data, binaryName)
	default:
		return nil, fmt.Errorf("unsupported artifact format: %q", format)
	}
}

// extractBinary finds the regular file whose base name is binaryName in a
// gzipped tarball and returns its contents.
func extractBinary(data []byte, binaryName string) ([]byte, error) {
	gzipReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("binary %s not found in archive", binaryName)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar header: %w", err)
		}

		if header.Typeflag == tar.TypeReg && path.Base(header.Name) == binaryName {
			content, err := io.ReadAll(tarReader)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", header.Name, err)
			}
			return content, nil
		}
	}
}
