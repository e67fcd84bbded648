package backup

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Format represents the compression format for backup archives
type Format string

const (
	FormatGzip Format = "gzip"
	FormatZstd Format = "zstd"
)

// String returns the string representation of the compression format
func (f Format) String() string {
	return string(f)
}

// Extension returns the file extension for the compression format
func (f Format) Extension() string {
	switch f {
	case FormatZstd:
		return ".tar.zst"
	default:
		return ".tar.gz"
	}
}

// Parse parses a string into a Format
func Parse(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "gzip", "gz":
		return FormatGzip, nil
	case "zstd", "zst":
		return FormatZstd, nil
	default:
		return "", fmt.Errorf("unsupported backup format '%s': must be one of: gzip, zstd", s)
	}
}

// Infer determines the format from an archive filename, falling back to gzip
func Infer(name string) Format {
	if strings.HasSuffix(name, ".tar.zst") || strings.HasSuffix(name, ".zst") {
		return FormatZstd
	}
	return FormatGzip
}

// Create writes the named files from dir into a compressed tar archive.
// Entries are stored flat under their base names, mirroring the flat
// directory the renamer operates on.
func (f Format) Create(dir string, names []string, writer io.Writer) error {
	switch f {
	case FormatZstd:
		zw, err := zstd.NewWriter(writer)
		if err != nil {
			return err
		}
		if err := createTar(dir, names, zw); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	case FormatGzip:
		gw := gzip.NewWriter(writer)
		if err := createTar(dir, names, gw); err != nil {
			gw.Close()
			return err
		}
		return gw.Close()
	default:
		return fmt.Errorf("unsupported backup format: %s", f)
	}
}

// Extract unpacks a compressed tar archive into destDir
func (f Format) Extract(reader io.Reader, destDir string) error {
	switch f {
	case FormatZstd:
		zr, err := zstd.NewReader(reader)
		if err != nil {
			return err
		}
		defer zr.Close()
		return extractTar(zr, destDir)
	case FormatGzip:
		gr, err := gzip.NewReader(reader)
		if err != nil {
			return err
		}
		defer gr.Close()
		return extractTar(gr, destDir)
	default:
		return fmt.Errorf("unsupported backup format: %s", f)
	}
}

func createTar(dir string, names []string, writer io.Writer) error {
	tarWriter := tar.NewWriter(writer)
	defer tarWriter.Close()

	for _, name := range names {
		if err := addFileToTar(tarWriter, dir, name); err != nil {
			return err
		}
	}

	return nil
}

func addFileToTar(tarWriter *tar.Writer, dir, name string) error {
	path := filepath.Join(dir, name)

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = name

	if err := tarWriter.WriteHeader(header); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(tarWriter, file)
	return err
}

func extractTar(reader io.Reader, destDir string) error {
	tarReader := tar.NewReader(reader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}

		// Reject entries that would escape the destination directory
		name := filepath.Clean(header.Name)
		if strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			return fmt.Errorf("archive entry '%s' escapes destination directory", header.Name)
		}

		target := filepath.Join(destDir, name)
		if dir := filepath.Dir(target); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}

		file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
		if err != nil {
			return err
		}
		if _, err := io.Copy(file, tarReader); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
	}

	return nil
}
