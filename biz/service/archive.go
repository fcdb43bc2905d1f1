package service

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hankinsohl/fgdb/pkg/constants"
)

// maxEntrySize bounds a single decompressed archive entry.
const maxEntrySize = 256 << 20

// ExtractZip unpacks the archive at zipPath into dest. Entries are flattened
// to their base names, so a catalog zipped with or without a top-level folder
// lands as <dest>/<table>.json. Entries that would escape dest are rejected.
func ExtractZip(zipPath, dest string) ([]string, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, err
	}

	var names []string
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		cleanName := filepath.ToSlash(filepath.Clean(f.Name))
		if !filepath.IsLocal(cleanName) {
			return nil, fmt.Errorf("archive entry %q escapes destination", f.Name)
		}
		base := filepath.Base(cleanName)
		if strings.HasPrefix(base, ".") {
			continue
		}
		if err := extractFile(f, filepath.Join(dest, base)); err != nil {
			return nil, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		names = append(names, base)
	}
	slices.Sort(names)
	return names, nil
}

func extractFile(f *zip.File, dest string) error {
	if f.UncompressedSize64 > maxEntrySize {
		return fmt.Errorf("entry too large: %d bytes", f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return writeFileAtomic(dest, io.LimitReader(rc, maxEntrySize))
}

// BuildZip writes every catalog JSON file of srcDir into a new archive at zipPath.
func BuildZip(srcDir, zipPath string) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(zipPath), 0o755); err != nil {
		return nil, err
	}
	out, err := os.Create(zipPath)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	zipWriter := zip.NewWriter(out)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != constants.JSONExt {
			continue
		}
		if err := addZipFile(zipWriter, filepath.Join(srcDir, entry.Name()), entry.Name()); err != nil {
			return nil, err
		}
		names = append(names, entry.Name())
	}
	if err := zipWriter.Close(); err != nil {
		return nil, err
	}
	return names, out.Close()
}

func addZipFile(zipWriter *zip.Writer, src, name string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	writer, err := zipWriter.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, f)
	return err
}
