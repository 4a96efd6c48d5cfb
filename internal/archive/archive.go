// Package archive lists the contents of compressed package archives, such as
// a "Firefox-52.0.pkg.zip" waiting to be uploaded, without extracting them.
package archive

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"github.com/jssimporter/jss-helper/internal/logger"
)

// ErrUnsupported is returned for files whose extension names no known archive format.
var ErrUnsupported = errors.New("unsupported archive format")

// Entry is one file or directory inside an archive.
type Entry struct {
	Name string
	Size int64
	Dir  bool
}

// List routes to the reader for the archive's format and returns its entries
// in archive order.
func List(src string) ([]Entry, error) {
	switch {
	case strings.HasSuffix(src, ".zip"):
		logger.Debug("[DEBUG] compression type is zip\n")
		return listZip(src)
	case strings.HasSuffix(src, ".7z"):
		logger.Debug("[DEBUG] compression type is 7z\n")
		return list7z(src)
	case strings.HasSuffix(src, ".tar"), strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"),
		strings.HasSuffix(src, ".tar.bz2"), strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("[DEBUG] compression type is tar\n")
		return listTar(src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, src)
	}
}

// listTar handles tar and compressed tar variants.
func listTar(src string) ([]Entry, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to open xz stream: %w", err)
		}
		reader = xzr
	}

	var entries []Entry
	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src, err)
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			entries = append(entries, Entry{Name: hdr.Name, Dir: true})
		case tar.TypeReg:
			entries = append(entries, Entry{Name: hdr.Name, Size: hdr.Size})
		}
	}
	return entries, nil
}

func listZip(src string) ([]Entry, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		info := f.FileInfo()
		entries = append(entries, Entry{Name: f.Name, Size: info.Size(), Dir: info.IsDir()})
	}
	return entries, nil
}

// list7z reads .7z archives using the sevenzip library.
func list7z(src string) ([]Entry, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		info := f.FileInfo()
		entries = append(entries, Entry{Name: f.Name, Size: info.Size(), Dir: info.IsDir()})
	}
	return entries, nil
}
