package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jssimporter/jss-helper/internal/pkgver"
)

func writeZip(t *testing.T, path string, files map[string]string, order []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for _, name := range order {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(files[name])); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeTarGz(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)

	headers := []*tar.Header{
		{Name: "Nethack-3.4.4.pkg/", Typeflag: tar.TypeDir, Mode: 0o755},
		{Name: "Nethack-3.4.4.pkg/Contents/Info.plist", Typeflag: tar.TypeReg, Mode: 0o644, Size: 5},
		{Name: "README", Typeflag: tar.TypeReg, Mode: 0o644, Size: 5},
	}
	for _, hdr := range headers {
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if hdr.Size > 0 {
			if _, err := tw.Write([]byte("hello")); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestListZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Nethack-3.4.3.pkg.zip")
	writeZip(t, path, map[string]string{
		"Nethack-3.4.3.pkg/Contents/Info.plist": "plist",
		"Nethack-3.4.3.pkg/Contents/Archive":    "payload!",
	}, []string{"Nethack-3.4.3.pkg/Contents/Info.plist", "Nethack-3.4.3.pkg/Contents/Archive"})

	entries, err := List(path)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []Entry{
		{Name: "Nethack-3.4.3.pkg/Contents/Info.plist", Size: 5},
		{Name: "Nethack-3.4.3.pkg/Contents/Archive", Size: 8},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("List = %+v, want %+v", entries, want)
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()

	zipPath := filepath.Join(dir, "Nethack-3.4.3.pkg.zip")
	writeZip(t, zipPath, map[string]string{"Nethack-3.4.3.pkg/Contents/Info.plist": "x"},
		[]string{"Nethack-3.4.3.pkg/Contents/Info.plist"})

	in, err := Inspect(zipPath)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	wantArchive := &Package{Name: "Nethack-3.4.3.pkg.zip", Identity: pkgver.Identity{Basename: "Nethack", Version: "3.4.3", Extension: ".pkg.zip"}}
	if !reflect.DeepEqual(in.Archive, wantArchive) {
		t.Errorf("Archive = %+v, want %+v", in.Archive, wantArchive)
	}
	wantPkgs := []Package{{Name: "Nethack-3.4.3.pkg", Identity: pkgver.Identity{Basename: "Nethack", Version: "3.4.3", Extension: ".pkg"}}}
	if !reflect.DeepEqual(in.Packages, wantPkgs) {
		t.Errorf("Packages = %+v, want %+v", in.Packages, wantPkgs)
	}

	tgzPath := filepath.Join(dir, "bundle.tar.gz")
	writeTarGz(t, tgzPath)
	in, err = Inspect(tgzPath)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if in.Archive != nil {
		t.Errorf("bundle.tar.gz parsed as %+v", in.Archive)
	}
	if len(in.Entries) != 3 || !in.Entries[0].Dir {
		t.Errorf("Entries = %+v", in.Entries)
	}
	if len(in.Packages) != 1 || in.Packages[0].Identity.Version != "3.4.4" {
		t.Errorf("Packages = %+v", in.Packages)
	}
}

func TestListUnsupported(t *testing.T) {
	if _, err := List("Firefox-52.0.dmg"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
	if _, err := List(filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Error("missing archive did not fail")
	}
}

func TestTopLevel(t *testing.T) {
	tests := map[string]string{
		"Foo-1.0.pkg/Contents/Info.plist": "Foo-1.0.pkg",
		"./Foo-1.0.pkg/":                  "Foo-1.0.pkg",
		"README":                          "README",
		"":                                "",
	}
	for in, want := range tests {
		if got := topLevel(in); got != want {
			t.Errorf("topLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
