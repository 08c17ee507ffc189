package ingest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTextPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, []byte("The cat sat."), 0o644); err != nil {
		t.Fatalf("failed to write text: %v", err)
	}
	text, err := ReadText(path)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "The cat sat." {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestReadTextMissingFile(t *testing.T) {
	if _, err := ReadText(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReadTextRejectsPDF(t *testing.T) {
	if _, err := ReadText("book.pdf"); err == nil {
		t.Fatalf("expected error for pdf source")
	}
}

func TestReadTextEPUBSpineOrder(t *testing.T) {
	path := writeTestEPUB(t, map[string]string{
		"ch1.xhtml": "<html><body><p>First chapter.</p></body></html>",
		"ch2.xhtml": "<html><body><p>Second chapter.</p></body></html>",
	}, []string{"ch1", "ch2"})

	text, err := ReadText(path)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	first := strings.Index(text, "First chapter.")
	second := strings.Index(text, "Second chapter.")
	if first < 0 || second < 0 {
		t.Fatalf("chapter text missing: %q", text)
	}
	if first > second {
		t.Fatalf("chapters out of spine order: %q", text)
	}
}

func TestReadTextEPUBWithoutContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.epub")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create epub: %v", err)
	}
	zw := zip.NewWriter(file)
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	if _, err := ReadText(path); err == nil {
		t.Fatalf("expected error for epub without container.xml")
	}
}

func writeTestEPUB(t *testing.T, chapters map[string]string, spine []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.epub")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create epub: %v", err)
	}
	zw := zip.NewWriter(file)

	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}

	write("mimetype", "application/epub+zip")
	write("META-INF/container.xml", `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`)

	var manifest, spineRefs strings.Builder
	for name := range chapters {
		id := strings.TrimSuffix(name, ".xhtml")
		manifest.WriteString(`<item id="` + id + `" href="` + name + `" media-type="application/xhtml+xml"/>`)
	}
	for _, id := range spine {
		spineRefs.WriteString(`<itemref idref="` + id + `"/>`)
	}
	write("OEBPS/content.opf", `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <manifest>`+manifest.String()+`</manifest>
  <spine>`+spineRefs.String()+`</spine>
</package>`)

	for name, content := range chapters {
		write("OEBPS/"+name, content)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	return path
}
