package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/antchfx/xmlquery"
)

const containerPath = "META-INF/container.xml"

// readEPUB extracts the visible text of an EPUB in spine order. An EPUB is a
// zip with a container.xml pointing at an OPF package, whose spine lists the
// XHTML documents.
func readEPUB(filename string) (string, error) {
	reader, err := zip.OpenReader(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open epub: %w", err)
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			// Best-effort close for read-only archive.
			_ = cerr
		}
	}()

	files := map[string]*zip.File{}
	for _, f := range reader.File {
		files[f.Name] = f
	}

	opfPath, err := locateOPF(files)
	if err != nil {
		return "", err
	}
	docs, err := spineDocuments(files, opfPath)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, docPath := range docs {
		f, ok := files[docPath]
		if !ok {
			continue
		}
		text, err := documentText(f)
		if err != nil {
			return "", fmt.Errorf("failed to read chapter %s: %w", docPath, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("epub has no readable chapters: %s", filename)
	}
	return b.String(), nil
}

func locateOPF(files map[string]*zip.File) (string, error) {
	f, ok := files[containerPath]
	if !ok {
		return "", fmt.Errorf("epub is missing %s", containerPath)
	}
	doc, err := parseZipXML(f)
	if err != nil {
		return "", fmt.Errorf("failed to parse container.xml: %w", err)
	}
	rootfile := xmlquery.FindOne(doc, "//rootfile")
	if rootfile == nil {
		return "", fmt.Errorf("container.xml has no rootfile entry")
	}
	opfPath := rootfile.SelectAttr("full-path")
	if opfPath == "" {
		return "", fmt.Errorf("container.xml rootfile has no full-path")
	}
	return opfPath, nil
}

func spineDocuments(files map[string]*zip.File, opfPath string) ([]string, error) {
	f, ok := files[opfPath]
	if !ok {
		return nil, fmt.Errorf("epub is missing package document %s", opfPath)
	}
	doc, err := parseZipXML(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse package document: %w", err)
	}

	hrefByID := map[string]string{}
	for _, item := range xmlquery.Find(doc, "//manifest/item") {
		id := item.SelectAttr("id")
		href := item.SelectAttr("href")
		if id != "" && href != "" {
			hrefByID[id] = href
		}
	}

	opfDir := path.Dir(opfPath)
	var docs []string
	for _, itemref := range xmlquery.Find(doc, "//spine/itemref") {
		href, ok := hrefByID[itemref.SelectAttr("idref")]
		if !ok {
			continue
		}
		docs = append(docs, path.Join(opfDir, href))
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("epub spine is empty")
	}
	return docs, nil
}

func documentText(f *zip.File) (string, error) {
	doc, err := parseZipXML(f)
	if err != nil {
		return "", err
	}
	if body := xmlquery.FindOne(doc, "//body"); body != nil {
		return body.InnerText(), nil
	}
	return doc.InnerText(), nil
}

func parseZipXML(f *zip.File) (*xmlquery.Node, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			// Best-effort close for read-only entry.
			_ = cerr
		}
	}()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return xmlquery.Parse(bytes.NewReader(data))
}
