// Package testpdf builds small uncompressed PDF documents for tests. Each
// page is a list of text lines set in Helvetica, one line per text object,
// top to bottom. BuildStreams takes raw content streams instead, for pages
// that need TJ arrays or several text objects per line.
package testpdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	pageHeight = 792
	topMargin  = 720
	leftMargin = 72
	lineStep   = 16
)

// Build returns the bytes of a PDF with one page per entry in pages. A page
// given as an empty slice is blank.
func Build(pages ...[]string) []byte {
	streams := make([]string, len(pages))
	for i, lines := range pages {
		streams[i] = pageContent(lines)
	}
	return BuildStreams(streams...)
}

// BuildStreams returns the bytes of a PDF with one page per content stream.
// Streams may select the Helvetica font resource as /F1.
func BuildStreams(streams ...string) []byte {
	var objects []string

	// 1: catalog, 2: page tree, 3: font, then a page and its content stream
	// for every page.
	kids := make([]string, len(streams))
	for i := range streams {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(streams)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, content := range streams {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 %d] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
				pageHeight, 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// WriteFile builds a PDF and writes it to dir/name, returning the full path.
func WriteFile(dir, name string, pages ...[]string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(pages...), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteStreams is WriteFile for raw content streams.
func WriteStreams(dir, name string, streams ...string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildStreams(streams...), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func pageContent(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "BT /F1 12 Tf %d %d Td (%s) Tj ET", leftMargin, topMargin-i*lineStep, escape(line))
	}
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
