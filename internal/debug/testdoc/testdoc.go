// seehuhn.de/go/pdfconcat - concatenate PDF files and add page numbers
// Copyright (C) 2026  The pdfconcat Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package testdoc generates small PDF documents for use in tests.
//
// Every page carries a marker string in its content stream, so that tests
// can check which source page ended up where.
package testdoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	pdfdoc "seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader"

	"seehuhn.de/go/pdfconcat/document"
)

// Page describes one page of a generated document.
type Page struct {
	// MediaBox is the page size.  If this is nil, A4 is used.
	MediaBox *pdf.Rectangle

	// CropBox is the visible region of the page, or nil to omit the entry.
	CropBox *pdf.Rectangle

	// Rotate is the value of the /Rotate entry, or 0 to omit the entry.
	Rotate int

	// Marker is written into the content stream of the page.
	Marker string
}

// Pages returns n pages of size A4, with markers prefix1, ..., prefixN.
func Pages(prefix string, n int) []Page {
	res := make([]Page, n)
	for i := range res {
		res[i].Marker = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return res
}

// Write writes a document with the given pages to w.
func Write(w io.Writer, v pdf.Version, pages ...Page) error {
	doc, err := document.Write(w, v)
	if err != nil {
		return err
	}

	for _, p := range pages {
		box := p.MediaBox
		if box == nil {
			box = pdfdoc.A4
		}

		contentRef := doc.Out.Alloc()
		stm, err := doc.Out.OpenStream(contentRef, nil, pdf.FilterCompress{})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stm, "%% %s\n0 0 m\n10 10 l\nS\n", p.Marker)
		if err != nil {
			return err
		}
		err = stm.Close()
		if err != nil {
			return err
		}

		mediaBox := *box
		dict := pdf.Dict{
			"MediaBox":  &mediaBox,
			"Resources": pdf.Dict{},
			"Contents":  contentRef,
		}
		if p.CropBox != nil {
			cropBox := *p.CropBox
			dict["CropBox"] = &cropBox
		}
		if p.Rotate != 0 {
			dict["Rotate"] = pdf.Integer(p.Rotate)
		}
		err = doc.AppendPage(0, dict)
		if err != nil {
			return err
		}
	}

	return doc.Close()
}

// Reader returns a reader for a generated document.
func Reader(v pdf.Version, pages ...Page) (*pdf.Reader, error) {
	buf := &bytes.Buffer{}
	err := Write(buf, v, pages...)
	if err != nil {
		return nil, err
	}
	return pdf.NewReader(bytes.NewReader(buf.Bytes()), nil)
}

// Contents returns the decoded content streams of all pages of r.
func Contents(r pdf.Getter) ([]string, error) {
	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}

	res := make([]string, numPages)
	for i := range numPages {
		_, dict, err := pagetree.GetPage(r, i)
		if err != nil {
			return nil, err
		}
		body, err := pagetree.ContentStream(r, dict)
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		res[i] = string(data)
	}
	return res, nil
}

// Markers returns the marker strings of all pages of r.
// Pages without a marker, for example blank pages, give the empty string.
func Markers(r pdf.Getter) ([]string, error) {
	contents, err := Contents(r)
	if err != nil {
		return nil, err
	}

	res := make([]string, len(contents))
	for i, body := range contents {
		for line := range strings.Lines(body) {
			if marker, ok := strings.CutPrefix(line, "% "); ok {
				res[i] = strings.TrimSpace(marker)
				break
			}
		}
	}
	return res, nil
}

// Labels returns the text shown on each page of r.  For the generated
// documents, this is the page number label added by numbering, or the
// empty string for pages without a label.
func Labels(r pdf.Getter) ([]string, error) {
	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}

	res := make([]string, numPages)
	for i := range numPages {
		_, dict, err := pagetree.GetPage(r, i)
		if err != nil {
			return nil, err
		}

		text := &strings.Builder{}
		in := reader.New(r)
		in.Text = func(s string) error {
			text.WriteString(s)
			return nil
		}
		err = in.ParsePage(dict, matrix.Identity)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		res[i] = strings.TrimSpace(text.String())
	}
	return res, nil
}

// MediaBoxes returns the media boxes of all pages of r.
func MediaBoxes(r pdf.Getter) ([]*pdf.Rectangle, error) {
	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}

	res := make([]*pdf.Rectangle, numPages)
	for i := range numPages {
		_, dict, err := pagetree.GetPage(r, i)
		if err != nil {
			return nil, err
		}
		res[i], err = pdf.GetRectangle(r, dict["MediaBox"])
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
