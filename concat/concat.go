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

// Package concat concatenates PDF documents.
//
// The pages of all source documents are copied into a new document, in
// order.  After every source document with an odd number of pages, a blank
// page is inserted, so that every source document starts on an odd page
// (a right-hand page, when printed double-sided).
package concat

import (
	"errors"
	"fmt"
	"io"
	"log"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pdfconcat/document"
)

// Writer assembles a concatenated document.
type Writer struct {
	doc *document.Writer
}

// NewWriter starts a new concatenated document, which is written to w
// using PDF version v.
func NewWriter(w io.Writer, v pdf.Version) (*Writer, error) {
	doc, err := document.Write(w, v)
	if err != nil {
		return nil, err
	}
	return &Writer{doc: doc}, nil
}

// Append copies all pages of r to the end of the concatenated document.
//
// Each page keeps its own page size.  If r has an odd number of pages, a
// blank page of the same size as the last page of r is added after the
// copied pages.
func (c *Writer) Append(r pdf.Getter) error {
	src, err := c.doc.Load(r)
	if err != nil {
		return err
	}

	numPages := src.NumPages()
	for i := range numPages {
		err := src.CopyPage(i)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}

	if numPages%2 == 1 {
		box, err := src.MediaBox(numPages - 1)
		if err != nil {
			return fmt.Errorf("page %d: %w", numPages, err)
		}
		err = c.doc.AppendBlank(box)
		if err != nil {
			return err
		}
	}
	return nil
}

// NumPages returns the number of pages in the concatenated document so far,
// including blank pages.
func (c *Writer) NumPages() int {
	return c.doc.NumPages()
}

// Close completes the concatenated document.
// This fails if the document has no pages.
func (c *Writer) Close() error {
	return c.doc.Close()
}

// Documents concatenates the source documents and writes the result to w.
// The PDF version of the output is the highest version of all sources.
func Documents(w io.Writer, sources ...pdf.Getter) error {
	names := make([]string, len(sources))
	for i := range sources {
		names[i] = fmt.Sprintf("document %d", i+1)
	}
	return concat(w, sources, names)
}

// Files concatenates the PDF files with the given names and writes the
// result to w.
//
// All files are opened before the first page is copied, and are closed
// before Files returns.  Errors mention the name of the file which caused
// them.  If an error is returned, the data written to w is not a valid
// PDF file.
func Files(w io.Writer, names ...string) error {
	var readers []*pdf.Reader
	defer func() {
		for i, r := range readers {
			err := r.Close()
			if err != nil {
				log.Printf("warning: %s: %v", names[i], err)
			}
		}
	}()

	sources := make([]pdf.Getter, 0, len(names))
	for _, name := range names {
		r, err := pdf.Open(name, nil)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		readers = append(readers, r)
		sources = append(sources, r)
	}

	return concat(w, sources, names)
}

func concat(w io.Writer, sources []pdf.Getter, names []string) error {
	if len(sources) == 0 {
		return errNoSources
	}

	v := pdf.V1_0
	for _, r := range sources {
		if ver := pdf.GetVersion(r); ver > v {
			v = ver
		}
	}

	c, err := NewWriter(w, v)
	if err != nil {
		return err
	}
	for i, r := range sources {
		err = c.Append(r)
		if err != nil {
			return fmt.Errorf("%s: %w", names[i], err)
		}
	}
	return c.Close()
}

var errNoSources = errors.New("no source documents")
