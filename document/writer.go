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

// Package document implements the page plumbing shared by the
// concatenation and the page numbering passes.
//
// A [Writer] collects ready-made page dictionaries into the page tree of a
// new PDF file.  A [Source] gives access to the pages of an existing file
// and copies them, together with everything they reference, into a Writer.
package document

import (
	"errors"
	"io"

	"seehuhn.de/go/pdf"
	pdfdoc "seehuhn.de/go/pdf/document"
)

// Writer writes a multi-page PDF document.
//
// The pages are ready-made page dictionaries, which are added to the page
// tree of an underlying [pdfdoc.MultiPage].
type Writer struct {
	// Out is the PDF file the pages are written to.
	// This can be used to write additional objects, for example
	// content streams referenced from page dictionaries.
	Out *pdf.Writer

	// RM embeds fonts and other resources shared between pages.
	// Objects embedded here are finalised when the document is closed.
	RM *pdf.ResourceManager

	multi    *pdfdoc.MultiPage
	numPages int
	isClosed bool
}

// Write starts a new PDF document, which is written to w.
// The caller is responsible for closing w after the document
// has been closed.
func Write(w io.Writer, v pdf.Version) (*Writer, error) {
	multi, err := pdfdoc.WriteMultiPage(w, nil, v, nil)
	if err != nil {
		return nil, err
	}
	doc := &Writer{
		Out:   multi.Out,
		RM:    multi.RM,
		multi: multi,
	}
	return doc, nil
}

// AppendPage adds a page to the end of the document.
//
// If ref is 0, a new reference is allocated for the page dictionary.
// The Writer takes ownership of pageDict; the /Parent entry is set
// when the page tree is written.
func (doc *Writer) AppendPage(ref pdf.Reference, pageDict pdf.Dict) error {
	if doc.isClosed {
		return errClosed
	}
	if ref == 0 {
		ref = doc.Out.Alloc()
	}
	pageDict["Type"] = pdf.Name("Page")
	err := doc.multi.Tree.AppendPageDict(ref, pageDict)
	if err != nil {
		return err
	}
	doc.numPages++
	return nil
}

// AppendBlank adds an empty page with the given media box to the end of
// the document.  If mediaBox is nil, [pdfdoc.Letter] is used.
func (doc *Writer) AppendBlank(mediaBox *pdf.Rectangle) error {
	if mediaBox == nil {
		mediaBox = pdfdoc.Letter
	}
	box := *mediaBox
	return doc.AppendPage(0, pdf.Dict{
		"MediaBox":  &box,
		"Resources": pdf.Dict{},
	})
}

// NumPages returns the number of pages added so far.
func (doc *Writer) NumPages() int {
	return doc.numPages
}

// Close writes the page tree, the embedded resources and the file trailer.
// No more pages can be added after Close has been called.
func (doc *Writer) Close() error {
	if doc.isClosed {
		return errClosed
	}
	doc.isClosed = true
	return doc.multi.Close()
}

var errClosed = errors.New("document already closed")
