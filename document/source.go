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

package document

import (
	"fmt"
	"maps"
	"math"

	"seehuhn.de/go/pdf"
	pdfdoc "seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/page"
	"seehuhn.de/go/pdf/pagetree"
)

// Source gives access to the pages of an existing PDF document, for copying
// them into a [Writer].
//
// When a Source is created, references in the output file are allocated for
// all pages of the document.  This way, objects which point to pages of the
// same document (for example link annotations and destinations) end up
// pointing to the copied pages, instead of pulling the source page tree into
// the output.
type Source struct {
	// R is the document the pages are read from.
	R pdf.Getter

	// Copier translates objects from R into the output file.
	Copier *pdf.Copier

	doc   *Writer
	x     *pdf.Extractor
	pages []*sourcePage
}

type sourcePage struct {
	dict pdf.Dict      // inherited attributes resolved, without /Parent
	ref  pdf.Reference // reference of the copy in the output file
	geom *page.Page    // decoded boxes and rotation, nil until first use
}

// Load reads the page tree of r and prepares the pages for copying into doc.
func (doc *Writer) Load(r pdf.Getter) (*Source, error) {
	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}

	copier := pdf.NewCopier(doc.Out, r)
	pages := make([]*sourcePage, numPages)
	for i := range numPages {
		refIn, dictIn, err := pagetree.GetPage(r, i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}

		dict := maps.Clone(dictIn)
		delete(dict, "Parent")

		refOut := doc.Out.Alloc()
		if refIn != 0 {
			copier.Redirect(refIn, refOut)
		}
		pages[i] = &sourcePage{dict: dict, ref: refOut}
	}

	src := &Source{
		R:      r,
		Copier: copier,
		doc:    doc,
		x:      pdf.NewExtractor(r),
		pages:  pages,
	}
	return src, nil
}

// NumPages returns the number of pages in the source document.
func (s *Source) NumPages() int {
	return len(s.pages)
}

// Dict returns the page dictionary of page i (0-based) in the source
// document.  Inheritable attributes are included, and the /Parent entry is
// removed.  The returned dictionary must not be modified.
func (s *Source) Dict(i int) pdf.Dict {
	return s.pages[i].dict
}

// geometry decodes the page boundaries and the rotation of page i.
// Only these entries are passed to the decoder, so that unusual content
// or annotations cannot make an otherwise copyable page fail here.
func (s *Source) geometry(i int) (*page.Page, error) {
	p := s.pages[i]
	if p.geom != nil {
		return p.geom, nil
	}

	dict := pdf.Dict{"Type": pdf.Name("Page")}
	for _, key := range []pdf.Name{"MediaBox", "CropBox", "Rotate"} {
		if obj, ok := p.dict[key]; ok {
			dict[key] = obj
		}
	}
	geom, err := page.Decode(s.x, dict)
	if err != nil {
		return nil, err
	}
	p.geom = geom
	return geom, nil
}

// MediaBox returns the media box of page i (0-based).
// If the page does not specify a media box, [pdfdoc.Letter] is returned.
func (s *Source) MediaBox(i int) (*pdf.Rectangle, error) {
	geom, err := s.geometry(i)
	if err != nil {
		return nil, err
	}
	box := geom.MediaBox
	if box == nil || box.IsZero() {
		box = pdfdoc.Letter
	}
	res := *box
	return &res, nil
}

// VisibleBox returns the region of page i (0-based) which is shown by a
// viewer: the crop box, clipped to the media box.  If the page has no
// crop box, or if the crop box does not overlap the media box, the media
// box is returned.
func (s *Source) VisibleBox(i int) (*pdf.Rectangle, error) {
	mediaBox, err := s.MediaBox(i)
	if err != nil {
		return nil, err
	}
	geom, err := s.geometry(i)
	if err != nil {
		return nil, err
	}
	cropBox := geom.CropBox
	if cropBox == nil {
		return mediaBox, nil
	}

	res := &pdf.Rectangle{
		LLx: math.Max(math.Min(cropBox.LLx, cropBox.URx), mediaBox.LLx),
		LLy: math.Max(math.Min(cropBox.LLy, cropBox.URy), mediaBox.LLy),
		URx: math.Min(math.Max(cropBox.LLx, cropBox.URx), mediaBox.URx),
		URy: math.Min(math.Max(cropBox.LLy, cropBox.URy), mediaBox.URy),
	}
	if res.LLx >= res.URx || res.LLy >= res.URy {
		return mediaBox, nil
	}
	return res, nil
}

// Rotate returns the rotation of page i (0-based) in degrees.
// The result is one of 0, 90, 180 or 270.  Invalid values in the
// file are treated as 0.
func (s *Source) Rotate(i int) (int, error) {
	geom, err := s.geometry(i)
	if err != nil {
		return 0, err
	}
	deg := geom.Rotate.Degrees() % 360
	if deg < 0 {
		deg += 360
	}
	if deg%90 != 0 {
		return 0, nil
	}
	return deg, nil
}

// CopyPage copies page i (0-based) to the end of the output document.
func (s *Source) CopyPage(i int) error {
	dict, err := s.Copier.CopyDict(s.pages[i].dict)
	if err != nil {
		return err
	}
	return s.Append(i, dict)
}

// Append adds a page dictionary to the end of the output document, as the
// copy of page i (0-based).  This is used for pages which are modified while
// they are copied.  References to page i from other objects in the source
// document are translated to refer to the new page.
func (s *Source) Append(i int, pageDict pdf.Dict) error {
	return s.doc.AppendPage(s.pages[i].ref, pageDict)
}
