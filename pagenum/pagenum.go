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

// Package pagenum adds page numbers to the pages of a PDF document.
//
// The label "- n -" is drawn near the bottom of every page, starting from
// the second page.  The original page content is left unchanged: the
// existing content streams are enclosed in a q/Q pair, and the label is
// drawn by an additional content stream.
package pagenum

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/content/builder"
	"seehuhn.de/go/pdf/page"

	"seehuhn.de/go/pdfconcat/document"
)

// Label returns the text drawn on page n.
func Label(n int) string {
	return "- " + strconv.Itoa(n) + " -"
}

// Number copies all pages of r to w, and adds page numbers to the pages
// starting at opt.FirstPage.  If opt is nil, [DefaultOptions] is used.
//
// Page numbers are the 1-based positions of the pages in r.
// The document information dictionary of r is copied to the output.
func Number(w io.Writer, r pdf.Getter, opt *Options) error {
	err := opt.Validate()
	if err != nil {
		return err
	}

	doc, err := document.Write(w, pdf.GetVersion(r))
	if err != nil {
		return err
	}
	if meta := r.GetMeta(); meta != nil {
		doc.Out.GetMeta().Info = meta.Info
	}

	src, err := doc.Load(r)
	if err != nil {
		return err
	}

	F := standard.Courier.New()
	n := &numberer{
		doc:  doc,
		src:  src,
		opt:  opt.withDefaults(),
		font: F,
		geom: F.GetGeometry(),
		push: &page.Content{
			Operators: content.Stream{{Name: content.OpPushGraphicsState}},
		},
		pop: &page.Content{
			Operators: content.Stream{{Name: content.OpPopGraphicsState}},
		},
	}
	for i := range src.NumPages() {
		pageNo := i + 1
		if pageNo < n.opt.FirstPage {
			err = src.CopyPage(i)
		} else {
			err = n.numberPage(i, pageNo)
		}
		if err != nil {
			return fmt.Errorf("page %d: %w", pageNo, err)
		}
	}

	return doc.Close()
}

type numberer struct {
	doc *document.Writer
	src *document.Source
	opt *Options

	font font.Layouter
	geom *font.Geometry

	// push and pop enclose the original content of a page.
	// They are embedded once and shared between all pages.
	push, pop *page.Content
}

func (n *numberer) numberPage(i, pageNo int) error {
	dictIn := n.src.Dict(i)

	box, err := n.src.VisibleBox(i)
	if err != nil {
		return err
	}
	rotate, err := n.src.Rotate(i)
	if err != nil {
		return err
	}

	other := make(pdf.Dict, len(dictIn))
	for key, val := range dictIn {
		if key == "Resources" || key == "Contents" {
			continue
		}
		other[key] = val
	}
	dict, err := n.src.Copier.CopyDict(other)
	if err != nil {
		return err
	}

	res, fontName, err := n.resources(dictIn["Resources"])
	if err != nil {
		return err
	}
	dict["Resources"] = res

	contents, err := n.contents(dictIn["Contents"])
	if err != nil {
		return err
	}

	label, err := n.label(fontName, Label(pageNo), box, rotate)
	if err != nil {
		return err
	}
	labelRef, err := n.doc.RM.Embed(label)
	if err != nil {
		return err
	}

	if len(contents) == 0 {
		dict["Contents"] = labelRef
	} else {
		pushRef, err := n.doc.RM.Embed(n.push)
		if err != nil {
			return err
		}
		popRef, err := n.doc.RM.Embed(n.pop)
		if err != nil {
			return err
		}
		all := make(pdf.Array, 0, len(contents)+3)
		all = append(all, pushRef)
		all = append(all, contents...)
		all = append(all, popRef, labelRef)
		dict["Contents"] = all
	}

	return n.src.Append(i, dict)
}

// resources copies the resource dictionary of a page, and adds the label
// font under a name which is not used by the page.
func (n *numberer) resources(obj pdf.Object) (pdf.Dict, pdf.Name, error) {
	r := n.src.R
	copier := n.src.Copier

	resIn, err := pdf.GetDict(r, obj)
	if err != nil {
		return nil, "", err
	}
	other := make(pdf.Dict, len(resIn))
	for key, val := range resIn {
		if key != "Font" {
			other[key] = val
		}
	}
	res, err := copier.CopyDict(other)
	if err != nil {
		return nil, "", err
	}
	if res == nil {
		res = pdf.Dict{}
	}

	fontsIn, err := pdf.GetDict(r, resIn["Font"])
	if err != nil {
		return nil, "", err
	}
	fonts, err := copier.CopyDict(fontsIn)
	if err != nil {
		return nil, "", err
	}
	if fonts == nil {
		fonts = pdf.Dict{}
	}

	var name pdf.Name
	for k := 1; ; k++ {
		name = pdf.Name("PN" + strconv.Itoa(k))
		if _, used := fonts[name]; !used {
			break
		}
	}
	fontRef, err := n.doc.RM.Embed(n.font)
	if err != nil {
		return nil, "", err
	}
	fonts[name] = fontRef
	res["Font"] = fonts

	return res, name, nil
}

// contents copies the content streams of a page.
func (n *numberer) contents(obj pdf.Object) (pdf.Array, error) {
	r := n.src.R
	copier := n.src.Copier

	resolved, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	var streams pdf.Array
	switch resolved := resolved.(type) {
	case nil:
		return nil, nil
	case pdf.Array:
		streams, err = copier.CopyArray(resolved)
		if err != nil {
			return nil, err
		}
	case *pdf.Stream:
		ref, ok := obj.(pdf.Reference)
		if !ok {
			return nil, &pdf.MalformedFileError{
				Err: errors.New("direct content stream"),
			}
		}
		copied, err := copier.CopyReference(ref)
		if err != nil {
			return nil, err
		}
		streams = pdf.Array{copied}
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("invalid /Contents %T", resolved),
		}
	}

	res := streams[:0]
	for _, s := range streams {
		if s != nil {
			res = append(res, s)
		}
	}
	return res, nil
}

// label builds the content stream which draws the label.  The stream refers
// to the label font as fontName.
func (n *numberer) label(fontName pdf.Name, label string, visible *pdf.Rectangle, rotate int) (*page.Content, error) {
	b := builder.New(content.Page, nil)
	err := b.SetFontNameInternal(n.font, fontName)
	if err != nil {
		return nil, err
	}

	box := n.opt.Box(visible, rotate)
	size := n.opt.FontSize

	b.PushGraphicsState()
	if m := pageMatrix(visible, rotate); m != matrix.Identity {
		b.Transform(m)
	}
	b.TextBegin()
	b.TextSetFont(n.font, size)
	gg := b.TextLayout(nil, label)
	var width float64
	for _, g := range gg.Seq {
		width += g.Advance
	}
	x := (box.LLx+box.URx)/2 - width/2
	y := (box.LLy+box.URy)/2 - (n.geom.Ascent+n.geom.Descent)/2*size
	b.TextFirstLine(x, y)
	b.TextShowGlyphs(gg)
	b.TextEnd()
	b.PopGraphicsState()

	stream, err := b.Harvest()
	if err != nil {
		return nil, err
	}
	return &page.Content{Operators: stream}, nil
}

// pageMatrix returns the transformation from the coordinate system of the
// displayed page (origin at the lower left corner of box as shown) to the
// default user space of the page.
func pageMatrix(box *pdf.Rectangle, rotate int) matrix.Matrix {
	switch rotate {
	case 90:
		return matrix.Matrix{0, 1, -1, 0, box.URx, box.LLy}
	case 180:
		return matrix.Matrix{-1, 0, 0, -1, box.URx, box.URy}
	case 270:
		return matrix.Matrix{0, -1, 1, 0, box.LLx, box.URy}
	default:
		return matrix.Translate(box.LLx, box.LLy)
	}
}
