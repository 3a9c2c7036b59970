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

package pagenum

import (
	"errors"
	"fmt"
	"strings"

	"seehuhn.de/go/pdf"
)

// Placement selects how the label rectangle is positioned on a page.
type Placement int

const (
	// Fixed places the label into a rectangle with fixed coordinates,
	// measured from the lower left corner of the visible page area.
	Fixed Placement = iota

	// Relative centers the label rectangle horizontally on the visible
	// page area.  The vertical position is measured from its bottom edge.
	Relative
)

func (p Placement) String() string {
	switch p {
	case Fixed:
		return "fixed"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// ParsePlacement converts a placement name, as returned by
// [Placement.String], back to a Placement.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "":
		return Fixed, nil
	case "relative":
		return Relative, nil
	}
	return 0, fmt.Errorf("invalid placement %q", s)
}

// Span is an interval of coordinates, in PDF units.
type Span struct {
	Min, Max float64
}

// Width returns the length of the interval.
func (s Span) Width() float64 {
	return s.Max - s.Min
}

// Options controls the appearance of the page numbers.
//
// Fields with the zero value are replaced by the corresponding
// value from [DefaultOptions].
type Options struct {
	// FirstPage is the number of the first page which gets a label.
	// Pages are numbered starting from 1.
	FirstPage int

	// FontSize is the font size of the label, in PDF units.
	FontSize float64

	Placement Placement

	// Column is the horizontal extent of the label rectangle.
	// For [Relative] placement, only the width of Column is used.
	Column Span

	// Band is the vertical extent of the label rectangle.
	Band Span
}

// DefaultOptions are the options used when nil is passed to [Number].
var DefaultOptions = Options{
	FirstPage: 2,
	FontSize:  12,
	Placement: Fixed,
	Column:    Span{Min: 250, Max: 450},
	Band:      Span{Min: 10, Max: 30},
}

// withDefaults returns a copy of opt, with unset fields filled in.
func (opt *Options) withDefaults() *Options {
	res := DefaultOptions
	if opt == nil {
		return &res
	}
	if opt.FirstPage != 0 {
		res.FirstPage = opt.FirstPage
	}
	if opt.FontSize != 0 {
		res.FontSize = opt.FontSize
	}
	res.Placement = opt.Placement
	if opt.Column != (Span{}) {
		res.Column = opt.Column
	}
	if opt.Band != (Span{}) {
		res.Band = opt.Band
	}
	return &res
}

// Validate checks that the options are usable.
func (opt *Options) Validate() error {
	o := opt.withDefaults()

	var errs []error
	if o.FirstPage < 1 {
		errs = append(errs, fmt.Errorf("invalid first page %d", o.FirstPage))
	}
	if o.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("invalid font size %g", o.FontSize))
	}
	if o.Placement != Fixed && o.Placement != Relative {
		errs = append(errs, fmt.Errorf("invalid placement %s", o.Placement))
	}
	if o.Column.Width() <= 0 {
		errs = append(errs, fmt.Errorf("empty column [%g, %g]", o.Column.Min, o.Column.Max))
	}
	if o.Band.Width() <= 0 {
		errs = append(errs, fmt.Errorf("empty band [%g, %g]", o.Band.Min, o.Band.Max))
	}
	return errors.Join(errs...)
}

// Box returns the rectangle the label is centered in, for a page with the
// given visible area and rotation.  The visible area is the crop box of the
// page, clipped to the media box.
//
// The result uses the coordinate system of the page as it is displayed:
// the origin is the lower left corner of the rotated visible area, the
// x-axis points right and the y-axis points up.
func (opt *Options) Box(visible *pdf.Rectangle, rotate int) pdf.Rectangle {
	o := opt.withDefaults()

	if o.Placement != Relative {
		return pdf.Rectangle{
			LLx: o.Column.Min,
			LLy: o.Band.Min,
			URx: o.Column.Max,
			URy: o.Band.Max,
		}
	}

	width := visible.URx - visible.LLx
	if rotate == 90 || rotate == 270 {
		width = visible.URy - visible.LLy
	}
	llx := (width - o.Column.Width()) / 2
	return pdf.Rectangle{
		LLx: llx,
		LLy: o.Band.Min,
		URx: llx + o.Column.Width(),
		URy: o.Band.Max,
	}
}
