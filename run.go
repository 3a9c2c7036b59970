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

// Package pdfconcat concatenates PDF files and adds page numbers.
//
// The work is done in two passes.  First, the input files are
// concatenated into a temporary file, see [concat.Files].  Then the
// temporary file is read back and page numbers are added to all pages
// except the first, see [pagenum.Number].
package pdfconcat

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pdfconcat/concat"
	"seehuhn.de/go/pdfconcat/pagenum"
)

// TempPattern is the name pattern of the intermediate file,
// as used by [os.CreateTemp].
const TempPattern = "temp___*.pdf"

// Options control the behaviour of [Run].
type Options struct {
	// TempDir is the directory for the intermediate file.
	// If this is empty, the current directory is used.
	TempDir string

	// Numbering controls the page number labels.
	// If this is nil, [pagenum.DefaultOptions] is used.
	Numbering *pagenum.Options
}

// Run concatenates the input files, adds page numbers, and writes the
// result to the output file.
//
// The intermediate file is removed before Run returns, whether or not an
// error occurred.  If an error occurs after the output file has been
// created, the output file is removed.
func Run(args *Args, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	err := opt.Numbering.Validate()
	if err != nil {
		return err
	}

	dir := opt.TempDir
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, TempPattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		err := os.Remove(tmpName)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("warning: %v", err)
		}
	}()

	err = concat.Files(tmp, args.Inputs...)
	if err != nil {
		tmp.Close()
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}

	return addPageNumbers(args.Output, tmpName, opt.Numbering)
}

func addPageNumbers(outName, inName string, opt *pagenum.Options) (err error) {
	r, err := pdf.Open(inName, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", inName, err)
	}
	defer func() {
		err := r.Close()
		if err != nil {
			log.Printf("warning: %s: %v", inName, err)
		}
	}()

	out, err := os.Create(outName)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(outName)
		}
	}()

	err = pagenum.Number(out, r, opt)
	if err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", outName, err)
	}
	return out.Close()
}
