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

package pdfconcat

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Args are the validated command line arguments.
type Args struct {
	// Inputs lists the files to concatenate, in order.
	Inputs []string

	// Output is the name of the file the result is written to.
	Output string
}

func (a *Args) String() string {
	return fmt.Sprintf("input files: %s, output file: %s",
		strings.Join(a.Inputs, ", "), a.Output)
}

// UsageError indicates invalid command line arguments.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// ParseArgs interprets the positional command line arguments.
//
// The last argument is the output file, all other arguments are input
// files.  At least one input file is required, and all input files must be
// existing regular files.  Otherwise, a [*UsageError] is returned.
func ParseArgs(args []string) (*Args, error) {
	if len(args) < 2 {
		return nil, &UsageError{Msg: "Required arguments: inputFile+ outputFile"}
	}

	inputs := args[:len(args)-1]
	var missing []string
	for _, name := range inputs {
		fi, err := os.Stat(name)
		if err != nil || !fi.Mode().IsRegular() {
			missing = append(missing, filepath.Base(name))
		}
	}
	if len(missing) > 0 {
		return nil, &UsageError{
			Msg: "These files must exist: " + strings.Join(missing, ", "),
		}
	}

	res := &Args{
		Inputs: slices.Clone(inputs),
		Output: args[len(args)-1],
	}
	return res, nil
}
