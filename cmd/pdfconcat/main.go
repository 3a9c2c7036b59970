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

// Pdfconcat concatenates PDF files and adds page numbers.
//
// Usage:
//
//	pdfconcat [flags] inputFile... outputFile
//
// The input files are concatenated in the given order.  A blank page is
// inserted after every input file with an odd number of pages, so that
// every input file starts on an odd page.  All pages except the first get
// a page number label "- n -" near the bottom edge.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"seehuhn.de/go/pdfconcat"
	"seehuhn.de/go/pdfconcat/internal/buildinfo"
	"seehuhn.de/go/pdfconcat/internal/config"
	"seehuhn.de/go/pdfconcat/pagenum"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pdfconcat: ")

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(config.New())
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string
	var showConfig bool

	cmd := &cobra.Command{
		Use:   "pdfconcat [flags] inputFile... outputFile",
		Short: "Concatenate PDF files and add page numbers",
		Long: `pdfconcat concatenates the input files into the output file.

Every input file starts on an odd page of the result; a blank page is
inserted after input files with an odd number of pages.  All pages except
the first one get a page number "- n -" near the bottom edge.`,
		Version: buildinfo.Version(),

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.Read(v, cfgFile)
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			if showConfig {
				data, err := cfg.YAML()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			parsed, err := pdfconcat.ParseArgs(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), parsed)

			numbering, err := cfg.PageNumbers()
			if err != nil {
				return err
			}
			opt := &pdfconcat.Options{
				TempDir:   cfg.TempDir,
				Numbering: numbering,
			}
			return pdfconcat.Run(parsed, opt)
		},
	}

	def := pagenum.DefaultOptions
	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default: ./pdfconcat.yaml or ~/.config/pdfconcat/pdfconcat.yaml)")
	flags.BoolVar(&showConfig, "show-config", false,
		"print the effective configuration and exit")
	flags.Int("first-page", def.FirstPage, "first page which gets a page number")
	flags.Float64("font-size", def.FontSize, "font size of the page numbers")
	flags.String("placement", def.Placement.String(), "label placement (fixed or relative)")
	flags.String("temp-dir", ".", "directory for the intermediate file")

	bind := map[string]string{
		config.KeyFirstPage: "first-page",
		config.KeyFontSize:  "font-size",
		config.KeyPlacement: "placement",
		config.KeyTempDir:   "temp-dir",
	}
	for key, name := range bind {
		err := v.BindPFlag(key, flags.Lookup(name))
		if err != nil {
			panic(err)
		}
	}

	return cmd
}
