// seehuhn.de/go/pdfmodel - structured page models from PDF content events
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

// Command pdf2edn converts a recorded event trace of a PDF document into
// an EDN description of its pages.
//
// Usage:
//
//	pdf2edn [options] -o output.edn trace.jsonl
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"seehuhn.de/go/pdfmodel"
	"seehuhn.de/go/pdfmodel/config"
	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/edn"
	"seehuhn.de/go/pdfmodel/internal/trace"
	"seehuhn.de/go/pdfmodel/model"
	"seehuhn.de/go/pdfmodel/outline"
)

// Exit codes.
const (
	exitOK       = 0
	exitErrors   = 1
	exitCritical = 2
)

func main() {
	output := flag.String("o", "", "output file (\"-\" for standard output)")
	cropBox := flag.Bool("a", false, "use the page crop box instead of the media box")
	debug := flag.Bool("D", false, "include graphics state details in the output")
	force := flag.Bool("f", false, "overwrite the output file and write output despite critical errors")
	invisible := flag.Bool("i", false, "include invisible text (for OCR'd documents)")
	linksOnly := flag.Bool("l", false, "extract only link data")
	fontMapFile := flag.String("m", "", "JSON font map file")
	omitOutline := flag.Bool("O", false, "don't extract the document outline")
	pageNum := flag.Int("p", config.AllPages, "extract only this page (0-based)")
	verbose := flag.Bool("v", false, "print diagnostics to standard error")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("pdf2edn: ")

	if flag.NArg() != 1 || *output == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] -o output.edn trace.jsonl\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(exitCritical)
	}

	opt := config.DefaultOptions()
	opt.UseCropBox = *cropBox
	opt.IncludeDebugInfo = *debug
	opt.ForceOutput = *force
	opt.IncludeInvisibleText = *invisible
	opt.LinksOnly = *linksOnly
	opt.OmitOutline = *omitOutline
	opt.PageNumber = *pageNum

	ctx := config.NewContext(opt, nil)
	if *fontMapFile != "" {
		fonts, err := readFontMap(*fontMapFile, ctx.Diag)
		if err != nil {
			log.Print(err)
			os.Exit(exitCritical)
		}
		ctx.Fonts = fonts
	}

	doc, err := convert(ctx, flag.Arg(0))
	var depthErr *outline.DepthError
	if err != nil && !errors.As(err, &depthErr) {
		log.Print(err)
		os.Exit(exitCritical)
	}

	if *verbose {
		for _, d := range doc.Diagnostics {
			fmt.Fprintln(os.Stderr, d)
		}
	}

	if doc.Status == diag.StatusCritical && !opt.ForceOutput {
		log.Print("critical errors, no output written (use -f to override)")
		os.Exit(exitCritical)
	}

	err = writeOutput(*output, doc, opt)
	if err != nil {
		log.Print(err)
		os.Exit(exitCritical)
	}

	os.Exit(exitCode(doc.Status))
}

func readFontMap(fname string, d *diag.Tracker) (config.StaticFontMap, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return config.ReadFontMap(fd, d)
}

func convert(ctx *config.Context, fname string) (*model.Document, error) {
	var r io.Reader
	if fname == "-" {
		r = os.Stdin
	} else {
		fd, err := os.Open(fname)
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		r = fd
	}
	return pdfmodel.Convert(ctx, trace.NewDecoder(r).All())
}

func writeOutput(fname string, doc *model.Document, opt config.Options) error {
	var out *os.File
	if fname == "-" {
		out = os.Stdout
	} else {
		flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
		if opt.ForceOutput {
			flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		}
		fd, err := os.OpenFile(fname, flags, 0o644)
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s exists (use -f to overwrite)", fname)
		} else if err != nil {
			return err
		}
		out = fd
	}

	w := edn.NewWriter(out, &edn.Options{
		Indent:           opt.Indent || term.IsTerminal(int(out.Fd())),
		IncludeDebugInfo: opt.IncludeDebugInfo,
	})
	err := w.Write(doc)
	if out != os.Stdout {
		err = errors.Join(err, out.Close())
	}
	return err
}

func exitCode(s diag.Status) int {
	switch s {
	case diag.StatusOK, diag.StatusWarnings:
		return exitOK
	case diag.StatusErrors:
		return exitErrors
	default:
		return exitCritical
	}
}
