// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command ddsmraw2pnm converts a DDSM mammogram image from raw byte pairs (as
// produced by decompressing an LJPEG.1 file) to the plain PNM format, with
// grey levels calibrated and normalised so they are directly comparable
// across the four DDSM digitizers.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/multinormal/ddsm/ddsm"
)

// outputSuffix is appended to the input filename to name the PNM file.
const outputSuffix = "-ddsmraw2pnm.pnm"

// Program exit codes. Zero is success; each failure category has a distinct
// non-zero code. The shell sees the low 8 bits of these (255, 254, ...) but
// the mapping stays one to one.
const (
	exitSuccess         = 0
	exitSyntax          = -1
	exitRowsNotPositive = -2
	exitColsNotPositive = -3
	exitFile            = -4
	exitPNM             = -5
	exitProgram         = -6
)

const helpText = `ddsmraw2pnm
===========

Convert a DDSM mammogram image from raw (LJPEG.1) format to PNM format.

Usage: ddsmraw2pnm <some-ddsm-raw-file> <num-rows> <num-cols> <digitizer>

* <some-ddsm-raw-file> is an "LJPEG.1" file produced by the DDSM's "jpeg"
  program, i.e. raw big-endian byte pairs.

* <num-rows> and <num-cols> specify the dimensions of the image; these can
  be obtained from the ".ics" file for the case. Pass "-" for both to have
  ddsmraw2pnm read them from the .ics file next to the input.

* <digitizer> selects the calibration that maps raw grey level values to
  optical densities. It is one of "dba", "howtek-mgh", "howtek-ismd" and
  "lumisys".

On success a PNM file named "<some-ddsm-raw-file>-ddsmraw2pnm.pnm" is
produced (overwriting any existing file), its name is written to standard
output and zero is returned. On failure a message is printed to standard
error and a non-zero value is returned. The output PNM file may be partially
written even on failure, so callers do need to check the exit code.

The grey levels in the PNM file are normalised such that an optical density
of 0 maps to 65535 after inversion and the maximum expected optical density
maps to 0; a quadratic companding function then gives more binary precision
to the medium and large grey levels. PNM files are human readable and use no
compression, so convert the result to a lossless compressed format (16-bit
PNG is ideal) and delete the intermediate file.`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 4 {
		fmt.Fprintln(stdout, helpText)
		return exitSyntax
	}
	input := args[0]

	// Validate the calibration math itself before doing anything else; a
	// failure here is a defect in this program, not in the user's input.
	if err := ddsm.CheckCalibration(); err != nil {
		fmt.Fprintf(stderr, "Sorry, there is a problem with the program's source code! %v\n", err)
		return exitProgram
	}

	digitizer, err := ddsm.DigitizerByName(args[3])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitSyntax
	}

	var rows, cols int
	if args[1] == "-" && args[2] == "-" {
		rows, cols, err = dimensionsFromICS(input, digitizer)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitSyntax
		}
	} else {
		rows = atoi(args[1])
		cols = atoi(args[2])
	}
	if rows < 1 {
		fmt.Fprintln(stderr, "The number of rows must be positive.")
		return exitRowsNotPositive
	}
	if cols < 1 {
		fmt.Fprintln(stderr, "The number of cols must be positive.")
		return exitColsNotPositive
	}

	output := input + outputSuffix

	in, inErr := os.Open(input)
	out, outErr := os.Create(output)
	if inErr != nil || outErr != nil {
		if inErr == nil {
			in.Close()
		}
		if outErr == nil {
			out.Close()
		}
		fmt.Fprintln(stderr, "A file error was detected at runtime.")
		return exitFile
	}

	convErr := ddsm.Convert(in, out, rows, cols, digitizer)
	in.Close()
	closeErr := out.Close()

	if convErr != nil {
		fmt.Fprintf(stderr, "Could not create the PNM file: %v\n", convErr)
		var calErr *ddsm.CalibrationError
		if errors.As(convErr, &calErr) {
			return exitProgram
		}
		return exitPNM
	}
	if closeErr != nil {
		fmt.Fprintf(stderr, "A file error was detected at runtime: %v\n", closeErr)
		return exitFile
	}

	fmt.Fprintln(stdout, output)
	return exitSuccess
}

// dimensionsFromICS locates the case .ics file in the input's directory and
// returns the dimensions recorded for the input's view. The input filename is
// expected to carry the view as its second dot-separated component, e.g.
// "A_0069_1.LEFT_CC.LJPEG.1".
func dimensionsFromICS(input string, digitizer ddsm.Digitizer) (rows, cols int, err error) {
	parts := strings.Split(filepath.Base(input), ".")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("cannot derive view name from input filename %q", input)
	}
	view := parts[1]

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(input), "*.ics"))
	if err != nil {
		return 0, 0, err
	}
	if len(matches) != 1 {
		return 0, 0, fmt.Errorf("expected exactly one .ics file next to %q, found %d", input, len(matches))
	}

	f, err := os.Open(matches[0])
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	meta, err := ddsm.ParseICS(f)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing %v: %v", matches[0], err)
	}
	if meta.Digitizer != digitizer {
		return 0, 0, fmt.Errorf("ics file names the %v digitizer, not %v", meta.Digitizer, digitizer)
	}
	info, ok := meta.Images[view]
	if !ok {
		return 0, 0, fmt.Errorf("ics file has no %v image", view)
	}
	return info.Rows, info.Cols, nil
}

// atoi mimics the C atoi used by the original tool: skip leading whitespace,
// parse an optional sign and the leading run of digits, and ignore anything
// after them. A string with no leading digits parses as zero, which the
// dimension checks then reject.
func atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	sign := 1
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if s[i] == '-' {
			sign = -1
		}
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return sign * n
}
