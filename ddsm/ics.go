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

package ddsm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// defaultICSEncoding is the character encoding assumed for .ics files whose
// encoding is not named explicitly. The DDSM archive predates UTF-8 adoption
// and redistributed copies are most commonly Windows-1252.
var defaultICSEncoding encoding.Encoding = charmap.Windows1252

// ImageInfo describes one scanned film of a DDSM case as recorded in the
// SEQUENCE section of the case's .ics file.
type ImageInfo struct {
	// Rows is the LINES field, Cols the PIXELS_PER_LINE field.
	Rows, Cols int
	// BitsPerPixel is the bit depth recorded for the film, which matches the
	// digitizer's native depth.
	BitsPerPixel int
	// Resolution is the scan resolution in microns.
	Resolution float64
	// HasOverlay reports whether a ground-truth overlay file exists for the
	// film (OVERLAY as opposed to NON_OVERLAY).
	HasOverlay bool
}

// CaseMetadata holds the fields of a DDSM case .ics file that are relevant to
// converting the case's raw pixel streams.
type CaseMetadata struct {
	Version   string
	Filename  string
	Digitizer Digitizer
	// Images is keyed by view name, e.g. "LEFT_CC" or "RIGHT_MLO".
	Images map[string]ImageInfo
}

// icsConfig collects the settings of a single ParseICS call.
type icsConfig struct {
	encodingLabel string
}

// ICSOption configures the behavior of the ParseICS function.
type ICSOption struct {
	apply func(*icsConfig)
}

// WithICSEncoding returns an ICSOption that decodes the .ics byte stream
// through the character encoding known by the given label (e.g. "latin1",
// "utf-8"). ParseICS fails if no encoding is registered for the label.
func WithICSEncoding(label string) ICSOption {
	return ICSOption{func(cfg *icsConfig) {
		cfg.encodingLabel = label
	}}
}

func lookupICSEncoding(label string) (encoding.Encoding, error) {
	coding, _ := charset.Lookup(label)
	if coding == nil {
		return nil, fmt.Errorf("missing encoding for label %q", label)
	}
	return coding, nil
}

// ParseICS parses a DDSM case .ics file represented as an io.Reader. The
// digitizer is resolved from the DIGITIZER line; the HOWTEK spelling names
// two distinct calibrations, so it is disambiguated by the case filename
// prefix the DDSM uses ("A" for MGH cases, "D" for ISMD cases).
func ParseICS(r io.Reader, opts ...ICSOption) (*CaseMetadata, error) {
	var cfg icsConfig
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	coding := defaultICSEncoding
	if cfg.encodingLabel != "" {
		var err error
		if coding, err = lookupICSEncoding(cfg.encodingLabel); err != nil {
			return nil, err
		}
	}

	meta := &CaseMetadata{Images: map[string]ImageInfo{}}
	var digitizerLine string
	inSequence := false

	scanner := bufio.NewScanner(coding.NewDecoder().Reader(r))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if inSequence {
			info, err := parseImageLine(fields)
			if err != nil {
				return nil, fmt.Errorf("parsing %v image line: %v", fields[0], err)
			}
			meta.Images[fields[0]] = info
			continue
		}

		switch fields[0] {
		case "ics_version":
			if len(fields) > 1 {
				meta.Version = fields[1]
			}
		case "filename":
			if len(fields) > 1 {
				meta.Filename = fields[1]
			}
		case "DIGITIZER":
			digitizerLine = strings.Join(fields[1:], " ")
		case "SEQUENCE":
			inSequence = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ics file: %v", err)
	}

	digitizer, err := resolveICSDigitizer(digitizerLine, meta.Filename)
	if err != nil {
		return nil, err
	}
	meta.Digitizer = digitizer

	return meta, nil
}

// parseImageLine parses a SEQUENCE section line of the form
//
//	LEFT_CC LINES 4696 PIXELS_PER_LINE 3024 BITS_PER_PIXEL 12 RESOLUTION 50 OVERLAY
func parseImageLine(fields []string) (ImageInfo, error) {
	var info ImageInfo
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "OVERLAY":
			info.HasOverlay = true
		case "NON_OVERLAY":
			info.HasOverlay = false
		case "LINES", "PIXELS_PER_LINE", "BITS_PER_PIXEL", "RESOLUTION":
			if i+1 >= len(fields) {
				return info, fmt.Errorf("missing value for %v", fields[i])
			}
			key, value := fields[i], fields[i+1]
			i++
			if key == "RESOLUTION" {
				res, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return info, fmt.Errorf("bad RESOLUTION %q: %v", value, err)
				}
				info.Resolution = res
				continue
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				return info, fmt.Errorf("bad %v %q: %v", key, value, err)
			}
			switch key {
			case "LINES":
				info.Rows = n
			case "PIXELS_PER_LINE":
				info.Cols = n
			case "BITS_PER_PIXEL":
				info.BitsPerPixel = n
			}
		}
	}
	if info.Rows < 1 || info.Cols < 1 {
		return info, fmt.Errorf("image dimensions must be positive: %d x %d", info.Rows, info.Cols)
	}
	return info, nil
}

func resolveICSDigitizer(line, filename string) (Digitizer, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("ics file has no DIGITIZER line")
	}

	switch fields[0] {
	case "DBA":
		return DBA, nil
	case "LUMISYS":
		return Lumisys, nil
	case "HOWTEK":
		switch {
		case strings.HasPrefix(filename, "A"):
			return HowtekMGH, nil
		case strings.HasPrefix(filename, "D"):
			return HowtekISMD, nil
		}
		return 0, fmt.Errorf("cannot resolve HOWTEK institution from case filename %q", filename)
	}
	return 0, &UnknownDigitizerError{line}
}
