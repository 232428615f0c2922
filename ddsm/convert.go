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
	"fmt"
	"io"
)

// SizeError indicates that the number of samples decoded from the input
// stream does not equal the declared image dimensions. By the time it is
// detected the output already contains a header and partial pixel data, so
// callers must check the error returned by Convert rather than the existence
// of the output file.
type SizeError struct {
	Samples int64
	Rows    int
	Cols    int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("read %d pixels, which is not equal to %d x %d",
		e.Samples, e.Rows, e.Cols)
}

// Convert reads a raw big-endian 16-bit DDSM pixel stream from r, calibrates
// every sample for the given digitizer, and writes a PNM grayscale image of
// the declared dimensions to w.
//
// Before any byte of input is consumed, the calibration curves are
// exhaustively self-checked against the configured maximum density; a
// *CalibrationError from this phase signals a defect in the calibration math,
// not in the input. During decoding, an out-of-range calibrated pixel aborts
// the conversion with a *PixelError. After the input is exhausted, a decoded
// sample count different from rows x cols yields a *SizeError. On any error
// after the header was written, w holds a partially written image.
func Convert(r io.Reader, w io.Writer, rows, cols int, digitizer Digitizer, opts ...ConvertOption) error {
	if rows < 1 {
		return fmt.Errorf("number of rows must be positive: %d", rows)
	}
	if cols < 1 {
		return fmt.Errorf("number of cols must be positive: %d", cols)
	}
	if !digitizer.valid() {
		return &UnknownDigitizerError{digitizer.String()}
	}

	cfg := newConvertConfig(opts...)
	if cfg.maxDensity <= 0 {
		return fmt.Errorf("maximum optical density must be positive: %v", cfg.maxDensity)
	}
	if err := checkCalibration(cfg.maxDensity); err != nil {
		return err
	}

	pw := newPNMWriter(w, cfg.plain)
	if err := pw.Header(digitizer, rows, cols, cfg.comment); err != nil {
		return fmt.Errorf("writing header: %v", err)
	}

	iter := &SampleIterator{newSampleReader(r), digitizer, cfg.maxDensity, false}
	for grey, err := iter.Next(); err != io.EOF; grey, err = iter.Next() {
		if err != nil {
			return err
		}
		if err := pw.Sample(grey); err != nil {
			return fmt.Errorf("writing pixel: %v", err)
		}
	}

	if iter.Samples() != int64(rows)*int64(cols) {
		return &SizeError{iter.Samples(), rows, cols}
	}
	return nil
}
