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
	"encoding/binary"
	"fmt"
	"io"
)

// sampleReader is a wrapper around io.Reader that reconstructs big-endian
// 16-bit raw samples from consecutive byte pairs and counts how many samples
// have been read.
type sampleReader struct {
	r       io.Reader
	samples int64
}

func newSampleReader(r io.Reader) *sampleReader {
	return &sampleReader{r, 0}
}

// Next returns the next raw sample from the input stream. Bytes are consumed
// strictly two at a time, first byte high order; io.EOF is returned at end of
// stream. A single trailing byte never completes a pair and is dropped
// without an error, as the stream is assumed to begin on an even boundary.
func (sr *sampleReader) Next() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(sr.r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, io.EOF
		}
		return 0, err
	}
	sr.samples++
	return binary.BigEndian.Uint16(buf[:]), nil
}

// PixelError indicates that calibrating a raw sample produced a grey level
// outside the 16-bit output range. It is fatal for the stream being decoded;
// there is no per-pixel recovery.
type PixelError struct {
	Digitizer Digitizer
	Raw       uint16
}

func (e *PixelError) Error() string {
	return fmt.Sprintf("pixel value error: %v digitizer, raw sample %d calibrated out of range",
		e.Digitizer, e.Raw)
}

// SampleIterator streams calibrated grey levels from a raw byte source. It is
// the low level counterpart to Convert: it performs no calibration
// self-check, emits no header and does not validate the total sample count.
type SampleIterator struct {
	sr        *sampleReader
	digitizer Digitizer
	maxOD     float64
	empty     bool
}

// NewSampleIterator creates a SampleIterator that reads raw big-endian 16-bit
// samples from r and calibrates them for the given digitizer. The
// implementation consumes input from the io.Reader as needed.
func NewSampleIterator(r io.Reader, digitizer Digitizer, opts ...ConvertOption) (*SampleIterator, error) {
	if !digitizer.valid() {
		return nil, &UnknownDigitizerError{digitizer.String()}
	}
	cfg := newConvertConfig(opts...)
	if cfg.maxDensity <= 0 {
		return nil, fmt.Errorf("maximum optical density must be positive: %v", cfg.maxDensity)
	}
	return &SampleIterator{newSampleReader(r), digitizer, cfg.maxDensity, false}, nil
}

// Next returns the next calibrated grey level. If there is no next sample,
// the error io.EOF is returned. A *PixelError is returned if calibration
// produces an out-of-range value, after which the iterator is exhausted.
func (it *SampleIterator) Next() (uint32, error) {
	if it.empty {
		return 0, io.EOF
	}

	raw, err := it.sr.Next()
	if err == io.EOF {
		it.empty = true
		return 0, io.EOF
	}
	if err != nil {
		return 0, fmt.Errorf("reading sample: %v", err)
	}

	grey, ok := greyLevel(it.digitizer, raw, it.maxOD)
	if !ok || grey > MaxGreyLevel {
		it.empty = true
		return 0, &PixelError{it.digitizer, raw}
	}
	return grey, nil
}

// Samples returns the number of raw samples decoded so far.
func (it *SampleIterator) Samples() int64 {
	return it.sr.samples
}

// Close discards all remaining samples in the iterator.
func (it *SampleIterator) Close() error {
	for _, err := it.Next(); err != io.EOF; _, err = it.Next() {
		if err != nil {
			return fmt.Errorf("unexpected error closing iterator: %v", err)
		}
	}
	return nil
}
