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

const (
	pnmPlainMagic = "P2"
	pnmRawMagic   = "P5"

	// The PNM specification wants no more than 70 characters per line. A
	// decimal sample needs at most 5 characters, so breaking once the
	// accumulated count of samples on a line times 5 reaches 50 keeps plain
	// output comfortably inside the limit.
	maxCharsPerSample = 5
	breakAroundColumn = 50
)

// pnmWriter is a wrapper around io.Writer that emits a PNM grayscale image:
// the header lines followed by samples in row-major order, line-wrapped in
// the plain variant and packed big-endian in the raw variant.
type pnmWriter struct {
	w           io.Writer
	plain       bool
	lineSamples int
}

func newPNMWriter(w io.Writer, plain bool) *pnmWriter {
	return &pnmWriter{w, plain, 0}
}

// Header writes the magic, the optional digitizer bit-depth comment, the
// column count, the row count and the maximum sample value.
func (pw *pnmWriter) Header(digitizer Digitizer, rows, cols int, comment bool) error {
	magic := pnmPlainMagic
	if !pw.plain {
		magic = pnmRawMagic
	}
	if err := pw.String(magic + "\n"); err != nil {
		return fmt.Errorf("writing magic: %v", err)
	}
	if comment {
		line := fmt.Sprintf("# Generated by ddsmraw2pnm. Original data was digitized at %d bits/pixel.\n",
			digitizer.BitsPerPixel())
		if err := pw.String(line); err != nil {
			return fmt.Errorf("writing comment: %v", err)
		}
	}
	return pw.String(fmt.Sprintf("%d\n%d\n%d\n", cols, rows, MaxGreyLevel))
}

// Sample writes one normalized grey level to the image body.
func (pw *pnmWriter) Sample(grey uint32) error {
	if !pw.plain {
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(grey))
		return pw.Bytes(buf[:])
	}

	if err := pw.String(fmt.Sprintf("%d ", grey)); err != nil {
		return err
	}
	pw.lineSamples++
	if pw.lineSamples*maxCharsPerSample >= breakAroundColumn {
		pw.lineSamples = 0
		return pw.String("\n")
	}
	return nil
}

func (pw *pnmWriter) String(s string) error {
	_, err := io.WriteString(pw.w, s)
	return err
}

func (pw *pnmWriter) Bytes(b []byte) error {
	_, err := pw.w.Write(b)
	return err
}
