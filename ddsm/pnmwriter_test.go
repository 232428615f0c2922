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
	"bytes"
	"testing"
)

func TestPNMWriterHeader(t *testing.T) {
	testCases := []struct {
		name      string
		plain     bool
		comment   bool
		digitizer Digitizer
		expected  string
	}{
		{
			"plain with comment",
			true, true, HowtekISMD,
			"P2\n# Generated by ddsmraw2pnm. Original data was digitized at 12 bits/pixel.\n3\n2\n65535\n",
		},
		{
			"plain without comment",
			true, false, HowtekISMD,
			"P2\n3\n2\n65535\n",
		},
		{
			"raw with comment",
			false, true, DBA,
			"P5\n# Generated by ddsmraw2pnm. Original data was digitized at 16 bits/pixel.\n3\n2\n65535\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			pw := newPNMWriter(&buf, tc.plain)
			if err := pw.Header(tc.digitizer, 2, 3, tc.comment); err != nil {
				t.Fatalf("Header(_, 2, 3, %v) => %v", tc.comment, err)
			}
			if buf.String() != tc.expected {
				t.Fatalf("got %q, want %q", buf.String(), tc.expected)
			}
		})
	}
}

func TestPNMWriterLineWrap(t *testing.T) {
	// The plain body breaks onto a new line once ten samples have
	// accumulated, keeping lines within the 70 character limit of the PNM
	// specification.
	var buf bytes.Buffer
	pw := newPNMWriter(&buf, true)
	for i := 0; i < 12; i++ {
		if err := pw.Sample(7); err != nil {
			t.Fatalf("Sample(7) => %v", err)
		}
	}

	expected := "7 7 7 7 7 7 7 7 7 7 \n7 7 "
	if buf.String() != expected {
		t.Fatalf("got %q, want %q", buf.String(), expected)
	}
}

func TestPNMWriterRawSamples(t *testing.T) {
	var buf bytes.Buffer
	pw := newPNMWriter(&buf, false)
	for _, grey := range []uint32{0x0102, 0xFFFE} {
		if err := pw.Sample(grey); err != nil {
			t.Fatalf("Sample(%v) => %v", grey, err)
		}
	}

	expected := []byte{0x01, 0x02, 0xFF, 0xFE}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Fatalf("got %v, want %v", buf.Bytes(), expected)
	}
}
