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

import "testing"

func TestDigitizerByName(t *testing.T) {
	testCases := []struct {
		name     string
		expected Digitizer
	}{
		{"dba", DBA},
		{"howtek-mgh", HowtekMGH},
		{"howtek-ismd", HowtekISMD},
		{"lumisys", Lumisys},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := DigitizerByName(tc.name)
			if err != nil {
				t.Fatalf("DigitizerByName(%q) => %v", tc.name, err)
			}
			if d != tc.expected {
				t.Fatalf("DigitizerByName(%q) => %v, want %v", tc.name, d, tc.expected)
			}
			if d.String() != tc.name {
				t.Fatalf("%v.String() => %q, want %q", d, d.String(), tc.name)
			}
		})
	}
}

func TestDigitizerByNameUnknown(t *testing.T) {
	for _, name := range []string{"", "DBA", "howtek", "scanner"} {
		if _, err := DigitizerByName(name); err == nil {
			t.Fatalf("DigitizerByName(%q) => nil error, want *UnknownDigitizerError", name)
		} else if _, ok := err.(*UnknownDigitizerError); !ok {
			t.Fatalf("DigitizerByName(%q) => %T, want *UnknownDigitizerError", name, err)
		}
	}
}

func TestDigitizerBitsPerPixel(t *testing.T) {
	// Only the DBA scanner digitized at 16 bits per pixel.
	for _, d := range Digitizers() {
		expected := 12
		if d == DBA {
			expected = 16
		}
		if got := d.BitsPerPixel(); got != expected {
			t.Fatalf("%v.BitsPerPixel() => %v, want %v", d, got, expected)
		}
	}
}
