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

func TestCheckCalibration(t *testing.T) {
	if err := CheckCalibration(); err != nil {
		t.Fatalf("CheckCalibration() => %v, want nil", err)
	}
}

func TestCheckCalibrationRejectsLowCeiling(t *testing.T) {
	// Lowering the density ceiling below the clamped curve maxima must fail
	// the exhaustive check rather than silently saturate.
	err := checkCalibration(2.0)
	if err == nil {
		t.Fatalf("checkCalibration(2.0) => nil, want *CalibrationError")
	}
	if _, ok := err.(*CalibrationError); !ok {
		t.Fatalf("checkCalibration(2.0) => %T, want *CalibrationError", err)
	}
}

func TestNormalizeDensityFixedPoints(t *testing.T) {
	testCases := []struct {
		name     string
		od       float64
		expected uint32
	}{
		{"zero density inverts then compands to full scale", 0.0, 65535},
		{"maximum density maps to zero", DefaultMaxDensity, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			grey, ok := normalizeDensity(tc.od, DefaultMaxDensity)
			if !ok {
				t.Fatalf("normalizeDensity(%v, _) => ok=false, want true", tc.od)
			}
			if grey != tc.expected {
				t.Fatalf("normalizeDensity(%v, _) => %v, want %v", tc.od, grey, tc.expected)
			}
		})
	}
}

func TestNormalizeDensityOutOfRange(t *testing.T) {
	if _, ok := normalizeDensity(DefaultMaxDensity+0.01, DefaultMaxDensity); ok {
		t.Fatalf("normalizeDensity above ceiling => ok=true, want false")
	}
}

func TestGreyLevelBoundaries(t *testing.T) {
	testCases := []struct {
		name      string
		digitizer Digitizer
		raw       uint16
		expected  uint32
	}{
		{"dba zero raw count is zero density", DBA, 0, 65535},
		{"howtek-ismd air region", HowtekISMD, 0, 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			grey, ok := tc.digitizer.GreyLevel(tc.raw)
			if !ok {
				t.Fatalf("%v.GreyLevel(%v) => ok=false, want true", tc.digitizer, tc.raw)
			}
			if grey != tc.expected {
				t.Fatalf("%v.GreyLevel(%v) => %v, want %v", tc.digitizer, tc.raw, grey, tc.expected)
			}
		})
	}
}

func TestGreyLevelClampSaturation(t *testing.T) {
	// Out-of-domain raw counts clamp to the nearest bound, so values on
	// either side of a bound must calibrate identically.
	testCases := []struct {
		name      string
		digitizer Digitizer
		raw       uint16
		clamped   uint16
	}{
		{"dba above upper bound", DBA, 65535, 64064},
		{"dba below lower bound", DBA, 3, 4},
		{"howtek-mgh above upper bound", HowtekMGH, 5000, 4006},
		{"lumisys below lower bound", Lumisys, 60, 61},
		{"lumisys above upper bound", Lumisys, 4098, 4097},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, gotOK := tc.digitizer.GreyLevel(tc.raw)
			want, wantOK := tc.digitizer.GreyLevel(tc.clamped)
			if got != want || gotOK != wantOK {
				t.Fatalf("%v.GreyLevel(%v) => (%v, %v), want (%v, %v) as for raw %v",
					tc.digitizer, tc.raw, got, gotOK, want, wantOK, tc.clamped)
			}
		})
	}
}

func TestOpticalDensityInNominalRange(t *testing.T) {
	for _, d := range Digitizers() {
		for raw := 0; raw <= MaxGreyLevel; raw++ {
			od := d.OpticalDensity(uint16(raw))
			// The lumisys curve dips a hair below zero at its upper clamp
			// bound; the normalizer truncates that back to grey level 65535.
			if od < -0.001 || od > DefaultMaxDensity {
				t.Fatalf("%v.OpticalDensity(%v) => %v, want within [0, %v]",
					d, raw, od, DefaultMaxDensity)
			}
		}
	}
}
