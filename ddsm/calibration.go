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
	"math"
)

// DefaultMaxDensity is the optical density that maps to normalized grey level
// zero. It is set slightly above the maxima published on the DDSM website
// because larger densities do exist in the data.
const DefaultMaxDensity = 4.0

// MaxGreyLevel is the largest normalized grey level and raw digitizer count,
// i.e. the maximum unsigned integer representable in 16 bits.
const MaxGreyLevel = 65535

// The inverse response curves below map a clamped raw digitizer count to an
// optical density. The equations were obtained from the calibration pages of
// the DDSM website, e.g.
// http://marathon.csee.usf.edu/Mammography/DDSM/calibrate/DBA_Scanner_info.html
func dbaCurve(raw float64) float64 {
	return (math.Log10(raw) - 4.80662) / (-1.07553)
}

func howtekMGHCurve(raw float64) float64 {
	return 3.789 + (-0.00094568)*raw
}

func howtekISMDCurve(raw float64) float64 {
	return 3.96604096240593 + (-0.00099055807612)*raw
}

func lumisysCurve(raw float64) float64 {
	return (raw - 4096.99) / (-1009.01)
}

// OpticalDensity returns the optical density the digitizer's calibration
// curve assigns to a raw count. Counts outside the curve's valid domain are
// clamped to the nearest bound first; clamping is the calibration policy, so
// out-of-domain input is never an error.
func (d Digitizer) OpticalDensity(raw uint16) float64 {
	info := d.info()
	if info.zeroDensity && raw == 0 {
		return 0.0
	}
	if raw < info.minRaw {
		raw = info.minRaw
	}
	if raw > info.maxRaw {
		raw = info.maxRaw
	}
	return info.curve(float64(raw))
}

// GreyLevel calibrates a raw digitizer count into a normalized grey level
// using the default maximum optical density. The returned bool reports
// whether normalization succeeded; false means the density exceeded the
// expected maximum, which callers must treat as fatal for the stream being
// decoded.
func (d Digitizer) GreyLevel(raw uint16) (uint32, bool) {
	return greyLevel(d, raw, DefaultMaxDensity)
}

func greyLevel(d Digitizer, raw uint16, maxOD float64) (uint32, bool) {
	return normalizeDensity(d.OpticalDensity(raw), maxOD)
}

// normalizeDensity maps an optical density to a normalized grey level. The
// density is scaled so that maxOD maps to MaxGreyLevel, truncated toward
// zero, inverted (the digitizers report an inverted response, so a high raw
// count presents as a low density), and finally companded with a quadratic
// that maps 0 to 0 and MaxGreyLevel to MaxGreyLevel while compressing the low
// end of the range. The companded value is deliberately not re-clamped: the
// quadratic is bounded by its input, so a value out of range here is an
// upstream bug that CheckCalibration exists to expose.
func normalizeDensity(od float64, maxOD float64) (uint32, bool) {
	scaled := int64((float64(MaxGreyLevel) / maxOD) * od)
	if scaled < 0 || scaled > MaxGreyLevel {
		return 0, false
	}

	inverted := uint64(MaxGreyLevel - scaled)
	return uint32(inverted * inverted / MaxGreyLevel), true
}

// CalibrationError indicates that a calibration curve produced a normalized
// grey level outside the 16-bit output range for some raw input. It signals a
// defect in the calibration constants or formulas themselves, not a problem
// with any input file.
type CalibrationError struct {
	Digitizer Digitizer
	Raw       uint16
}

func (e *CalibrationError) Error() string {
	return fmt.Sprintf("calibration curve for the %v digitizer has a range problem at raw input %d",
		e.Digitizer, e.Raw)
}

// CheckCalibration exhaustively verifies that every digitizer's calibration
// maps the full raw domain [0, MaxGreyLevel] into [0, MaxGreyLevel]. It is a
// regression guard on the calibration math and must pass before any pixel
// stream is decoded; a failure is a programming error, distinct from any
// per-file data error.
func CheckCalibration() error {
	return checkCalibration(DefaultMaxDensity)
}

func checkCalibration(maxOD float64) error {
	for _, d := range Digitizers() {
		for raw := 0; raw <= MaxGreyLevel; raw++ {
			grey, ok := greyLevel(d, uint16(raw), maxOD)
			if !ok || grey > MaxGreyLevel {
				return &CalibrationError{d, uint16(raw)}
			}
		}
	}
	return nil
}
