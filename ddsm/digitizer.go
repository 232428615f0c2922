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

import "fmt"

// Digitizer identifies one of the four scanners used to digitize the DDSM.
// The zero value is the DBA scanner.
type Digitizer int

const (
	// DBA is the DBA M2100 ImageClear scanner used at MGH.
	DBA Digitizer = iota
	// HowtekMGH is the Howtek 960 scanner used at MGH.
	HowtekMGH
	// HowtekISMD is the Howtek MultiRad850 scanner used at ISMD.
	HowtekISMD
	// Lumisys is the Lumisys 200 laser scanner used at Wake Forest and
	// Washington University.
	Lumisys
)

// digitizer names as they appear on the command line and in package APIs
const (
	dbaName        = "dba"
	howtekMGHName  = "howtek-mgh"
	howtekISMDName = "howtek-ismd"
	lumisysName    = "lumisys"
)

// digitizerInfo describes how a digitizer's raw counts are calibrated: the
// scanner's native bit depth, the raw domain outside which counts are clamped
// to the nearest bound, whether a raw count of exactly zero maps directly to
// zero optical density (bypassing the curve), and the inverse response curve
// applied to the clamped count.
type digitizerInfo struct {
	name         string
	bitsPerPixel int
	minRaw       uint16
	maxRaw       uint16
	zeroDensity  bool
	curve        func(raw float64) float64
}

// digitizerTable is indexed by Digitizer. The clamp bounds keep each curve's
// output inside [0, maxOD]: counts above maxRaw would give negative densities
// and counts below minRaw densities above the expected maximum.
var digitizerTable = [...]digitizerInfo{
	DBA:        {dbaName, 16, 4, 64064, true, dbaCurve},
	HowtekMGH:  {howtekMGHName, 12, 0, 4006, false, howtekMGHCurve},
	HowtekISMD: {howtekISMDName, 12, 0, 4003, false, howtekISMDCurve},
	Lumisys:    {lumisysName, 12, 61, 4097, false, lumisysCurve},
}

// Digitizers returns the supported digitizers in a fixed order.
func Digitizers() []Digitizer {
	return []Digitizer{DBA, HowtekMGH, HowtekISMD, Lumisys}
}

// DigitizerByName returns the Digitizer with the given name. The recognized
// names are "dba", "howtek-mgh", "howtek-ismd" and "lumisys". Any other name
// returns an UnknownDigitizerError.
func DigitizerByName(name string) (Digitizer, error) {
	for _, d := range Digitizers() {
		if digitizerTable[d].name == name {
			return d, nil
		}
	}
	return 0, &UnknownDigitizerError{name}
}

// UnknownDigitizerError indicates a digitizer name that does not identify any
// of the four DDSM scanners.
type UnknownDigitizerError struct {
	Name string
}

func (e *UnknownDigitizerError) Error() string {
	return fmt.Sprintf("unknown digitizer name: %q", e.Name)
}

func (d Digitizer) valid() bool {
	return d >= 0 && int(d) < len(digitizerTable)
}

func (d Digitizer) info() digitizerInfo {
	return digitizerTable[d]
}

// String returns the digitizer's name as used by DigitizerByName.
func (d Digitizer) String() string {
	if !d.valid() {
		return fmt.Sprintf("Digitizer(%d)", int(d))
	}
	return d.info().name
}

// BitsPerPixel returns the bit depth the digitizer natively operated at. Only
// the DBA scanner digitized at 16 bits per pixel; the others used 12.
func (d Digitizer) BitsPerPixel() int {
	return d.info().bitsPerPixel
}
