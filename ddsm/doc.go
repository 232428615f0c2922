// Package ddsm converts raw DDSM mammogram pixel streams into the plain PNM
// image format, calibrating raw digitizer counts into normalized grey levels
// that are directly comparable across the four scanners used to digitize the
// DDSM. The package provides a high level and low level API for performing
// conversions. The high level API consists of the Convert function which
// performs a whole conversion from an io.Reader to an io.Writer in one call,
// including the exhaustive calibration self-check and the final sample count
// validation. The low level API consists of the streaming SampleIterator which
// yields calibrated grey levels one at a time and leaves header emission and
// size validation to the caller.
//
// Calibration proceeds in two steps. First a digitizer specific inverse
// response curve maps a raw 16-bit count to an optical density; the curves and
// their clamp bounds were obtained from the DDSM website. Second the optical
// density is mapped to a 16-bit normalized grey level by scaling against the
// maximum expected density, inverting (the digitizers report an inverted
// response), and applying a quadratic companding function that gives more
// binary precision to the high grey levels.
package ddsm
