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

// convertConfig collects the settings of a single conversion. There are no
// package level mutable settings; each Convert or NewSampleIterator call
// derives its own config from the defaults and the options given.
type convertConfig struct {
	maxDensity float64
	comment    bool
	plain      bool
}

func newConvertConfig(opts ...ConvertOption) convertConfig {
	cfg := convertConfig{
		maxDensity: DefaultMaxDensity,
		comment:    true,
		plain:      true,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}

// ConvertOption configures the behavior of the Convert function and the
// SampleIterator.
type ConvertOption struct {
	apply func(*convertConfig)
}

// WithMaxDensity returns a ConvertOption that sets the optical density mapped
// to grey level zero. Densities above the ceiling fail normalization, so
// lowering it below the default will make Convert's calibration self-check
// reject the clamped curve maxima.
func WithMaxDensity(maxOD float64) ConvertOption {
	return ConvertOption{func(cfg *convertConfig) {
		cfg.maxDensity = maxOD
	}}
}

// WithoutComment suppresses the bit-depth comment line in the PNM header for
// downstream consumers that do not tolerate PNM comments.
var WithoutComment = ConvertOption{func(cfg *convertConfig) {
	cfg.comment = false
}}

// WithRawEncoding emits the raw PNM variant (magic "P5", big-endian 16-bit
// binary samples) instead of the plain text variant. The raw variant is still
// uncompressed grayscale; it is simply a denser encoding of the same data.
var WithRawEncoding = ConvertOption{func(cfg *convertConfig) {
	cfg.plain = false
}}
