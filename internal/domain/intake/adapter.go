// Package intake turns heterogeneous intake payloads (manual taps, decoded
// scans) into a single amount contract.
package intake

import (
	"bytes"
	"encoding/json"
	"math"
)

// Scan fallback amounts.
const (
	DefaultScanMl           = 250 // payload is not structured data
	DefaultStructuredScanMl = 500 // structured data without a usable amount
	maxAmountMl             = math.MaxInt32
)

// Source identifies where an intake event came from.
type Source string

// Known sources.
const (
	SourceManual Source = "manual"
	SourceScan   Source = "scan"
)

// Fallback records which scan default, if any, produced the amount.
type Fallback string

// Fallback tiers.
const (
	FallbackNone         Fallback = ""
	FallbackUnstructured Fallback = "unstructured"
	FallbackStructured   Fallback = "structured"
)

// Event is a normalized intake. It is consumed immediately and never stored.
type Event struct {
	AmountMl int      `json:"amount_ml"`
	Source   Source   `json:"source"`
	Fallback Fallback `json:"fallback,omitempty"`
}

// Payload is a raw intake as delivered by a collaborator.
type Payload interface {
	source() Source
}

// Manual is a direct numeric amount from a button press.
type Manual int

func (Manual) source() Source { return SourceManual }

// Scan is the decoded text of a scanned code.
type Scan string

func (Scan) source() Source { return SourceScan }

// Option applies a configuration option to the Adapter.
type Option func(*Adapter)

// WithScanDefault overrides the amount used for unstructured scan text.
func WithScanDefault(ml int) Option {
	return func(a *Adapter) {
		if ml > 0 {
			a.scanDefaultMl = ml
		}
	}
}

// WithStructuredScanDefault overrides the amount used for structured scans
// that carry no usable amount.
func WithStructuredScanDefault(ml int) Option {
	return func(a *Adapter) {
		if ml > 0 {
			a.structuredDefaultMl = ml
		}
	}
}

// WithPresets replaces the manual preset list.
func WithPresets(presets []Preset) Option {
	return func(a *Adapter) {
		if len(presets) > 0 {
			a.presets = append([]Preset(nil), presets...)
		}
	}
}

// Adapter normalizes payloads. It never fails.
type Adapter struct {
	scanDefaultMl       int
	structuredDefaultMl int
	presets             []Preset
}

// NewAdapter creates an adapter with the standard fallbacks and presets.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		scanDefaultMl:       DefaultScanMl,
		structuredDefaultMl: DefaultStructuredScanMl,
		presets:             DefaultPresets(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Normalize resolves raw into an Event. Manual amounts pass through unchanged;
// range checks belong to the tracker.
func (a *Adapter) Normalize(raw Payload) Event {
	switch p := raw.(type) {
	case Manual:
		return Event{AmountMl: int(p), Source: SourceManual}
	case Scan:
		ml, fb := a.normalizeScan(string(p))
		return Event{AmountMl: ml, Source: SourceScan, Fallback: fb}
	default:
		return Event{AmountMl: a.scanDefaultMl, Source: SourceScan, Fallback: FallbackUnstructured}
	}
}

// normalizeScan applies the two-tier fallback: text that is not valid JSON (or
// is null) gets the scan default, valid data without a positive numeric amount
// gets the structured default. Valid JSON that fails to decode, such as a
// number outside float64 range, is still structured.
func (a *Adapter) normalizeScan(text string) (int, Fallback) {
	raw := []byte(text)
	if !json.Valid(raw) || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return a.scanDefaultMl, FallbackUnstructured
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return a.structuredDefaultMl, FallbackStructured
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return a.structuredDefaultMl, FallbackStructured
	}
	amount, ok := obj["amount"].(float64)
	if !ok || amount <= 0 || amount > maxAmountMl {
		return a.structuredDefaultMl, FallbackStructured
	}
	return int(math.Ceil(amount)), FallbackNone
}

// Presets returns a copy of the manual presets.
func (a *Adapter) Presets() []Preset {
	return append([]Preset(nil), a.presets...)
}

// Preset looks up a manual preset by key.
func (a *Adapter) Preset(key string) (Preset, bool) {
	return lookupPreset(a.presets, key)
}
