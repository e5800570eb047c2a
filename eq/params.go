package eq

import (
	"encoding/json"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Parameter ranges. Setters clamp to these, so the coefficient factory can
// assume in-range values.
const (
	MinFrequencyHz = 20.0
	MaxFrequencyHz = 20000.0
	MinGainDB      = -24.0
	MaxGainDB      = 24.0
	MinQuality     = 0.1
	MaxQuality     = 10.0
)

// Defaults matching the reference parameter layout.
const (
	DefaultLowCutFreq  = 20.0
	DefaultHighCutFreq = 20000.0
	DefaultPeakFreq    = 750.0
	DefaultPeakGainDB  = 0.0
	DefaultPeakQ       = 1.0
)

// Params is the live parameter state shared between the host/UI context
// (writer) and the audio and analysis contexts (readers). Each value is
// stored as an atomic float64 bit pattern, so reads on the audio thread
// never lock. A consumed-and-reset changed flag lets the analysis side
// rebuild its reference chain only when something actually moved.
type Params struct {
	lowCutFreq  atomic.Uint64
	highCutFreq atomic.Uint64
	peakFreq    atomic.Uint64
	peakGainDB  atomic.Uint64
	peakQ       atomic.Uint64

	lowCutSlope  atomic.Int32
	highCutSlope atomic.Int32

	changed atomic.Bool
}

// NewParams returns a parameter store initialized to the default layout:
// cuts wide open, peak at 750 Hz with 0 dB gain and Q 1, both slopes at
// 12 dB/octave.
func NewParams() *Params {
	p := &Params{}
	p.storeFloat(&p.lowCutFreq, DefaultLowCutFreq)
	p.storeFloat(&p.highCutFreq, DefaultHighCutFreq)
	p.storeFloat(&p.peakFreq, DefaultPeakFreq)
	p.storeFloat(&p.peakGainDB, DefaultPeakGainDB)
	p.storeFloat(&p.peakQ, DefaultPeakQ)
	p.changed.Store(false)

	return p
}

// Settings returns a point-in-time snapshot of all parameter values.
func (p *Params) Settings() ChainSettings {
	return ChainSettings{
		PeakFreq:     p.loadFloat(&p.peakFreq),
		PeakGainDB:   p.loadFloat(&p.peakGainDB),
		PeakQ:        p.loadFloat(&p.peakQ),
		LowCutFreq:   p.loadFloat(&p.lowCutFreq),
		HighCutFreq:  p.loadFloat(&p.highCutFreq),
		LowCutSlope:  Slope(p.lowCutSlope.Load()),
		HighCutSlope: Slope(p.highCutSlope.Load()),
	}
}

// Changed reports whether any parameter was set since the last call, and
// resets the flag. Single consumer only.
func (p *Params) Changed() bool {
	return p.changed.CompareAndSwap(true, false)
}

// SetLowCutFreq sets the low-cut corner frequency in Hz.
func (p *Params) SetLowCutFreq(hz float64) {
	p.set(&p.lowCutFreq, hz, MinFrequencyHz, MaxFrequencyHz)
}

// SetHighCutFreq sets the high-cut corner frequency in Hz.
func (p *Params) SetHighCutFreq(hz float64) {
	p.set(&p.highCutFreq, hz, MinFrequencyHz, MaxFrequencyHz)
}

// SetPeakFreq sets the peak band center frequency in Hz.
func (p *Params) SetPeakFreq(hz float64) {
	p.set(&p.peakFreq, hz, MinFrequencyHz, MaxFrequencyHz)
}

// SetPeakGainDB sets the peak band gain in dB.
func (p *Params) SetPeakGainDB(db float64) {
	p.set(&p.peakGainDB, db, MinGainDB, MaxGainDB)
}

// SetPeakQ sets the peak band quality factor.
func (p *Params) SetPeakQ(q float64) {
	p.set(&p.peakQ, q, MinQuality, MaxQuality)
}

// SetLowCutSlope sets the low-cut steepness.
func (p *Params) SetLowCutSlope(s Slope) {
	p.lowCutSlope.Store(int32(clampSlope(s)))
	p.changed.Store(true)
}

// SetHighCutSlope sets the high-cut steepness.
func (p *Params) SetHighCutSlope(s Slope) {
	p.highCutSlope.Store(int32(clampSlope(s)))
	p.changed.Store(true)
}

func (p *Params) set(dst *atomic.Uint64, value, min, max float64) {
	p.storeFloat(dst, core.Clamp(value, min, max))
	p.changed.Store(true)
}

func (p *Params) storeFloat(dst *atomic.Uint64, value float64) {
	dst.Store(math.Float64bits(value))
}

func (p *Params) loadFloat(src *atomic.Uint64) float64 {
	return math.Float64frombits(src.Load())
}

func clampSlope(s Slope) Slope {
	if s < Slope12 {
		return Slope12
	}

	if s >= numSlopes {
		return Slope48
	}

	return s
}

// paramsState is the serialized form of Params. The container format is
// owned by the host; this is only the value payload it carries.
type paramsState struct {
	LowCutFreq   float64 `json:"lowCutFreq"`
	HighCutFreq  float64 `json:"highCutFreq"`
	PeakFreq     float64 `json:"peakFreq"`
	PeakGainDB   float64 `json:"peakGainDB"`
	PeakQ        float64 `json:"peakQ"`
	LowCutSlope  int     `json:"lowCutSlope"`
	HighCutSlope int     `json:"highCutSlope"`
}

// MarshalJSON serializes the current parameter values.
func (p *Params) MarshalJSON() ([]byte, error) {
	s := p.Settings()

	return json.Marshal(paramsState{
		LowCutFreq:   s.LowCutFreq,
		HighCutFreq:  s.HighCutFreq,
		PeakFreq:     s.PeakFreq,
		PeakGainDB:   s.PeakGainDB,
		PeakQ:        s.PeakQ,
		LowCutSlope:  int(s.LowCutSlope),
		HighCutSlope: int(s.HighCutSlope),
	})
}

// UnmarshalJSON restores parameter values through the clamping setters and
// marks the parameters changed.
func (p *Params) UnmarshalJSON(data []byte) error {
	var s paramsState
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	p.SetLowCutFreq(s.LowCutFreq)
	p.SetHighCutFreq(s.HighCutFreq)
	p.SetPeakFreq(s.PeakFreq)
	p.SetPeakGainDB(s.PeakGainDB)
	p.SetPeakQ(s.PeakQ)
	p.SetLowCutSlope(Slope(s.LowCutSlope))
	p.SetHighCutSlope(Slope(s.HighCutSlope))

	return nil
}
