package eq

import (
	"encoding/json"
	"testing"
)

func TestNewParams_Defaults(t *testing.T) {
	s := NewParams().Settings()

	if s.LowCutFreq != DefaultLowCutFreq {
		t.Errorf("LowCutFreq: got %v, want %v", s.LowCutFreq, DefaultLowCutFreq)
	}
	if s.HighCutFreq != DefaultHighCutFreq {
		t.Errorf("HighCutFreq: got %v, want %v", s.HighCutFreq, DefaultHighCutFreq)
	}
	if s.PeakFreq != DefaultPeakFreq {
		t.Errorf("PeakFreq: got %v, want %v", s.PeakFreq, DefaultPeakFreq)
	}
	if s.PeakGainDB != DefaultPeakGainDB {
		t.Errorf("PeakGainDB: got %v, want %v", s.PeakGainDB, DefaultPeakGainDB)
	}
	if s.PeakQ != DefaultPeakQ {
		t.Errorf("PeakQ: got %v, want %v", s.PeakQ, DefaultPeakQ)
	}
	if s.LowCutSlope != Slope12 || s.HighCutSlope != Slope12 {
		t.Errorf("slopes: got %v/%v, want Slope12", s.LowCutSlope, s.HighCutSlope)
	}
}

func TestParams_SettersClamp(t *testing.T) {
	p := NewParams()

	p.SetPeakFreq(5)
	p.SetPeakGainDB(100)
	p.SetPeakQ(0.001)
	p.SetLowCutFreq(-10)
	p.SetHighCutFreq(1e6)
	p.SetLowCutSlope(Slope(99))
	p.SetHighCutSlope(Slope(-3))

	s := p.Settings()
	if s.PeakFreq != MinFrequencyHz {
		t.Errorf("PeakFreq: got %v, want %v", s.PeakFreq, MinFrequencyHz)
	}
	if s.PeakGainDB != MaxGainDB {
		t.Errorf("PeakGainDB: got %v, want %v", s.PeakGainDB, MaxGainDB)
	}
	if s.PeakQ != MinQuality {
		t.Errorf("PeakQ: got %v, want %v", s.PeakQ, MinQuality)
	}
	if s.LowCutFreq != MinFrequencyHz {
		t.Errorf("LowCutFreq: got %v, want %v", s.LowCutFreq, MinFrequencyHz)
	}
	if s.HighCutFreq != MaxFrequencyHz {
		t.Errorf("HighCutFreq: got %v, want %v", s.HighCutFreq, MaxFrequencyHz)
	}
	if s.LowCutSlope != Slope48 {
		t.Errorf("LowCutSlope: got %v, want Slope48", s.LowCutSlope)
	}
	if s.HighCutSlope != Slope12 {
		t.Errorf("HighCutSlope: got %v, want Slope12", s.HighCutSlope)
	}
}

func TestParams_ChangedConsumedAndReset(t *testing.T) {
	p := NewParams()

	if p.Changed() {
		t.Fatal("fresh params report changed")
	}

	p.SetPeakGainDB(6)
	if !p.Changed() {
		t.Fatal("set did not mark changed")
	}
	if p.Changed() {
		t.Fatal("changed flag not consumed")
	}

	p.SetLowCutSlope(Slope24)
	p.SetHighCutFreq(8000)
	if !p.Changed() {
		t.Fatal("second round of sets did not mark changed")
	}
	if p.Changed() {
		t.Fatal("flag reported twice")
	}
}

func TestParams_JSONRoundTrip(t *testing.T) {
	p := NewParams()
	p.SetPeakFreq(1234)
	p.SetPeakGainDB(-7.5)
	p.SetPeakQ(3.3)
	p.SetLowCutFreq(80)
	p.SetHighCutFreq(15000)
	p.SetLowCutSlope(Slope36)
	p.SetHighCutSlope(Slope24)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}

	q := NewParams()
	if err := json.Unmarshal(data, q); err != nil {
		t.Fatal(err)
	}

	if q.Settings() != p.Settings() {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", q.Settings(), p.Settings())
	}

	if !q.Changed() {
		t.Error("restore did not mark parameters changed")
	}
}

func TestParams_UnmarshalClampsHostileState(t *testing.T) {
	p := NewParams()
	data := []byte(`{"lowCutFreq":-5,"highCutFreq":99999,"peakFreq":750,` +
		`"peakGainDB":500,"peakQ":0,"lowCutSlope":42,"highCutSlope":-1}`)

	if err := json.Unmarshal(data, p); err != nil {
		t.Fatal(err)
	}

	s := p.Settings()
	if s.LowCutFreq != MinFrequencyHz || s.HighCutFreq != MaxFrequencyHz {
		t.Errorf("frequencies not clamped: %+v", s)
	}
	if s.PeakGainDB != MaxGainDB {
		t.Errorf("gain not clamped: %v", s.PeakGainDB)
	}
	if s.PeakQ != MinQuality {
		t.Errorf("q not clamped: %v", s.PeakQ)
	}
	if s.LowCutSlope != Slope48 || s.HighCutSlope != Slope12 {
		t.Errorf("slopes not clamped: %v/%v", s.LowCutSlope, s.HighCutSlope)
	}
}

func TestParams_UnmarshalRejectsGarbage(t *testing.T) {
	p := NewParams()
	if err := json.Unmarshal([]byte(`{"peakFreq":"not a number"}`), p); err == nil {
		t.Fatal("garbage accepted")
	}
}
