package config

import "testing"

func TestDefaultsAreConservative(t *testing.T) {
	d := Defaults()
	if d.UseCubePrune {
		t.Errorf("default UseCubePrune = true, want false (exhaustive combination by default)")
	}
	if d.KBest != 0 {
		t.Errorf("default KBest = %d, want 0 (unbounded)", d.KBest)
	}
	if d.SentenceTimeoutMs != 0 {
		t.Errorf("default SentenceTimeoutMs = %d, want 0 (no timeout)", d.SentenceTimeoutMs)
	}
}

func TestLoadWithoutGconfKeysKeepsDefaults(t *testing.T) {
	d := Options{UseCubePrune: true, BeamWidth: 5, KBest: 20}
	got := Load(d)
	if got != d {
		t.Errorf("Load(%+v) = %+v, want unchanged defaults when no gconf keys are set", d, got)
	}
}
