package atmo

import "testing"

func TestAbsorptionNoneIsZero(t *testing.T) {
	if got := Absorption(None, 1000, DefaultConditions()); got != 0 {
		t.Errorf("Absorption(None, ...) = %v, want 0", got)
	}
}

func TestAbsorptionPositiveForKnownModels(t *testing.T) {
	for _, m := range []Model{Simple, ISO9613} {
		t.Run(string(m), func(t *testing.T) {
			got := Absorption(m, 2000, DefaultConditions())
			if got <= 0 {
				t.Errorf("Absorption(%s, 2000Hz, default) = %v, want > 0", m, got)
			}
		})
	}
}

func TestISO9613IncreasesWithFrequency(t *testing.T) {
	cond := DefaultConditions()
	low := Absorption(ISO9613, 500, cond)
	high := Absorption(ISO9613, 8000, cond)
	if high <= low {
		t.Errorf("expected absorption to grow with frequency, got low=%v high=%v", low, high)
	}
}

func TestISO9613FallsBackToDefaultPressure(t *testing.T) {
	cond := DefaultConditions()
	cond.PressureKPa = 0
	got := Absorption(ISO9613, 1000, cond)
	if got <= 0 {
		t.Errorf("expected a positive absorption with a zero pressure input, got %v", got)
	}
}

func TestUnknownModelIsZero(t *testing.T) {
	if got := Absorption(Model("bogus"), 1000, DefaultConditions()); got != 0 {
		t.Errorf("Absorption(unknown model) = %v, want 0", got)
	}
}
