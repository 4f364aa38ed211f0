package scene

// Numeric defaults from §6.
const (
	DefaultSourceZ      = 1.5
	DefaultReceiverZ    = 1.5
	DefaultProbeZ       = 1.7
	DefaultTemperatureC = 20.0
	DefaultHumidityPct  = 50.0
	DefaultPressureKPa  = 101.325
	DefaultMixedFactor  = 0.5
	DefaultMaxDistance  = 2000.0
)

// DefaultPropagationConfig returns the engine's fallback config, the way
// the teacher falls back to tiledb.NewConfig() when no config URI is
// given (cmd/main.go's convert_gsf): "load if given, else build sane
// defaults".
func DefaultPropagationConfig() PropagationConfig {
	temperature := DefaultTemperatureC
	humidity := DefaultHumidityPct
	mixedFactor := DefaultMixedFactor
	return PropagationConfig{
		Spreading: "spherical",
		Atmospheric: AtmosphericConfig{
			Model:        "iso9613",
			TemperatureC: &temperature,
			HumidityPct:  &humidity,
			PressureKPa:  DefaultPressureKPa,
		},
		Ground: GroundConfig{
			Enabled:        true,
			Type:           "soft",
			MixedFactor:    &mixedFactor,
			Interpolation:  "iso9613",
			Model:          GroundModelTwoRayPhasor,
			ImpedanceModel: "auto",
		},
		BarrierSideDiffraction: SideDiffractionAuto,
		MaxPropagationDistance: DefaultMaxDistance,
		CoherentSummation:      true,
	}
}

// WithDefaults fills any unset fields of cfg with the engine's defaults.
// A nil cfg yields DefaultPropagationConfig() outright. TemperatureC,
// HumidityPct, and MixedFactor are filled only when the caller left the
// pointer nil: an explicit 0 (freezing, 0% RH, fully-hard mixed ground)
// is a legitimate value and must survive here untouched, the same
// "required" trap PropagationConfig.SpeedOfSound's *float64 already
// avoids.
func WithDefaults(cfg *PropagationConfig) PropagationConfig {
	def := DefaultPropagationConfig()
	if cfg == nil {
		return def
	}
	out := *cfg
	if out.Spreading == "" {
		out.Spreading = def.Spreading
	}
	if out.Atmospheric.Model == "" {
		out.Atmospheric.Model = def.Atmospheric.Model
	}
	if out.Atmospheric.TemperatureC == nil {
		out.Atmospheric.TemperatureC = def.Atmospheric.TemperatureC
	}
	if out.Atmospheric.HumidityPct == nil {
		out.Atmospheric.HumidityPct = def.Atmospheric.HumidityPct
	}
	if out.Atmospheric.PressureKPa == 0 {
		out.Atmospheric.PressureKPa = def.Atmospheric.PressureKPa
	}
	if out.Ground.Type == "" {
		out.Ground.Type = def.Ground.Type
	}
	if out.Ground.Interpolation == "" {
		out.Ground.Interpolation = def.Ground.Interpolation
	}
	if out.Ground.Model == "" {
		out.Ground.Model = def.Ground.Model
	}
	if out.Ground.ImpedanceModel == "" {
		out.Ground.ImpedanceModel = def.Ground.ImpedanceModel
	}
	if out.Ground.MixedFactor == nil {
		out.Ground.MixedFactor = def.Ground.MixedFactor
	}
	if out.BarrierSideDiffraction == "" {
		out.BarrierSideDiffraction = def.BarrierSideDiffraction
	}
	if out.MaxPropagationDistance == 0 {
		out.MaxPropagationDistance = def.MaxPropagationDistance
	}
	return out
}

// BarrierSideDiffractionEnabled resolves the "auto" side-diffraction
// rule: on for barriers shorter than 50m.
func BarrierSideDiffractionEnabled(mode SideDiffractionMode, barrierLength float64) bool {
	switch mode {
	case SideDiffractionOn:
		return true
	case SideDiffractionAuto:
		return barrierLength < 50.0
	default:
		return false
	}
}
