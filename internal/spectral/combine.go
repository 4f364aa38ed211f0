package spectral

import "github.com/KanuToCL/geonoise/internal/units"

// CombineSources folds each source's per-band spectrum into the total
// at a receiver using the incoherent energetic sum (§4.4): distinct
// sources carry no fixed phase relationship, so only the phasor sum
// within one source is coherent.
func CombineSources(perSource [][9]float64) [9]float64 {
	var total [9]float64
	for band := 0; band < 9; band++ {
		levels := make([]float64, len(perSource))
		for s, spectrum := range perSource {
			levels[s] = spectrum[band]
		}
		total[band] = units.SumPowerDB(levels)
	}
	return total
}
