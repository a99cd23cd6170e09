package analysis

import "math"

// indexEpsilon evita la división por cero cuando ambas medias son ~0.
const indexEpsilon = 1e-5

const (
	highThreshold     = 0.55
	moderateThreshold = 0.45
)

// Level es la interpretación del índice de oxigenación.
type Level int

const (
	LowOxygenation Level = iota
	ModerateOxygenation
	HighOxygenation
)

func (l Level) String() string {
	switch l {
	case HighOxygenation:
		return "high"
	case ModerateOxygenation:
		return "moderate"
	default:
		return "low"
	}
}

// Message es el mensaje que acompaña al índice.
func (l Level) Message() string {
	switch l {
	case HighOxygenation:
		return "Brain highly oxygenated → Active processing"
	case ModerateOxygenation:
		return "Moderate oxygenation → Balanced state"
	default:
		return "Low oxygenation → Fatigue / reduced activity"
	}
}

// Classify: > 0.55 alto, > 0.45 moderado, el resto bajo.
func Classify(coi float64) Level {
	switch {
	case coi > highThreshold:
		return HighOxygenation
	case coi > moderateThreshold:
		return ModerateOxygenation
	default:
		return LowOxygenation
	}
}

func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// OxygenationIndex = mean(oxy) / (mean(oxy) + |mean(deoxy)| + 1e-5)
func OxygenationIndex(oxy, deoxy []float64) float64 {
	return indexFromMeans(Mean(oxy), Mean(deoxy))
}

func indexFromMeans(mo, md float64) float64 {
	return mo / (mo + math.Abs(md) + indexEpsilon)
}

// Percent escala el índice para mostrarlo.
func Percent(coi float64) float64 { return coi * 100 }
