package gait

//
// rms.go - the one metric we compute locally rather than delegating
// to the external gait routine.
//

import (
	"math"

	"github.com/montanaflynn/stats"
)

// RMS returns the root mean square of the given samples, or zero when
// there are no samples.
func RMS(data []float64) float64 {
	squares := make([]float64, 0, len(data))
	for _, v := range data {
		squares = append(squares, v*v)
	}
	mean, err := stats.Mean(squares)
	if err != nil {
		return 0
	}
	return math.Sqrt(mean)
}
