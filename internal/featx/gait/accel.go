// Package gait loads raw accelerometer readings and invokes the
// external gait routine that turns them into walking metrics.
package gait

import (
	"encoding/json"
	"errors"
	"math"
	"os"

	"github.com/mhealthx/extract-cli/internal/model"
)

// Axis selects which component of the accelerometer reading feeds
// the gait extractor.
type Axis string

// All the axes we know about.
const (
	// AxisX is the mediolateral axis.
	AxisX = Axis("x")

	// AxisY is the vertical axis.
	AxisY = Axis("y")

	// AxisZ is the anterior-posterior axis.
	AxisZ = Axis("z")

	// AxisMagnitude is the euclidean norm of the three axes.
	AxisMagnitude = Axis("magnitude")
)

// ErrTooFewSamples indicates there are not enough samples in the
// reading to compute a sample rate.
var ErrTooFewSamples = errors.New("gait: too few samples")

// ErrUnknownAxis indicates the requested axis does not exist.
var ErrUnknownAxis = errors.New("gait: unknown axis")

// Reading is a raw accelerometer reading: one timestamp and one
// acceleration vector per sample.
type Reading struct {
	// T contains the sample timestamps (s).
	T []float64

	// X contains the mediolateral accelerations.
	X []float64

	// Y contains the vertical accelerations.
	Y []float64

	// Z contains the anterior-posterior accelerations.
	Z []float64
}

// vector3 is a three-axis sample in the raw JSON.
type vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// accelSample is one sample of the plain accelerometer format, where
// the acceleration components live at the top level.
type accelSample struct {
	Timestamp float64 `json:"timestamp"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
}

// deviceMotionSample is one sample of the device-motion format, where
// the gravity-free acceleration lives under userAcceleration.
type deviceMotionSample struct {
	Timestamp        float64 `json:"timestamp"`
	UserAcceleration vector3 `json:"userAcceleration"`
}

// ReadAccelJSON reads a raw accelerometer reading from the given JSON
// file. When deviceMotion is true we expect the device-motion format
// (acceleration under the userAcceleration key) rather than the plain
// accelerometer format (acceleration at the top level).
func ReadAccelJSON(path string, deviceMotion bool) (*Reading, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reading := &Reading{}
	if deviceMotion {
		var samples []deviceMotionSample
		if err := json.Unmarshal(data, &samples); err != nil {
			return nil, err
		}
		for _, s := range samples {
			reading.T = append(reading.T, s.Timestamp)
			reading.X = append(reading.X, s.UserAcceleration.X)
			reading.Y = append(reading.Y, s.UserAcceleration.Y)
			reading.Z = append(reading.Z, s.UserAcceleration.Z)
		}
		return reading, nil
	}
	var samples []accelSample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, err
	}
	for _, s := range samples {
		reading.T = append(reading.T, s.Timestamp)
		reading.X = append(reading.X, s.X)
		reading.Y = append(reading.Y, s.Y)
		reading.Z = append(reading.Z, s.Z)
	}
	return reading, nil
}

// Series projects the reading onto the given axis and returns the
// resulting time series, skipping the first start samples, which is
// where the subject is typically still fumbling with the phone.
func (r *Reading) Series(axis Axis, start int) (*model.GaitSeries, error) {
	var data []float64
	switch axis {
	case AxisX:
		data = r.X
	case AxisY:
		data = r.Y
	case AxisZ:
		data = r.Z
	case AxisMagnitude:
		for idx := range r.X {
			v := math.Sqrt(r.X[idx]*r.X[idx] + r.Y[idx]*r.Y[idx] + r.Z[idx]*r.Z[idx])
			data = append(data, v)
		}
	default:
		return nil, ErrUnknownAxis
	}
	if start < 0 {
		start = 0
	}
	if len(data) <= start+1 {
		return nil, ErrTooFewSamples
	}
	data = data[start:]
	timestamps := r.T[start:]
	duration := timestamps[len(timestamps)-1] - timestamps[0]
	if duration <= 0 {
		return nil, ErrTooFewSamples
	}
	return &model.GaitSeries{
		Data:       data,
		Timestamps: timestamps,
		SampleRate: float64(len(timestamps)) / duration,
		Duration:   duration,
	}, nil
}
