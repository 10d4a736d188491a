package gait

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/shellx/shellxtesting"
)

func TestDefaultParams(t *testing.T) {
	t.Run("with a typical sample rate", func(t *testing.T) {
		params := DefaultParams(100)
		expect := &model.GaitParams{
			StrideFraction: 1.0 / 8.0,
			Threshold1:     0.5,
			Threshold2:     0.2,
			Order:          4,
			Cutoff:         10,
		}
		if diff := cmp.Diff(expect, params); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with a very low sample rate", func(t *testing.T) {
		params := DefaultParams(5)
		if params.Cutoff != 1 {
			t.Fatal("unexpected cutoff", params.Cutoff)
		}
	})
}

func TestCommandExtractor(t *testing.T) {
	series := &model.GaitSeries{
		Data:       []float64{3, 4, 0, 4, 3},
		Timestamps: []float64{0.0, 0.1, 0.2, 0.3, 0.4},
		SampleRate: 12.5,
		Duration:   0.4,
	}
	params := DefaultParams(series.SampleRate)

	t.Run("on success", func(t *testing.T) {
		routineOutput := &model.GaitFeatures{
			NumberOfSteps:      6,
			Cadence:            90,
			Velocity:           1.2,
			AvgStepLength:      0.8,
			AvgStrideLength:    1.6,
			AvgStepDuration:    0.66,
			SdStepDurations:    0.05,
			AvgNumberOfStrides: 3,
			AvgStrideDuration:  1.33,
			SdStrideDurations:  0.08,
			StepRegularity:     0.9,
			StrideRegularity:   0.85,
			Symmetry:           0.95,
		}
		var gotRequest extractorRequest
		library := &shellxtesting.Library{
			MockCmdOutput: func(c *exec.Cmd) ([]byte, error) {
				argv := shellxtesting.MustArgv(c)
				if argv[0] != "/usr/bin/pygait" {
					t.Fatal("unexpected command", argv[0])
				}
				if argv[1] != "--json" {
					t.Fatal("unexpected argument", argv[1])
				}
				data, err := os.ReadFile(argv[len(argv)-1])
				if err != nil {
					t.Fatal(err)
				}
				if err := json.Unmarshal(data, &gotRequest); err != nil {
					t.Fatal(err)
				}
				return json.Marshal(routineOutput)
			},
			MockLookPath: func(file string) (string, error) {
				return "/usr/bin/" + file, nil
			},
		}
		ce := &CommandExtractor{
			Command: "pygait",
			Args:    []string{"--json"},
			Logger:  model.DiscardLogger,
		}
		var (
			features *model.GaitFeatures
			err      error
		)
		shellxtesting.WithCustomLibrary(library, func() {
			features, err = ce.Extract(context.Background(), series, params)
		})
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(series, gotRequest.Series); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff(params, gotRequest.Params); diff != "" {
			t.Fatal(diff)
		}
		// the routine's metrics come back verbatim and we fill in the RMS
		expectRMS := math.Sqrt((9 + 16 + 0 + 16 + 9) / 5.0)
		if math.Abs(features.RMS-expectRMS) > 1e-9 {
			t.Fatal("unexpected RMS", features.RMS)
		}
		features.RMS = 0
		if diff := cmp.Diff(routineOutput, features); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ce := &CommandExtractor{Command: "pygait", Logger: model.DiscardLogger}
		features, err := ce.Extract(ctx, series, params)
		if !errors.Is(err, context.Canceled) {
			t.Fatal("unexpected error", err)
		}
		if features != nil {
			t.Fatal("expected nil features")
		}
	})

	t.Run("when the routine fails", func(t *testing.T) {
		expected := errors.New("exit status 2")
		library := &shellxtesting.Library{
			MockCmdOutput: func(c *exec.Cmd) ([]byte, error) {
				return nil, expected
			},
			MockLookPath: func(file string) (string, error) {
				return "/usr/bin/" + file, nil
			},
		}
		ce := &CommandExtractor{Command: "pygait", Logger: model.DiscardLogger}
		shellxtesting.WithCustomLibrary(library, func() {
			features, err := ce.Extract(context.Background(), series, params)
			if !errors.Is(err, expected) {
				t.Fatal("unexpected error", err)
			}
			if features != nil {
				t.Fatal("expected nil features")
			}
		})
	})

	t.Run("when the routine prints garbage", func(t *testing.T) {
		library := &shellxtesting.Library{
			MockCmdOutput: func(c *exec.Cmd) ([]byte, error) {
				return []byte("not json"), nil
			},
			MockLookPath: func(file string) (string, error) {
				return "/usr/bin/" + file, nil
			},
		}
		ce := &CommandExtractor{Command: "pygait", Logger: model.DiscardLogger}
		shellxtesting.WithCustomLibrary(library, func() {
			features, err := ce.Extract(context.Background(), series, params)
			if err == nil {
				t.Fatal("expected an error")
			}
			if features != nil {
				t.Fatal("expected nil features")
			}
		})
	})
}

func TestRMS(t *testing.T) {
	t.Run("with samples", func(t *testing.T) {
		got := RMS([]float64{3, 4})
		expect := math.Sqrt(12.5)
		if math.Abs(got-expect) > 1e-9 {
			t.Fatal("unexpected RMS", got)
		}
	})

	t.Run("with no samples", func(t *testing.T) {
		if got := RMS(nil); got != 0 {
			t.Fatal("unexpected RMS", got)
		}
	})
}

func TestFeaturesRow(t *testing.T) {
	features := &model.GaitFeatures{
		NumberOfSteps: 6,
		Cadence:       90,
		RMS:           1.5,
	}
	row := FeaturesRow(features)
	if len(row.Header) != len(row.Values) {
		t.Fatal("header and values length mismatch")
	}
	// downstream feature tables are keyed by these names
	expectHeader := []string{
		"number_of_steps",
		"cadence",
		"velocity",
		"avg_step_length",
		"avg_stride_length",
		"avg_step_duration",
		"sd_step_durations",
		"avg_number_of_strides",
		"avg_stride_duration",
		"sd_stride_durations",
		"step_regularity",
		"stride_regularity",
		"symmetry",
		"RMS",
	}
	if diff := cmp.Diff(expectHeader, row.Header); diff != "" {
		t.Fatal(diff)
	}
	if row.Values[0] != "6" {
		t.Fatal("unexpected number of steps", row.Values[0])
	}
	if row.Values[1] != "90" {
		t.Fatal("unexpected cadence", row.Values[1])
	}
	if row.Values[len(row.Values)-1] != "1.5" {
		t.Fatal("unexpected RMS", row.Values[len(row.Values)-1])
	}
}
