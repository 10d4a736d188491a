package mocks

import (
	"context"

	"github.com/mhealthx/extract-cli/internal/model"
)

// GaitExtractor allows mocking a gait extractor.
type GaitExtractor struct {
	MockExtract func(ctx context.Context, series *model.GaitSeries,
		params *model.GaitParams) (*model.GaitFeatures, error)
}

// Extract calls MockExtract.
func (ge *GaitExtractor) Extract(ctx context.Context, series *model.GaitSeries,
	params *model.GaitParams) (*model.GaitFeatures, error) {
	return ge.MockExtract(ctx, series, params)
}
