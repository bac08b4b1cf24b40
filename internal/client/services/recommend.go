package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/api"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/models"
	"github.com/pocketfarm/pocketfarm-cli/internal/logging"
)

// RecommendationService wraps the recommendation endpoints: fetching crop
// suggestions for a set of growing conditions and resolving the companion
// crops of a single suggestion.
type RecommendationService interface {
	Recommend(ctx context.Context, query models.RecommendationQuery) ([]models.Crop, error)
	CompanionDetails(ctx context.Context, crop models.Crop) ([]models.Crop, error)
}

type recommendationService struct {
	client api.Client
	log    logging.Logger
}

func NewRecommendationService(client api.Client, log logging.Logger) RecommendationService {
	return &recommendationService{client: client, log: log}
}

func (s *recommendationService) Recommend(ctx context.Context, query models.RecommendationQuery) ([]models.Crop, error) {
	return s.client.Recommend(ctx, query)
}

// companionNames lists the companion crop names attached to a suggestion,
// preferring the resolved companion_crops list over the raw metadata pair.
func companionNames(crop models.Crop) []string {
	if len(crop.CompanionCrops) > 0 {
		return crop.CompanionCrops
	}
	var names []string
	if info := crop.RecommendedInfo; info != nil {
		if info.CompanionCrop1 != "" {
			names = append(names, info.CompanionCrop1)
		}
		if info.CompanionCrop2 != "" {
			names = append(names, info.CompanionCrop2)
		}
	}
	return names
}

// CompanionDetails fetches the details of every companion of crop
// concurrently and joins before returning. A companion that fails to resolve
// is logged and filtered out; it never fails the batch.
func (s *recommendationService) CompanionDetails(ctx context.Context, crop models.Crop) ([]models.Crop, error) {
	names := companionNames(crop)
	if len(names) == 0 {
		return nil, nil
	}

	results := make([]*models.Crop, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			detail, err := s.client.GetCrop(ctx, name)
			if err != nil {
				s.log.Warn(ctx, "companion lookup failed", "crop", name, "error", err)
				return nil
			}
			results[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	companions := make([]models.Crop, 0, len(names))
	for _, detail := range results {
		if detail != nil {
			companions = append(companions, *detail)
		}
	}
	return companions, nil
}
