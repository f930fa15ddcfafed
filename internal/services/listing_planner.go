package services

import (
	"context"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
	"ihome-rentals/internal/repositories"
	"ihome-rentals/internal/transformers"
	"ihome-rentals/pkg/logger"
)

// ListingPlanner turns a validated listing query into one page of house summaries.
type ListingPlanner struct {
	houses       repositories.HouseRepository
	availability *AvailabilityChecker
	trans        transformers.HouseTransformer
	pageSize     int
}

func NewListingPlanner(houses repositories.HouseRepository, availability *AvailabilityChecker, trans transformers.HouseTransformer, pageSize int) *ListingPlanner {
	if pageSize <= 0 {
		pageSize = 2
	}
	return &ListingPlanner{houses: houses, availability: availability, trans: trans, pageSize: pageSize}
}

// Plan runs the query. Any store failure aborts the page with a DB error.
func (p *ListingPlanner) Plan(ctx context.Context, q models.ListingQuery) (*models.ListingPage, error) {
	var exclude []int64
	if q.HasDateWindow() {
		ids, err := p.availability.ConflictingHouseIDs(ctx, q.StartDate, q.EndDate)
		if err != nil {
			logger.GlobalLogger.Errorf("listing conflict lookup failed: %v", err)
			return nil, apperrors.NewDBError("failed to compute unavailable houses", err)
		}
		exclude = ids
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	rows, total, err := p.houses.Search(ctx, repositories.HouseFilter{
		AreaID:     q.AreaID,
		ExcludeIDs: exclude,
		SortKey:    q.SortKey,
		Offset:     (page - 1) * p.pageSize,
		Limit:      p.pageSize,
	})
	if err != nil {
		logger.GlobalLogger.Errorf("listing search failed: %v", err)
		return nil, apperrors.NewDBError("failed to search houses", err)
	}

	return &models.ListingPage{
		Houses:      p.trans.Summaries(rows),
		TotalPage:   (total + p.pageSize - 1) / p.pageSize,
		CurrentPage: page,
	}, nil
}
