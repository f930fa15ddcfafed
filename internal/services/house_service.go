package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
	"ihome-rentals/internal/repositories"
	"ihome-rentals/internal/transformers"
	"ihome-rentals/internal/validators"
	"ihome-rentals/pkg/cache"
	"ihome-rentals/pkg/config"
	"ihome-rentals/pkg/logger"
)

// Cache entry names used as metric labels.
const (
	entryAreaInfo  = "area_info"
	entryHouseInfo = "house_info"
	entryHouseList = "house_list"
	entryHomePage  = "home_page"
)

// HouseSettings are the tunables of the house read paths.
type HouseSettings struct {
	AreaInfoTTL          time.Duration
	HouseDetailTTL       time.Duration
	HouseListTTL         time.Duration
	HomePageTTL          time.Duration
	HomePageMaxHouses    int
	DetailCommentDisplay int
}

// HouseSettingsFromConfig reads the house settings from the application config.
func HouseSettingsFromConfig(cfg *config.Config) HouseSettings {
	return HouseSettings{
		AreaInfoTTL:          cfg.AreaInfoTTL(),
		HouseDetailTTL:       cfg.HouseDetailTTL(),
		HouseListTTL:         cfg.HouseListTTL(),
		HomePageTTL:          cfg.HomePageTTL(),
		HomePageMaxHouses:    cfg.Listing.HomePageMaxHouses,
		DetailCommentDisplay: cfg.Listing.DetailCommentDisplay,
	}
}

type HouseService struct {
	houses     repositories.HouseRepository
	areas      repositories.AreaRepository
	planner    *ListingPlanner
	cacheAside *CacheAside
	trans      transformers.HouseTransformer
	listing    validators.ListingValidator
	validator  validators.HouseValidator
	settings   HouseSettings
}

func NewHouseService(
	houses repositories.HouseRepository,
	areas repositories.AreaRepository,
	planner *ListingPlanner,
	cacheAside *CacheAside,
	trans transformers.HouseTransformer,
	listing validators.ListingValidator,
	validator validators.HouseValidator,
	settings HouseSettings,
) *HouseService {
	return &HouseService{
		houses:     houses,
		areas:      areas,
		planner:    planner,
		cacheAside: cacheAside,
		trans:      trans,
		listing:    listing,
		validator:  validator,
		settings:   settings,
	}
}

// ListHouses returns the serialized listing page for the raw query parameters.
// Pages inside the result set are cached per filter under one hash.
func (s *HouseService) ListHouses(ctx context.Context, params validators.ListingParams) ([]byte, error) {
	q, err := s.listing.ValidateListing(params)
	if err != nil {
		return nil, err
	}

	key := cache.HouseListKey(q.AreaParam(), q.StartParam(), q.EndParam(), q.SortKey)
	return s.cacheAside.GetOrComputeField(ctx, entryHouseList, key, cache.HouseListField(q.Page), s.settings.HouseListTTL,
		func(ctx context.Context) (interface{}, error) {
			return s.planner.Plan(ctx, q)
		})
}

// GetHouseDetail returns the serialized detail record of a house.
func (s *HouseService) GetHouseDetail(ctx context.Context, houseID int64) ([]byte, error) {
	if houseID <= 0 {
		return nil, apperrors.NewParamError(fmt.Sprintf("invalid house id %d", houseID), nil)
	}
	return s.cacheAside.GetOrCompute(ctx, entryHouseInfo, cache.HouseInfoKey(houseID), s.settings.HouseDetailTTL,
		func(ctx context.Context) (interface{}, error) {
			rec, err := s.houses.FindDetail(ctx, houseID, s.settings.DetailCommentDisplay)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNoDataError(fmt.Sprintf("house %d not found", houseID), err)
			}
			if err != nil {
				logger.GlobalLogger.Errorf("house detail query failed: house_id=%d err=%v", houseID, err)
				return nil, apperrors.NewDBError("failed to query house detail", err)
			}
			return s.trans.Detail(rec), nil
		})
}

// ListAreas returns the serialized area directory.
func (s *HouseService) ListAreas(ctx context.Context) ([]byte, error) {
	return s.cacheAside.GetOrCompute(ctx, entryAreaInfo, cache.AreaInfoKey(), s.settings.AreaInfoTTL, s.loadAreas)
}

// RefreshAreas reloads the area directory into the cache.
func (s *HouseService) RefreshAreas(ctx context.Context) error {
	return s.cacheAside.Refresh(ctx, entryAreaInfo, cache.AreaInfoKey(), s.settings.AreaInfoTTL, s.loadAreas)
}

func (s *HouseService) loadAreas(ctx context.Context) (interface{}, error) {
	areas, err := s.areas.FindAll(ctx)
	if err != nil {
		logger.GlobalLogger.Errorf("area query failed: %v", err)
		return nil, apperrors.NewDBError("failed to query areas", err)
	}
	return areas, nil
}

// HomeIndex returns the serialized home page houses: the most booked houses that have an index image.
func (s *HouseService) HomeIndex(ctx context.Context) ([]byte, error) {
	return s.cacheAside.GetOrCompute(ctx, entryHomePage, cache.HomePageKey(), s.settings.HomePageTTL,
		func(ctx context.Context) (interface{}, error) {
			rows, err := s.houses.TopByOrderCount(ctx, s.settings.HomePageMaxHouses)
			if err != nil {
				logger.GlobalLogger.Errorf("home page query failed: %v", err)
				return nil, apperrors.NewDBError("failed to query home page houses", err)
			}
			return s.trans.Summaries(rows), nil
		})
}

// CreateHouse publishes a house owned by actorID and returns its id.
func (s *HouseService) CreateHouse(ctx context.Context, actorID int64, req *models.CreateHouseRequest) (int64, error) {
	if err := s.validator.ValidateCreate(req); err != nil {
		return 0, err
	}
	house := s.trans.NewHouse(actorID, req)
	if err := s.houses.Create(ctx, house, req.Facilities); err != nil {
		logger.GlobalLogger.Errorf("house insert failed: user_id=%d err=%v", actorID, err)
		return 0, apperrors.NewDBError("failed to save house", err)
	}
	logger.GlobalLogger.Printf("house %d published by user %d", house.ID, actorID)
	return house.ID, nil
}

// ListOwnerHouses returns the summaries of every house owned by actorID.
func (s *HouseService) ListOwnerHouses(ctx context.Context, actorID int64) ([]models.HouseSummary, error) {
	rows, err := s.houses.ListByOwner(ctx, actorID)
	if err != nil {
		logger.GlobalLogger.Errorf("owner houses query failed: user_id=%d err=%v", actorID, err)
		return nil, apperrors.NewDBError("failed to query houses", err)
	}
	return s.trans.Summaries(rows), nil
}
