package validators

import (
	"time"

	"ihome-rentals/internal/models"
)

// ListingParams are the raw listing query parameters.
type ListingParams struct {
	AreaID    string
	StartDate string
	EndDate   string
	SortKey   string
	Page      string
}

type ListingValidator interface {
	ValidateListing(params ListingParams) (models.ListingQuery, error)
}

// BookingWindow is a validated inclusive stay.
type BookingWindow struct {
	Begin time.Time
	End   time.Time
	Days  int
}

type OrderValidator interface {
	ValidateCreate(req models.CreateOrderRequest) (BookingWindow, error)
	ValidateAction(req models.OrderActionRequest) error
	ValidateRejectReason(reason string) error
}

type HouseValidator interface {
	ValidateCreate(req *models.CreateHouseRequest) error
}
