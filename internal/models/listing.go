package models

import (
	"strconv"
	"time"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

// Sort keys accepted by the listing query.
const (
	SortNew      = "new"
	SortBooking  = "booking"
	SortPriceInc = "price-inc"
	SortPriceDes = "price-des"
)

// ListingQuery is a validated listing request. Nil fields are absent filters.
type ListingQuery struct {
	AreaID    *int64
	StartDate *time.Time
	EndDate   *time.Time
	SortKey   string
	Page      int
}

// HasDateWindow reports whether any date bound is set.
func (q ListingQuery) HasDateWindow() bool {
	return q.StartDate != nil || q.EndDate != nil
}

// AreaParam returns the area filter as it appears in the cache key.
func (q ListingQuery) AreaParam() string {
	if q.AreaID == nil {
		return ""
	}
	return strconv.FormatInt(*q.AreaID, 10)
}

func (q ListingQuery) StartParam() string {
	return formatDate(q.StartDate)
}

func (q ListingQuery) EndParam() string {
	return formatDate(q.EndDate)
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

// ListingPage is one page of the listing, serialized verbatim into the cache.
type ListingPage struct {
	Houses      []HouseSummary `json:"houses"`
	TotalPage   int            `json:"total_page"`
	CurrentPage int            `json:"current_page"`
}

// Cacheable reports whether the page lies inside the result set. Pages past
// the end are answered but never cached.
func (p ListingPage) Cacheable() bool {
	return p.CurrentPage <= p.TotalPage
}
