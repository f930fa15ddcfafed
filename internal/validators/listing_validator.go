package validators

import (
	"fmt"
	"strconv"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
)

type listingValidator struct{}

func NewListingValidator() ListingValidator {
	return &listingValidator{}
}

func (v *listingValidator) ValidateListing(params ListingParams) (models.ListingQuery, error) {
	query := models.ListingQuery{SortKey: params.SortKey, Page: 1}
	if query.SortKey == "" {
		query.SortKey = models.SortNew
	}

	if params.AreaID != "" {
		aid, err := strconv.ParseInt(params.AreaID, 10, 64)
		if err != nil || aid <= 0 {
			return query, apperrors.NewParamError(fmt.Sprintf("invalid area id %q", params.AreaID), err)
		}
		query.AreaID = &aid
	}

	start, end, err := ParseOptionalRange(params.StartDate, params.EndDate)
	if err != nil {
		return query, err
	}
	query.StartDate, query.EndDate = start, end

	if params.Page != "" {
		page, err := strconv.Atoi(params.Page)
		if err != nil || page < 1 {
			return query, apperrors.NewParamErrorWithMessage(fmt.Sprintf("invalid page %q", params.Page), apperrors.MsgInvalidPage, err)
		}
		query.Page = page
	}
	return query, nil
}
