package validators

import (
	"fmt"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"

	"github.com/go-playground/validator/v10"
)

type houseValidator struct {
	validate *validator.Validate
}

func NewHouseValidator() HouseValidator {
	return &houseValidator{validate: validator.New()}
}

func (v *houseValidator) ValidateCreate(req *models.CreateHouseRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return apperrors.NewParamError("invalid house", err)
	}
	if req.MaxDays != 0 && req.MaxDays < req.MinDays {
		return apperrors.NewParamError(fmt.Sprintf("max_days %d is below min_days %d", req.MaxDays, req.MinDays), nil)
	}
	return nil
}
