package validators

import (
	"fmt"
	"strings"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
)

type orderValidator struct{}

func NewOrderValidator() OrderValidator {
	return &orderValidator{}
}

func (v *orderValidator) ValidateCreate(req models.CreateOrderRequest) (BookingWindow, error) {
	if req.HouseID <= 0 || req.StartDate == "" || req.EndDate == "" {
		return BookingWindow{}, apperrors.NewParamError("house_id, start_date and end_date are required", nil)
	}
	begin, err := ParseDate(req.StartDate)
	if err != nil {
		return BookingWindow{}, err
	}
	end, err := ParseDate(req.EndDate)
	if err != nil {
		return BookingWindow{}, err
	}
	if begin.After(end) {
		return BookingWindow{}, invalidRange(req.StartDate, req.EndDate)
	}
	return BookingWindow{Begin: begin, End: end, Days: StayDays(begin, end)}, nil
}

// ValidateAction checks the action and the review text before any state is read.
// The reject reason is checked later by ValidateRejectReason.
func (v *orderValidator) ValidateAction(req models.OrderActionRequest) error {
	switch req.Action {
	case models.ActionAccept, models.ActionReject:
		return nil
	case models.ActionComment:
		if strings.TrimSpace(req.Comment) == "" {
			return apperrors.NewParamError("comment requires text", nil)
		}
		return nil
	default:
		return apperrors.NewParamError(fmt.Sprintf("unknown action %q", req.Action), nil)
	}
}

func (v *orderValidator) ValidateRejectReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewParamError("reject requires a reason", nil)
	}
	return nil
}
