package validators

import (
	"fmt"
	"time"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
)

// ParseDate parses a YYYY-MM-DD calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(models.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.NewParamErrorWithMessage(fmt.Sprintf("invalid date %q", s), apperrors.MsgInvalidDate, err)
	}
	return d, nil
}

// ParseOptionalRange parses either bound when present and rejects start after end.
func ParseOptionalRange(startStr, endStr string) (start, end *time.Time, err error) {
	if startStr != "" {
		d, err := ParseDate(startStr)
		if err != nil {
			return nil, nil, err
		}
		start = &d
	}
	if endStr != "" {
		d, err := ParseDate(endStr)
		if err != nil {
			return nil, nil, err
		}
		end = &d
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, invalidRange(startStr, endStr)
	}
	return start, end, nil
}

// StayDays counts the calendar days of an inclusive range.
func StayDays(begin, end time.Time) int {
	return int(end.Sub(begin)/(24*time.Hour)) + 1
}

func invalidRange(startStr, endStr string) error {
	return apperrors.NewParamErrorWithMessage(fmt.Sprintf("start date %s is after end date %s", startStr, endStr), apperrors.MsgInvalidDate, nil)
}
