package insight

import (
	"time"

	domainerror "github.com/ledgerone/backend/internal/domain/error"
)

// monthLayout is the wire format for month parameters.
const monthLayout = "2006-01"

// validateMonth rejects anything that does not parse as a valid year-month.
func validateMonth(month string) error {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return domainerror.NewInsightError(
			domainerror.ErrCodeInvalidMonthFormat,
			"invalid month format, use YYYY-MM",
			domainerror.ErrInvalidMonthFormat,
		)
	}
	return nil
}
