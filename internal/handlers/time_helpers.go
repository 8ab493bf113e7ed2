package handlers

import (
	"time"

	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/timezone"
)

// Date and time strings on the wire are interpreted in the business
// timezone, never the server's.

func locationFromBusiness(biz *models.Business) *time.Location {
	if biz == nil {
		return timezone.Location("")
	}
	return timezone.Location(biz.Timezone)
}

func parseDateInBusiness(biz *models.Business, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromBusiness(biz),
	)
}

func parseDateTimeInBusiness(
	biz *models.Business,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromBusiness(biz),
	)
}
