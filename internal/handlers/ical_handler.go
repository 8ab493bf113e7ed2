package handlers

import (
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/config"
	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/domain/recurrence"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/models"
)

// ICalHandler renders a recurring series as an iCalendar feed so
// clients can drop it into their own calendar app.
type ICalHandler struct {
	db     *gorm.DB
	config *config.Config
	lister scope.LocationLister
}

func NewICalHandler(db *gorm.DB, cfg *config.Config, lister scope.LocationLister) *ICalHandler {
	return &ICalHandler{db: db, config: cfg, lister: lister}
}

func (h *ICalHandler) ExportSeries(c *gin.Context) {
	_, biz, err := resolveBusinessScope(c)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	locScope, err := scope.ResolveLocations(c.Request.Context(), h.lister, biz, nil)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	parentID, ok := pathID(c)
	if !ok {
		return
	}

	var parent models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("Location").
		First(&parent, parentID).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if !locScope.Contains(parent.LocationID) {
		writeScopeError(c, scope.ErrLocationForbidden)
		return
	}

	if parent.RecurrenceRule == "" || parent.ParentAppointmentID != nil {
		httperr.BadRequest(c, "not_a_series", "Only the first occurrence of a series can be exported.")
		return
	}

	rule, err := recurrence.Parse(parent.RecurrenceRule)
	if err != nil {
		httperr.Internal(c, "invalid_recurrence_rule", "Stored recurrence rule is unreadable.")
		return
	}

	payload, err := buildSeriesCalendar(&parent, rule)
	if err != nil {
		httperr.Internal(c, "ical_failed", "Could not render the calendar.")
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="series-%d.ics"`, parent.ID),
	)
	c.String(http.StatusOK, payload)
}

// buildSeriesCalendar emits one VEVENT carrying the RRULE; calendar
// apps expand the occurrences themselves. Cancelled series still
// export, with the status carried on the event.
func buildSeriesCalendar(parent *models.Appointment, rule recurrence.Rule) (string, error) {
	rruleStr, err := rule.RRuleString()
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//glowdesk//salon-platform//EN")

	ev := cal.AddEvent(fmt.Sprintf("%s@glowdesk", parent.BookingRef))
	ev.SetDtStampTime(time.Now().UTC())
	ev.SetStartAt(parent.StartTime)
	ev.SetEndAt(parent.EndTime)

	summary := "Appointment"
	if parent.Service.Name != "" {
		summary = parent.Service.Name
	}
	ev.SetSummary(summary)

	if parent.Location.Name != "" {
		ev.SetLocation(parent.Location.Name)
	}
	if parent.Notes != "" {
		ev.SetDescription(parent.Notes)
	}
	if parent.Status == string(domain.StatusCancelled) {
		ev.SetStatus(ical.ObjectStatusCancelled)
	} else {
		ev.SetStatus(ical.ObjectStatusConfirmed)
	}

	ev.AddRrule(rruleStr)

	return cal.Serialize(), nil
}
