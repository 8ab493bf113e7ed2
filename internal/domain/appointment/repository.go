package appointment

import (
	"context"
	"time"

	"github.com/glowdesk/salon-platform/internal/models"
)

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	// -------- Location --------
	GetLocation(
		ctx context.Context,
		locationID uint,
		businessID uint,
	) (*models.Location, error)

	ListLocationIDs(
		ctx context.Context,
		businessID uint,
	) ([]uint, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	GetServices(
		ctx context.Context,
		businessID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		businessID uint,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		businessID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		serviceIDs []uint,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Series --------

	// CreateSeries persists the parent and all children in one
	// transaction; children get their ParentAppointmentID set once the
	// parent id is known. Either every row exists afterwards or none.
	CreateSeries(
		ctx context.Context,
		parent *models.Appointment,
		children []*models.Appointment,
		serviceIDs []uint,
	) error

	// CancelSeries flags the parent row and every row pointing at it as
	// cancelled, optionally only rows starting at or after now. Rows are
	// never deleted. Returns how many rows were flagged.
	CancelSeries(
		ctx context.Context,
		parentID uint,
		futureOnly bool,
		now time.Time,
	) (int64, error)

	ListSeries(
		ctx context.Context,
		parentID uint,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentForStaff(
		ctx context.Context,
		appointmentID uint,
		staffID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListAppointmentsForDay(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	IsWithinWorkingHours(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		locationIDs []uint,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
