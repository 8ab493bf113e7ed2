package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	scopedomain "github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *AppointmentGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&biz).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

// --------------------------------------------------
// Location
// --------------------------------------------------

func (r *AppointmentGormRepository) GetLocation(
	ctx context.Context,
	locationID uint,
	businessID uint,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", locationID, businessID).
		First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *AppointmentGormRepository) ListLocationIDs(
	ctx context.Context,
	businessID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("business_id = ?", businessID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetServices(
	ctx context.Context,
	businessID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id IN ?", businessID, serviceIDs).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	businessID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", clientID, businessID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	businessID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment re-checks the slot under a row lock inside the
// write transaction; the usecase-level conflict check is only a fast
// pre-check and two concurrent bookings would both pass it.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	serviceIDs []uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.StaffID,
				[]string{string(domain.StatusBooked), string(domain.StatusConfirmed)},
				ap.EndTime,
				ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		if err := tx.Create(ap).Error; err != nil {
			return err
		}
		return createServiceRows(tx, ap.ID, serviceIDs)
	})
}

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			staffID,
			[]string{string(domain.StatusBooked), string(domain.StatusConfirmed)},
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

// --------------------------------------------------
// Series
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateSeries(
	ctx context.Context,
	parent *models.Appointment,
	children []*models.Appointment,
	serviceIDs []uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(parent).Error; err != nil {
			return err
		}
		if err := createServiceRows(tx, parent.ID, serviceIDs); err != nil {
			return err
		}

		for _, child := range children {
			child.ParentAppointmentID = &parent.ID
			if err := tx.Create(child).Error; err != nil {
				return err
			}
			if err := createServiceRows(tx, child.ID, serviceIDs); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *AppointmentGormRepository) CancelSeries(
	ctx context.Context,
	parentID uint,
	futureOnly bool,
	now time.Time,
) (int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("(id = ? OR parent_appointment_id = ?)", parentID, parentID).
		Where("status <> ?", string(domain.StatusCancelled))

	if futureOnly {
		q = q.Where("start_time >= ?", now)
	}

	res := q.Updates(map[string]any{
		"status":       string(domain.StatusCancelled),
		"cancelled_at": now,
	})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

func (r *AppointmentGormRepository) ListSeries(
	ctx context.Context,
	parentID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? OR parent_appointment_id = ?", parentID, parentID).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func createServiceRows(tx *gorm.DB, appointmentID uint, serviceIDs []uint) error {
	for _, svcID := range serviceIDs {
		row := models.AppointmentService{
			AppointmentID: appointmentID,
			ServiceID:     svcID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// Appointment (Cancel / Complete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForStaff(
	ctx context.Context,
	appointmentID uint,
	staffID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND staff_id = ?", appointmentID, staffID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	staffID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND weekday = ?", staffID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"staff_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			staffID,
			[]string{string(domain.StatusBooked), string(domain.StatusConfirmed)},
			start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// IsWithinWorkingHours fetches the staff member's window for the day
// and defers the actual check to the domain rule. A missing row means
// the staff member does not work that weekday.
func (r *AppointmentGormRepository) IsWithinWorkingHours(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	weekday := int(start.Weekday())

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND weekday = ?", staffID, weekday).
		First(&wh).Error; err != nil {
		return false, nil
	}

	return domain.WithinWorkingHours(&wh, start, end)
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	locationIDs []uint,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("start_time >= ? AND start_time < ?", start, end)

	if len(locationIDs) > 0 {
		q = q.Where("location_id IN ?", locationIDs)
	}
	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time checks
var (
	_ domain.Repository          = (*AppointmentGormRepository)(nil)
	_ scopedomain.LocationLister = (*AppointmentGormRepository)(nil)
)
