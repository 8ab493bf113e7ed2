package appointment

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/models"
)

// fakeRepo is an in-memory domain.Repository for usecase tests.
type fakeRepo struct {
	businesses []models.Business
	locations  []models.Location
	services   []models.Service
	clients    []models.Client
	hours      []models.WorkingHours

	appointments []*models.Appointment
	serviceRows  []models.AppointmentService

	nextID uint

	failCreateAfter int // create the Nth appointment row fails; 0 disables
	created         int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1}
}

func (f *fakeRepo) nextPK() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeRepo) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	for i := range f.businesses {
		if f.businesses[i].ID == id {
			return &f.businesses[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetBusinessBySlug(_ context.Context, slug string) (*models.Business, error) {
	for i := range f.businesses {
		if f.businesses[i].Slug == slug {
			return &f.businesses[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetLocation(_ context.Context, locationID, businessID uint) (*models.Location, error) {
	for i := range f.locations {
		if f.locations[i].ID == locationID && f.locations[i].BusinessID == businessID {
			return &f.locations[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListLocationIDs(_ context.Context, businessID uint) ([]uint, error) {
	var ids []uint
	for _, loc := range f.locations {
		if loc.BusinessID == businessID {
			ids = append(ids, loc.ID)
		}
	}
	return ids, nil
}

func (f *fakeRepo) GetService(_ context.Context, businessID, serviceID uint) (*models.Service, error) {
	for i := range f.services {
		if f.services[i].ID == serviceID && f.services[i].BusinessID == businessID {
			return &f.services[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetServices(_ context.Context, businessID uint, serviceIDs []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range serviceIDs {
		for i := range f.services {
			if f.services[i].ID == id && f.services[i].BusinessID == businessID {
				out = append(out, f.services[i])
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) GetClient(_ context.Context, businessID, clientID uint) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].ID == clientID && f.clients[i].BusinessID == businessID {
			return &f.clients[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, businessID uint, name, phone, email string) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].BusinessID == businessID && f.clients[i].Phone == phone {
			return &f.clients[i], nil
		}
	}
	client := models.Client{
		ID:         f.nextPK(),
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}
	f.clients = append(f.clients, client)
	return &f.clients[len(f.clients)-1], nil
}

func (f *fakeRepo) createRow(ap *models.Appointment, serviceIDs []uint) error {
	f.created++
	if f.failCreateAfter > 0 && f.created >= f.failCreateAfter {
		return gorm.ErrInvalidData
	}
	ap.ID = f.nextPK()
	f.appointments = append(f.appointments, ap)
	for _, svcID := range serviceIDs {
		f.serviceRows = append(f.serviceRows, models.AppointmentService{
			ID:            f.nextPK(),
			AppointmentID: ap.ID,
			ServiceID:     svcID,
		})
	}
	return nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment, serviceIDs []uint) error {
	return f.createRow(ap, serviceIDs)
}

func (f *fakeRepo) AssertNoTimeConflict(_ context.Context, staffID uint, start, end time.Time) error {
	return nil
}

func (f *fakeRepo) CreateSeries(
	_ context.Context,
	parent *models.Appointment,
	children []*models.Appointment,
	serviceIDs []uint,
) error {
	// all-or-nothing, mirroring the transactional repository
	snapshotApps := len(f.appointments)
	snapshotRows := len(f.serviceRows)

	if err := f.createRow(parent, serviceIDs); err != nil {
		return err
	}
	for _, child := range children {
		child.ParentAppointmentID = &parent.ID
		if err := f.createRow(child, serviceIDs); err != nil {
			f.appointments = f.appointments[:snapshotApps]
			f.serviceRows = f.serviceRows[:snapshotRows]
			return err
		}
	}
	return nil
}

func (f *fakeRepo) CancelSeries(_ context.Context, parentID uint, futureOnly bool, now time.Time) (int64, error) {
	var count int64
	for _, ap := range f.appointments {
		inSeries := ap.ID == parentID ||
			(ap.ParentAppointmentID != nil && *ap.ParentAppointmentID == parentID)
		if !inSeries {
			continue
		}
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if futureOnly && ap.StartTime.Before(now) {
			continue
		}
		ap.Status = string(domain.StatusCancelled)
		cancelledAt := now
		ap.CancelledAt = &cancelledAt
		count++
	}
	return count, nil
}

func (f *fakeRepo) ListSeries(_ context.Context, parentID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ID == parentID ||
			(ap.ParentAppointmentID != nil && *ap.ParentAppointmentID == parentID) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, appointmentID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetAppointmentForStaff(_ context.Context, appointmentID, staffID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.StaffID == staffID {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, _ *models.Appointment) error {
	return nil
}

func (f *fakeRepo) GetWorkingHours(_ context.Context, staffID uint, weekday int) (*models.WorkingHours, error) {
	for i := range f.hours {
		if f.hours[i].StaffID == staffID && f.hours[i].Weekday == weekday {
			return &f.hours[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.StaffID == staffID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) IsWithinWorkingHours(_ context.Context, _ uint, _, _ time.Time) (bool, error) {
	return true, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, locationIDs []uint, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if staffID != 0 && ap.StaffID != staffID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
