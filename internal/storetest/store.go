// Package storetest provides an in-memory store for handler and service tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"nailbook-backend/models"
	"nailbook-backend/utils"
)

// Store is an in-memory implementation of every store interface. It enforces
// the same unique and foreign-key rules as the postgres schema.
type Store struct {
	mu           sync.Mutex
	nextID       uint
	users        map[uint]*models.User
	services     map[uint]*models.Service
	techs        map[uint]*models.NailTech
	appointments map[uint]*models.Appointment
	reminders    []models.ReminderLog

	// FindHook runs inside FindTechAppointmentAt before the lookup.
	FindHook func()
}

func New() *Store {
	return &Store{
		users:        map[uint]*models.User{},
		services:     map[uint]*models.Service{},
		techs:        map[uint]*models.NailTech{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (f *Store) id() uint {
	f.nextID++
	return f.nextID
}

func (f *Store) FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ExternalID == externalID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.NotFound("User not found")
}

func (f *Store) UpsertUser(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.ExternalID == u.ExternalID {
			return nil
		}
	}
	u.ID = f.id()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *Store) ListServices(ctx context.Context) ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Service, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Active != out[j].Active {
			return out[i].Active
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *Store) GetService(ctx context.Context, id uint) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		return nil, utils.NotFound("Service not found")
	}
	cp := *s
	cp.DesignPriceOptions = append([]models.DesignPriceOption(nil), s.DesignPriceOptions...)
	return &cp, nil
}

func (f *Store) serviceNameTaken(name string, except uint) bool {
	for _, s := range f.services {
		if s.Name == name && s.ID != except {
			return true
		}
	}
	return false
}

func (f *Store) CreateService(ctx context.Context, svc *models.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.serviceNameTaken(svc.Name, 0) {
		return utils.Conflict("A service with this name already exists")
	}
	svc.ID = f.id()
	for i := range svc.DesignPriceOptions {
		svc.DesignPriceOptions[i].ID = f.id()
		svc.DesignPriceOptions[i].ServiceID = svc.ID
	}
	cp := *svc
	cp.DesignPriceOptions = append([]models.DesignPriceOption(nil), svc.DesignPriceOptions...)
	f.services[svc.ID] = &cp
	return nil
}

func (f *Store) UpdateService(ctx context.Context, svc *models.Service, replaceOptions bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.services[svc.ID]
	if !ok {
		return utils.NotFound("Service not found")
	}
	if f.serviceNameTaken(svc.Name, svc.ID) {
		return utils.Conflict("A service with this name already exists")
	}
	cp := *svc
	if replaceOptions {
		cp.DesignPriceOptions = nil
		for _, o := range svc.DesignPriceOptions {
			o.ID = f.id()
			o.ServiceID = svc.ID
			cp.DesignPriceOptions = append(cp.DesignPriceOptions, o)
		}
	} else {
		cp.DesignPriceOptions = current.DesignPriceOptions
	}
	f.services[svc.ID] = &cp
	return nil
}

func (f *Store) CountAppointmentsForService(ctx context.Context, serviceID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.appointments {
		if a.ServiceID == serviceID {
			n++
		}
	}
	return n, nil
}

func (f *Store) DeleteService(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[id]; !ok {
		return utils.NotFound("Service not found")
	}
	for _, a := range f.appointments {
		if a.ServiceID == id {
			return utils.Conflict("Service is referenced by appointments")
		}
	}
	delete(f.services, id)
	return nil
}

func (f *Store) ListNailTechs(ctx context.Context) ([]models.NailTech, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.NailTech, 0, len(f.techs))
	for _, t := range f.techs {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *Store) GetNailTech(ctx context.Context, id uint) (*models.NailTech, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.techs[id]
	if !ok {
		return nil, utils.NotFound("Nail tech not found")
	}
	cp := *t
	return &cp, nil
}

func (f *Store) FindNailTechByName(ctx context.Context, name string) (*models.NailTech, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.techs {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, utils.NotFound("Nail tech not found")
}

func (f *Store) CreateNailTech(ctx context.Context, tech *models.NailTech) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.techs {
		if t.Name == tech.Name {
			return utils.Conflict("Nail tech already exists")
		}
	}
	tech.ID = f.id()
	tech.CreatedAt = time.Now()
	cp := *tech
	f.techs[tech.ID] = &cp
	return nil
}

func (f *Store) FindTechAppointmentAt(ctx context.Context, nailTechID uint, at time.Time) (*models.Appointment, error) {
	if f.FindHook != nil {
		f.FindHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appointments {
		if a.NailTechID != nil && *a.NailTechID == nailTechID && a.ScheduledAt.Equal(at) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.NailTechID != nil {
		for _, existing := range f.appointments {
			if existing.NailTechID != nil && *existing.NailTechID == *a.NailTechID && existing.ScheduledAt.Equal(a.ScheduledAt) {
				return utils.Conflict("This nail tech is already booked at that time.")
			}
		}
	}
	a.ID = f.id()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *Store) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok {
		return nil, utils.NotFound("Appointment not found")
	}
	cp := *a
	return &cp, nil
}

func (f *Store) UpdateAppointmentStatus(ctx context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.appointments[a.ID]
	if !ok {
		return utils.NotFound("Appointment not found")
	}
	stored.Status = a.Status
	stored.FinishedAt = a.FinishedAt
	stored.TotalCents = a.TotalCents
	return nil
}

func (f *Store) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if filter.From != nil && a.ScheduledAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.ScheduledAt.Before(*filter.To) {
			continue
		}
		if filter.NailTechID != nil && (a.NailTechID == nil || *a.NailTechID != *filter.NailTechID) {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				match = match || a.Status == s
			}
			if !match {
				continue
			}
		}
		cp := *a
		if a.NailTechID != nil {
			if t, ok := f.techs[*a.NailTechID]; ok {
				tech := *t
				cp.NailTech = &tech
			}
		}
		if s, ok := f.services[a.ServiceID]; ok {
			svc := *s
			cp.Service = &svc
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (f *Store) HasSentReminder(ctx context.Context, appointmentID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reminders {
		if r.AppointmentID == appointmentID && r.Status == models.ReminderSent {
			return true, nil
		}
	}
	return false, nil
}

func (f *Store) CreateReminderLog(ctx context.Context, entry *models.ReminderLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = f.id()
	f.reminders = append(f.reminders, *entry)
	return nil
}

func (f *Store) ListReminderLogs(ctx context.Context, appointmentID *uint, limit int) ([]models.ReminderLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ReminderLog
	for i := len(f.reminders) - 1; i >= 0; i-- {
		r := f.reminders[i]
		if appointmentID != nil && r.AppointmentID != *appointmentID {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// SeedService stores svc and returns its id.
func (f *Store) SeedService(svc models.Service) uint {
	if err := f.CreateService(context.Background(), &svc); err != nil {
		panic(err)
	}
	return svc.ID
}

func (f *Store) SeedAppointment(a models.Appointment) uint {
	if err := f.CreateAppointment(context.Background(), &a); err != nil {
		panic(err)
	}
	return a.ID
}

// SeedUser stores u and returns its id.
func (f *Store) SeedUser(u models.User) uint {
	if err := f.UpsertUser(context.Background(), &u); err != nil {
		panic(err)
	}
	return u.ID
}

func (f *Store) Users() []models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out
}

// Reminders returns every reminder log in insertion order.
func (f *Store) Reminders() []models.ReminderLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ReminderLog(nil), f.reminders...)
}

func (f *Store) Ping(ctx context.Context) error {
	return nil
}
