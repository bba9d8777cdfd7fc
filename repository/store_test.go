package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"nailbook-backend/models"
	"nailbook-backend/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens a private in-memory database with foreign keys enforced
// and the schema migrated.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := New(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func seedService(t *testing.T, s *Store, name string) *models.Service {
	t.Helper()
	svc := &models.Service{Name: name, PriceCents: 4500, Active: true, DesignMode: models.DesignModeNone}
	if err := s.CreateService(context.Background(), svc); err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

func seedTech(t *testing.T, s *Store, name string) *models.NailTech {
	t.Helper()
	tech := &models.NailTech{Name: name}
	if err := s.CreateNailTech(context.Background(), tech); err != nil {
		t.Fatalf("create tech: %v", err)
	}
	return tech
}

func newAppointment(svc *models.Service, tech *models.NailTech, at time.Time) *models.Appointment {
	a := &models.Appointment{
		ScheduledAt:  at,
		UserID:       1,
		Status:       models.StatusConfirmed,
		CustomerName: "Jane",
		PhoneNumber:  "5551234567",
		ServiceID:    svc.ID,
		ServiceName:  svc.Name,
		PriceCents:   svc.PriceCents,
	}
	if tech != nil {
		a.NailTechID = &tech.ID
	}
	return a
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind utils.ErrorKind
	}{
		{"not found", gorm.ErrRecordNotFound, utils.KindNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, utils.KindConflict},
		{"foreign key", gorm.ErrForeignKeyViolated, utils.KindConflict},
		{"deadline", context.DeadlineExceeded, utils.KindTimeout},
		{"other", errors.New("connection reset"), utils.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate(tt.err, "missing", "taken")
			if !utils.IsKind(err, tt.kind) {
				t.Fatalf("translate(%v) = %v, want kind %s", tt.err, err, tt.kind)
			}
		})
	}

	if translate(nil, "", "") != nil {
		t.Fatalf("nil must stay nil")
	}
	if err := translate(gorm.ErrDuplicatedKey, "", "taken"); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("conflict must wrap the driver error, got %v", err)
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
