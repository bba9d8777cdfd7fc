package repository

import (
	"context"
	"errors"

	"nailbook-backend/models"
	"nailbook-backend/utils"

	"gorm.io/gorm"
)

// Store is the postgres implementation of every store the services depend on.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the schema, including the (nail_tech_id,
// scheduled_at) unique index that backs double-booking protection.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.NailTech{},
		&models.Service{},
		&models.DesignPriceOption{},
		&models.Appointment{},
		&models.ReminderLog{},
	)
}

// Ping checks the database connection for the health check.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate maps gorm errors onto the application error kinds.
func translate(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return &utils.AppError{Kind: utils.KindConflict, Message: conflict, Err: err}
	default:
		return utils.AsAppError(err)
	}
}
