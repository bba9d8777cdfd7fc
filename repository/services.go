package repository

import (
	"context"

	"nailbook-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := s.db.WithContext(ctx).
		Preload("DesignPriceOptions", func(db *gorm.DB) *gorm.DB { return db.Order("price_cents ASC") }).
		Order("active DESC").Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return services, nil
}

func (s *Store) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	err := s.db.WithContext(ctx).
		Preload("DesignPriceOptions", func(db *gorm.DB) *gorm.DB { return db.Order("price_cents ASC") }).
		First(&svc, id).Error
	if err != nil {
		return nil, translate(err, "Service not found", "")
	}
	return &svc, nil
}

func (s *Store) CreateService(ctx context.Context, svc *models.Service) error {
	return translate(s.db.WithContext(ctx).Create(svc).Error, "", "A service with this name already exists")
}

// UpdateService writes every column of svc. It never inserts: a service
// deleted in the meantime comes back as not found.
func (s *Store) UpdateService(ctx context.Context, svc *models.Service, replaceOptions bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(svc).Select("*").Omit(clause.Associations, "CreatedAt").Updates(svc)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if !replaceOptions {
			return nil
		}

		if err := tx.Where("service_id = ?", svc.ID).Delete(&models.DesignPriceOption{}).Error; err != nil {
			return err
		}
		for i := range svc.DesignPriceOptions {
			svc.DesignPriceOptions[i].ID = 0
			svc.DesignPriceOptions[i].ServiceID = svc.ID
		}
		if len(svc.DesignPriceOptions) > 0 {
			return tx.Create(&svc.DesignPriceOptions).Error
		}
		return nil
	})
	return translate(err, "Service not found", "A service with this name already exists")
}

func (s *Store) CountAppointmentsForService(ctx context.Context, serviceID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Appointment{}).Where("service_id = ?", serviceID).Count(&count).Error
	return count, translate(err, "", "")
}

// DeleteService removes the service and its preset options. It fails with a
// conflict if an appointment still references the service.
func (s *Store) DeleteService(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.DesignPriceOption{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Service{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "Service not found", "Service is referenced by appointments")
}
