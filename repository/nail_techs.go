package repository

import (
	"context"

	"nailbook-backend/models"
)

func (s *Store) ListNailTechs(ctx context.Context) ([]models.NailTech, error) {
	var techs []models.NailTech
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&techs).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return techs, nil
}

func (s *Store) GetNailTech(ctx context.Context, id uint) (*models.NailTech, error) {
	var tech models.NailTech
	if err := s.db.WithContext(ctx).First(&tech, id).Error; err != nil {
		return nil, translate(err, "Nail tech not found", "")
	}
	return &tech, nil
}

func (s *Store) FindNailTechByName(ctx context.Context, name string) (*models.NailTech, error) {
	var tech models.NailTech
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&tech).Error; err != nil {
		return nil, translate(err, "Nail tech not found", "")
	}
	return &tech, nil
}

func (s *Store) CreateNailTech(ctx context.Context, tech *models.NailTech) error {
	return translate(s.db.WithContext(ctx).Create(tech).Error, "", "Nail tech already exists")
}
