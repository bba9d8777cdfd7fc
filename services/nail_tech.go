package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"nailbook-backend/models"
	"nailbook-backend/utils"

	"go.uber.org/zap"
)

type NailTechService struct {
	store NailTechStore
	log   *zap.Logger
}

func NewNailTechService(store NailTechStore, log *zap.Logger) *NailTechService {
	return &NailTechService{store: store, log: log.Named("nail_techs")}
}

func normalizeTechName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 100 {
		return "", utils.ValidationField("name", "Name must be between 2 and 100 characters.")
	}
	return name, nil
}

func (s *NailTechService) List(ctx context.Context) ([]models.NailTech, error) {
	return s.store.ListNailTechs(ctx)
}

// Create adds a technician. A duplicate name is a conflict.
func (s *NailTechService) Create(ctx context.Context, name string) (*models.NailTech, error) {
	name, err := normalizeTechName(name)
	if err != nil {
		return nil, err
	}
	tech := &models.NailTech{Name: name}
	if err := s.store.CreateNailTech(ctx, tech); err != nil {
		return nil, err
	}
	s.log.Info("nail tech created", zap.Uint("nail_tech_id", tech.ID), zap.String("name", tech.Name))
	return tech, nil
}

// Resolve returns the technician with the given name, creating it if needed.
// Losing a concurrent insert falls back to reading the winner's row.
func (s *NailTechService) Resolve(ctx context.Context, name string) (*models.NailTech, error) {
	name, err := normalizeTechName(name)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindNailTechByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !utils.IsKind(err, utils.KindNotFound) {
		return nil, err
	}

	tech := &models.NailTech{Name: name}
	err = s.store.CreateNailTech(ctx, tech)
	if err == nil {
		s.log.Info("nail tech created on booking", zap.Uint("nail_tech_id", tech.ID), zap.String("name", name))
		return tech, nil
	}
	if !utils.IsKind(err, utils.KindConflict) {
		return nil, err
	}
	return s.store.FindNailTechByName(ctx, name)
}

func (s *NailTechService) Get(ctx context.Context, id uint) (*models.NailTech, error) {
	return s.store.GetNailTech(ctx, id)
}
