package repository

import (
	"context"

	"nailbook-backend/models"

	"gorm.io/gorm/clause"
)

func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, translate(err, "User not found", "")
	}
	return &user, nil
}

func (s *Store) UpsertUser(ctx context.Context, u *models.User) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "external_id"}}, DoNothing: true}).
		Create(u).Error
	return translate(err, "", "User already exists")
}
