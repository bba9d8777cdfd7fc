package services

import (
	"context"
	"strings"

	"nailbook-backend/models"
	"nailbook-backend/utils"

	"go.uber.org/zap"
)

const EventUserCreated = "user.created"

// IdentityEvent is the subset of the identity provider's webhook payload we read.
type IdentityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

type UserService struct {
	store UserStore
	log   *zap.Logger
}

func NewUserService(store UserStore, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log.Named("users")}
}

// HandleEvent mirrors identity-provider accounts locally. It reports false for
// event types it ignores.
func (s *UserService) HandleEvent(ctx context.Context, ev IdentityEvent) (bool, error) {
	if ev.Type != EventUserCreated {
		return false, nil
	}
	if strings.TrimSpace(ev.Data.ID) == "" {
		return false, utils.ValidationField("data.id", "User id is required.")
	}

	user := &models.User{
		ExternalID: ev.Data.ID,
		Name:       strings.TrimSpace(ev.Data.FirstName + " " + ev.Data.LastName),
	}
	if len(ev.Data.EmailAddresses) > 0 {
		user.Email = ev.Data.EmailAddresses[0].EmailAddress
	}

	if err := s.store.UpsertUser(ctx, user); err != nil {
		return false, err
	}
	s.log.Info("user synced", zap.String("external_id", user.ExternalID))
	return true, nil
}

// Resolve maps an authenticated external id to the local user row.
func (s *UserService) Resolve(ctx context.Context, externalID string) (*models.User, error) {
	if externalID == "" {
		return nil, utils.Unauthorized("Unauthorized")
	}
	return s.store.FindUserByExternalID(ctx, externalID)
}
