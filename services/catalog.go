package services

import (
	"context"
	"strings"

	"nailbook-backend/models"
	"nailbook-backend/utils"

	"go.uber.org/zap"
)

type DesignPriceOptionInput struct {
	Label      *string `json:"label" binding:"omitempty,max=40"`
	PriceCents int     `json:"priceCents" binding:"required,gt=0"`
}

type CreateServiceInput struct {
	Name               string                   `json:"name" binding:"required,min=2,max=100"`
	PriceCents         int                      `json:"priceCents" binding:"required,gt=0"`
	DurationMin        *int                     `json:"durationMin" binding:"omitempty,gt=0"`
	Active             *bool                    `json:"active"`
	DesignMode         models.DesignMode        `json:"designMode" binding:"omitempty,oneof=none fixed custom"`
	DesignPriceCents   *int                     `json:"designPriceCents"`
	DesignPriceOptions []DesignPriceOptionInput `json:"designPriceOptions" binding:"omitempty,dive"`
}

// UpdateServiceInput is a partial update. DurationMin and DesignPriceCents can
// be cleared by sending null.
type UpdateServiceInput struct {
	Name               *string                   `json:"name" binding:"omitempty,min=2,max=100"`
	PriceCents         *int                      `json:"priceCents" binding:"omitempty,gt=0"`
	DurationMin        Optional[int]             `json:"durationMin"`
	Active             *bool                     `json:"active"`
	DesignMode         *models.DesignMode        `json:"designMode" binding:"omitempty,oneof=none fixed custom"`
	DesignPriceCents   Optional[int]             `json:"designPriceCents"`
	DesignPriceOptions *[]DesignPriceOptionInput `json:"designPriceOptions" binding:"omitempty,dive"`
}

// DeleteResult reports how a service was removed.
type DeleteResult struct {
	Service     *models.Service `json:"service,omitempty"`
	SoftDeleted bool            `json:"softDeleted"`
}

type CatalogService struct {
	store ServiceStore
	log   *zap.Logger
}

func NewCatalogService(store ServiceStore, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, log: log.Named("catalog")}
}

// ValidateDesignConfig enforces that a design price is present and positive
// exactly when the mode is fixed.
func ValidateDesignConfig(mode models.DesignMode, priceCents *int) error {
	if !mode.Valid() {
		return utils.ValidationField("designMode", "designMode must be one of none, fixed, custom.")
	}
	if mode == models.DesignModeFixed {
		if priceCents == nil || *priceCents <= 0 {
			return utils.ValidationField("designPriceCents",
				"designPriceCents is required and must be > 0 when designMode is 'fixed'.")
		}
		return nil
	}
	if priceCents != nil {
		return utils.ValidationField("designPriceCents", "designPriceCents must be null unless designMode is 'fixed'.")
	}
	return nil
}

func toOptions(in []DesignPriceOptionInput) ([]models.DesignPriceOption, error) {
	opts := make([]models.DesignPriceOption, 0, len(in))
	for _, o := range in {
		if o.PriceCents <= 0 {
			return nil, utils.ValidationField("designPriceOptions", "Preset prices must be > 0.")
		}
		var label *string
		if o.Label != nil {
			if l := strings.TrimSpace(*o.Label); l != "" {
				label = &l
			}
		}
		opts = append(opts, models.DesignPriceOption{Label: label, PriceCents: o.PriceCents})
	}
	return opts, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	return s.store.ListServices(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Service, error) {
	return s.store.GetService(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, input CreateServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, utils.ValidationField("name", "Name must be at least 2 characters.")
	}
	if input.PriceCents <= 0 {
		return nil, utils.ValidationField("priceCents", "priceCents must be > 0.")
	}

	mode := input.DesignMode
	if mode == "" {
		mode = models.DesignModeNone
	}
	if err := ValidateDesignConfig(mode, input.DesignPriceCents); err != nil {
		return nil, err
	}

	opts, err := toOptions(input.DesignPriceOptions)
	if err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	svc := &models.Service{
		Name:               name,
		PriceCents:         input.PriceCents,
		DurationMin:        input.DurationMin,
		Active:             active,
		DesignMode:         mode,
		DesignPriceOptions: opts,
	}
	if mode == models.DesignModeFixed {
		svc.DesignPriceCents = input.DesignPriceCents
	}

	if err := s.store.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	s.log.Info("service created", zap.Uint("service_id", svc.ID), zap.String("name", svc.Name),
		zap.String("design_mode", string(svc.DesignMode)))
	return svc, nil
}

// Update applies a partial update. The design rule is checked against the
// state the service would have after the patch.
func (s *CatalogService) Update(ctx context.Context, id uint, input UpdateServiceInput) (*models.Service, error) {
	svc, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	nextMode := svc.DesignMode
	if input.DesignMode != nil {
		nextMode = *input.DesignMode
	}
	nextPrice := svc.DesignPriceCents
	if input.DesignPriceCents.Set {
		nextPrice = input.DesignPriceCents.Value
	}
	if err := ValidateDesignConfig(nextMode, nextPrice); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 2 {
			return nil, utils.ValidationField("name", "Name must be at least 2 characters.")
		}
		svc.Name = name
	}
	if input.PriceCents != nil {
		if *input.PriceCents <= 0 {
			return nil, utils.ValidationField("priceCents", "priceCents must be > 0.")
		}
		svc.PriceCents = *input.PriceCents
	}
	if input.DurationMin.Set {
		if input.DurationMin.Value != nil && *input.DurationMin.Value <= 0 {
			return nil, utils.ValidationField("durationMin", "durationMin must be > 0.")
		}
		svc.DurationMin = input.DurationMin.Value
	}
	if input.Active != nil {
		svc.Active = *input.Active
	}

	svc.DesignMode = nextMode
	svc.DesignPriceCents = nil
	if nextMode == models.DesignModeFixed {
		svc.DesignPriceCents = nextPrice
	}

	replaceOptions := input.DesignPriceOptions != nil
	if replaceOptions {
		opts, err := toOptions(*input.DesignPriceOptions)
		if err != nil {
			return nil, err
		}
		svc.DesignPriceOptions = opts
	}

	if err := s.store.UpdateService(ctx, svc, replaceOptions); err != nil {
		return nil, err
	}

	s.log.Info("service updated", zap.Uint("service_id", svc.ID), zap.Bool("options_replaced", replaceOptions))
	return s.store.GetService(ctx, svc.ID)
}

// Delete hard-deletes a service nobody booked and otherwise flags it inactive
// so historical appointments keep their reference.
func (s *CatalogService) Delete(ctx context.Context, id uint) (*DeleteResult, error) {
	svc, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	used, err := s.store.CountAppointmentsForService(ctx, id)
	if err != nil {
		return nil, err
	}
	if used == 0 {
		err = s.store.DeleteService(ctx, id)
		if err == nil {
			s.log.Info("service deleted", zap.Uint("service_id", id))
			return &DeleteResult{SoftDeleted: false}, nil
		}
		// a booking landed between the count and the delete
		if !utils.IsKind(err, utils.KindConflict) {
			return nil, err
		}
	}

	svc.Active = false
	if err := s.store.UpdateService(ctx, svc, false); err != nil {
		return nil, err
	}
	s.log.Info("service deactivated", zap.Uint("service_id", id), zap.Int64("appointments", used))
	return &DeleteResult{Service: svc, SoftDeleted: true}, nil
}
