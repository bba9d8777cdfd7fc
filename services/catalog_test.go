package services

import (
	"context"
	"encoding/json"
	"testing"

	"nailbook-backend/models"
	"nailbook-backend/utils"
)

func newCatalog() (*CatalogService, *fakeStore) {
	store := newFakeStore()
	return NewCatalogService(store, testLogger()), store
}

func TestCreateServiceDesignRules(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog()

	tests := []struct {
		name    string
		input   CreateServiceInput
		wantErr bool
	}{
		{name: "none without price", input: CreateServiceInput{Name: "Gel", PriceCents: 4500}},
		{name: "fixed with price", input: CreateServiceInput{Name: "Acrylic", PriceCents: 5000, DesignMode: models.DesignModeFixed, DesignPriceCents: intPtr(1000)}},
		{name: "custom with presets", input: CreateServiceInput{Name: "Art", PriceCents: 3000, DesignMode: models.DesignModeCustom,
			DesignPriceOptions: []DesignPriceOptionInput{{Label: strPtr("Simple"), PriceCents: 500}}}},
		{name: "fixed without price", input: CreateServiceInput{Name: "Bad1", PriceCents: 4500, DesignMode: models.DesignModeFixed}, wantErr: true},
		{name: "fixed zero price", input: CreateServiceInput{Name: "Bad2", PriceCents: 4500, DesignMode: models.DesignModeFixed, DesignPriceCents: intPtr(0)}, wantErr: true},
		{name: "none with price", input: CreateServiceInput{Name: "Bad3", PriceCents: 4500, DesignPriceCents: intPtr(500)}, wantErr: true},
		{name: "custom with price", input: CreateServiceInput{Name: "Bad4", PriceCents: 4500, DesignMode: models.DesignModeCustom, DesignPriceCents: intPtr(500)}, wantErr: true},
		{name: "short name", input: CreateServiceInput{Name: " a ", PriceCents: 4500}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := catalog.Create(ctx, tt.input)
			if tt.wantErr {
				if !utils.IsKind(err, utils.KindValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !svc.Active {
				t.Fatalf("services are active by default")
			}
			if (svc.DesignMode == models.DesignModeFixed) != (svc.DesignPriceCents != nil) {
				t.Fatalf("design price present iff fixed, got mode=%s price=%v", svc.DesignMode, svc.DesignPriceCents)
			}
		})
	}
}

func TestCreateServiceDuplicateName(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog()

	if _, err := catalog.Create(ctx, CreateServiceInput{Name: "Gel", PriceCents: 4500}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := catalog.Create(ctx, CreateServiceInput{Name: "Gel", PriceCents: 4000})
	if !utils.IsKind(err, utils.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateServiceChecksNextState(t *testing.T) {
	ctx := context.Background()
	catalog, store := newCatalog()
	id := store.SeedService(models.Service{Name: "Gel", PriceCents: 4500, Active: true, DesignMode: models.DesignModeNone})

	fixed := models.DesignModeFixed
	if _, err := catalog.Update(ctx, id, UpdateServiceInput{DesignMode: &fixed}); !utils.IsKind(err, utils.KindValidation) {
		t.Fatalf("switching to fixed without a price must fail, got %v", err)
	}

	svc, err := catalog.Update(ctx, id, UpdateServiceInput{DesignMode: &fixed, DesignPriceCents: Of(1200)})
	if err != nil {
		t.Fatalf("switch to fixed: %v", err)
	}
	if svc.DesignPriceCents == nil || *svc.DesignPriceCents != 1200 {
		t.Fatalf("expected design price 1200, got %v", svc.DesignPriceCents)
	}

	if _, err := catalog.Update(ctx, id, UpdateServiceInput{DesignPriceCents: Null[int]()}); !utils.IsKind(err, utils.KindValidation) {
		t.Fatalf("clearing the price of a fixed service must fail, got %v", err)
	}

	none := models.DesignModeNone
	svc, err = catalog.Update(ctx, id, UpdateServiceInput{DesignMode: &none, DesignPriceCents: Null[int]()})
	if err != nil {
		t.Fatalf("switch back to none: %v", err)
	}
	if svc.DesignPriceCents != nil {
		t.Fatalf("expected design price cleared, got %v", *svc.DesignPriceCents)
	}
}

func TestUpdateServiceReplacesPresets(t *testing.T) {
	ctx := context.Background()
	catalog, store := newCatalog()
	id := store.SeedService(models.Service{
		Name: "Art", PriceCents: 3000, Active: true, DesignMode: models.DesignModeCustom,
		DesignPriceOptions: []models.DesignPriceOption{{PriceCents: 500}, {PriceCents: 900}},
	})

	presets := []DesignPriceOptionInput{{Label: strPtr("Chrome"), PriceCents: 1500}}
	svc, err := catalog.Update(ctx, id, UpdateServiceInput{DesignPriceOptions: &presets})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(svc.DesignPriceOptions) != 1 || svc.DesignPriceOptions[0].PriceCents != 1500 {
		t.Fatalf("expected presets replaced, got %+v", svc.DesignPriceOptions)
	}

	name := "Nail Art"
	svc, err = catalog.Update(ctx, id, UpdateServiceInput{Name: &name})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if len(svc.DesignPriceOptions) != 1 {
		t.Fatalf("presets must survive an update that does not mention them")
	}
}

func TestUpdateServiceNotFound(t *testing.T) {
	catalog, _ := newCatalog()
	price := 100
	_, err := catalog.Update(context.Background(), 42, UpdateServiceInput{PriceCents: &price})
	if !utils.IsKind(err, utils.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateServiceInputDistinguishesNull(t *testing.T) {
	var in UpdateServiceInput
	if err := json.Unmarshal([]byte(`{"durationMin": null}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.DurationMin.Set || in.DurationMin.Value != nil {
		t.Fatalf("explicit null must be set with nil value, got %+v", in.DurationMin)
	}
	if in.DesignPriceCents.Set {
		t.Fatalf("omitted field must not be set")
	}

	if err := json.Unmarshal([]byte(`{"designPriceCents": 700}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.DesignPriceCents.Set || in.DesignPriceCents.Value == nil || *in.DesignPriceCents.Value != 700 {
		t.Fatalf("expected 700, got %+v", in.DesignPriceCents)
	}
}

func TestDeleteServiceHardWhenUnused(t *testing.T) {
	ctx := context.Background()
	catalog, store := newCatalog()
	id := store.SeedService(models.Service{Name: "Gel", PriceCents: 4500, Active: true, DesignMode: models.DesignModeNone})

	res, err := catalog.Delete(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if res.SoftDeleted {
		t.Fatalf("unused service must be hard-deleted")
	}
	if _, err := catalog.Get(ctx, id); !utils.IsKind(err, utils.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDeleteServiceSoftWhenReferenced(t *testing.T) {
	ctx := context.Background()
	catalog, store := newCatalog()
	id := store.SeedService(models.Service{Name: "Gel", PriceCents: 4500, Active: true, DesignMode: models.DesignModeNone})
	store.SeedAppointment(models.Appointment{ServiceID: id, Status: models.StatusDone, ServiceName: "Gel", PriceCents: 4500})

	res, err := catalog.Delete(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !res.SoftDeleted || res.Service == nil || res.Service.Active {
		t.Fatalf("expected soft delete with inactive service, got %+v", res)
	}

	svc, err := catalog.Get(ctx, id)
	if err != nil {
		t.Fatalf("soft-deleted service must stay queryable: %v", err)
	}
	if svc.Active {
		t.Fatalf("expected active=false")
	}
}
