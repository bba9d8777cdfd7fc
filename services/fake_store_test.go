package services

import (
	"context"
	"sync"

	"nailbook-backend/internal/storetest"
	"nailbook-backend/utils"

	"go.uber.org/zap"
)

type fakeStore = storetest.Store

func newFakeStore() *fakeStore {
	return storetest.New()
}

type recordingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (r *recordingInvalidator) Invalidate(ctx context.Context) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }

func floatPtr(v float64) *float64 { return &v }

func testZone() *utils.ShopZone {
	zone, err := utils.NewShopZone("America/Los_Angeles")
	if err != nil {
		panic(err)
	}
	return zone
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
