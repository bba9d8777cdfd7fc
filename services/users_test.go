package services

import (
	"context"
	"encoding/json"
	"testing"

	"nailbook-backend/utils"
)

const userCreatedPayload = `{
  "type": "user.created",
  "data": {
    "id": "user_29w83sxmDNGwOuEthce5gg56FcC",
    "first_name": "Example",
    "last_name": "Owner",
    "email_addresses": [{"email_address": "owner@example.org", "id": "idn_1"}],
    "object": "user"
  },
  "object": "event"
}`

func TestHandleUserCreatedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	users := NewUserService(store, testLogger())

	var ev IdentityEvent
	if err := json.Unmarshal([]byte(userCreatedPayload), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for i := 0; i < 2; i++ {
		handled, err := users.HandleEvent(ctx, ev)
		if err != nil || !handled {
			t.Fatalf("attempt %d: handled=%v err=%v", i, handled, err)
		}
	}
	if len(store.Users()) != 1 {
		t.Fatalf("expected one user, got %d", len(store.Users()))
	}

	u, err := users.Resolve(ctx, "user_29w83sxmDNGwOuEthce5gg56FcC")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if u.Email != "owner@example.org" || u.Name != "Example Owner" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestHandleEventIgnoresOtherTypes(t *testing.T) {
	users := NewUserService(newFakeStore(), testLogger())
	handled, err := users.HandleEvent(context.Background(), IdentityEvent{Type: "session.created"})
	if err != nil || handled {
		t.Fatalf("expected ignored event, got handled=%v err=%v", handled, err)
	}
}

func TestResolveRequiresIdentity(t *testing.T) {
	users := NewUserService(newFakeStore(), testLogger())
	if _, err := users.Resolve(context.Background(), ""); !utils.IsKind(err, utils.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := users.Resolve(context.Background(), "user_unknown"); !utils.IsKind(err, utils.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
