package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
)

func createUser(t *testing.T, h *UserHandler, key string) (int, map[string]any) {
	t.Helper()
	c, rec := newContext(http.MethodPost, "/v1/users", `{"email":"new@claimwise.com","name":"New Agent","role":"agent"}`)
	if key != "" {
		c.Request().Header.Set(headerIdempotencyKey, key)
	}
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestIdempotency_ReplaysKnownKey(t *testing.T) {
	records := &stubRecords{}
	h := NewUserHandler(nil, records, NewIdempotency(newStubIdempotency(), zerolog.Nop()))

	code, first := createUser(t, h, "k-1")
	if code != http.StatusCreated || first["id"] != "u1" {
		t.Fatalf("first create: %d %v", code, first)
	}

	code, replay := createUser(t, h, "k-1")
	if code != http.StatusOK || replay["id"] != "u1" || replay["replayed"] != true {
		t.Fatalf("expected replay of u1, got %d %v", code, replay)
	}
	if records.created != 1 {
		t.Fatalf("replay must not create again, created %d", records.created)
	}

	if code, _ := createUser(t, h, "k-2"); code != http.StatusCreated || records.created != 2 {
		t.Fatalf("a new key must create, got %d (created %d)", code, records.created)
	}
}

func TestIdempotency_KeysAreScopedPerResource(t *testing.T) {
	store := newStubIdempotency()
	store.keys["policies/k-1"] = "p9"
	records := &stubRecords{}
	h := NewUserHandler(nil, records, NewIdempotency(store, zerolog.Nop()))

	if code, _ := createUser(t, h, "k-1"); code != http.StatusCreated || records.created != 1 {
		t.Fatalf("a policy key must not replay a user create, got %d", code)
	}
}

func TestIdempotency_NoKeyOrNoStore(t *testing.T) {
	records := &stubRecords{}
	withStore := NewUserHandler(nil, records, NewIdempotency(newStubIdempotency(), zerolog.Nop()))
	withoutStore := NewUserHandler(nil, records, nopIdempotency())

	createUser(t, withStore, "")
	createUser(t, withStore, "")
	createUser(t, withoutStore, "k-1")
	createUser(t, withoutStore, "k-1")
	if records.created != 4 {
		t.Fatalf("expected every request to create, created %d", records.created)
	}
}

func TestIdempotency_StoreFailureFailsOpen(t *testing.T) {
	store := newStubIdempotency()
	store.lookupErr = errors.New("redis down")
	records := &stubRecords{}
	h := NewUserHandler(nil, records, NewIdempotency(store, zerolog.Nop()))

	if code, _ := createUser(t, h, "k-1"); code != http.StatusCreated || records.created != 1 {
		t.Fatalf("expected the create to proceed, got %d", code)
	}
}
