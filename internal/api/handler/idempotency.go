package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const headerIdempotencyKey = "Idempotency-Key"

// IdempotencyStore maps a client key to the id of the record it created.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (string, bool, error)
	Remember(ctx context.Context, scope, key, recordID string) (string, error)
}

// Idempotency applies Idempotency-Key to create endpoints. A nil store turns
// it into a pass-through.
type Idempotency struct {
	store IdempotencyStore
	log   zerolog.Logger
}

func NewIdempotency(store IdempotencyStore, log zerolog.Logger) *Idempotency {
	return &Idempotency{store: store, log: log}
}

// create runs fn unless the request's key already produced a record, in which
// case it answers 200 with that record's id. Store failures are logged and
// the request proceeds without replay protection.
func (i *Idempotency) create(c echo.Context, scope string, fn func() (id string, body any, err error)) error {
	key := c.Request().Header.Get(headerIdempotencyKey)
	if i == nil || i.store == nil || key == "" {
		_, body, err := fn()
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, body)
	}

	ctx := c.Request().Context()
	if id, found, err := i.store.Lookup(ctx, scope, key); err != nil {
		i.log.Warn().Err(err).Str("scope", scope).Msg("idempotency lookup failed, processing anyway")
	} else if found {
		i.log.Info().Str("scope", scope).Str("id", id).Msg("idempotent replay")
		return c.JSON(http.StatusOK, replayResponse{ID: id, Replayed: true})
	}

	id, body, err := fn()
	if err != nil {
		return err
	}
	if bound, err := i.store.Remember(ctx, scope, key, id); err != nil {
		i.log.Warn().Err(err).Str("scope", scope).Msg("failed to store idempotency key")
	} else if bound != id {
		i.log.Warn().Str("scope", scope).Str("id", id).Str("bound", bound).Msg("concurrent request won idempotency key")
	}
	return c.JSON(http.StatusCreated, body)
}
