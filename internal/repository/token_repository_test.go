package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/iliyamo/event-booking/internal/repository"
	"github.com/iliyamo/event-booking/internal/testutil"
)

func TestTokenRepoValidateRefresh(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.TruncateAll(t, db)
	repo := repository.NewTokenRepo(db)
	ctx := context.Background()

	userID := testutil.InsertUser(t, db, "ana@example.com", "ATTENDEE")

	t.Run("stored hash resolves to its owner", func(t *testing.T) {
		if err := repo.StoreRefresh(ctx, userID, "hash-live", time.Now().UTC().Add(time.Hour)); err != nil {
			t.Fatalf("store: %v", err)
		}
		got, err := repo.ValidateRefresh(ctx, "hash-live")
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if got != userID {
			t.Errorf("user = %d, want %d", got, userID)
		}
	})

	t.Run("unknown hash is invalid", func(t *testing.T) {
		if _, err := repo.ValidateRefresh(ctx, "hash-unknown"); err != repository.ErrInvalidRefresh {
			t.Errorf("err = %v, want ErrInvalidRefresh", err)
		}
	})

	t.Run("revoked hash is invalid", func(t *testing.T) {
		if err := repo.StoreRefresh(ctx, userID, "hash-revoked", time.Now().UTC().Add(time.Hour)); err != nil {
			t.Fatalf("store: %v", err)
		}
		if err := repo.RevokeByHash(ctx, "hash-revoked"); err != nil {
			t.Fatalf("revoke: %v", err)
		}
		if _, err := repo.ValidateRefresh(ctx, "hash-revoked"); err != repository.ErrInvalidRefresh {
			t.Errorf("err = %v, want ErrInvalidRefresh", err)
		}
	})

	t.Run("expired hash is invalid", func(t *testing.T) {
		if err := repo.StoreRefresh(ctx, userID, "hash-expired", time.Now().UTC().Add(-time.Minute)); err != nil {
			t.Fatalf("store: %v", err)
		}
		if _, err := repo.ValidateRefresh(ctx, "hash-expired"); err != repository.ErrInvalidRefresh {
			t.Errorf("err = %v, want ErrInvalidRefresh", err)
		}
	})

	t.Run("revoke-all kills every live session", func(t *testing.T) {
		for _, h := range []string{"hash-a", "hash-b"} {
			if err := repo.StoreRefresh(ctx, userID, h, time.Now().UTC().Add(time.Hour)); err != nil {
				t.Fatalf("store %s: %v", h, err)
			}
		}
		if err := repo.RevokeAllForUser(ctx, userID); err != nil {
			t.Fatalf("revoke all: %v", err)
		}
		for _, h := range []string{"hash-a", "hash-b"} {
			if _, err := repo.ValidateRefresh(ctx, h); err != repository.ErrInvalidRefresh {
				t.Errorf("%s: err = %v, want ErrInvalidRefresh", h, err)
			}
		}
	})
}
