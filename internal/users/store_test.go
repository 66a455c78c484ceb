package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/kv"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(kv.NewMemoryStore())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func seedUser(t *testing.T, store *Store, username string, role enums.Role) models.User {
	t.Helper()
	u := models.User{
		UserID:       uuid.New(),
		Username:     username,
		PasswordHash: "$argon2id$stub",
		Role:         role,
		CreatedAt:    time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	if err := store.Create(context.Background(), u); err != nil {
		t.Fatalf("Create %s: %v", username, err)
	}
	return u
}

func TestFindByUsername(t *testing.T) {
	store := newTestStore(t)
	alice := seedUser(t, store, "alice", enums.RoleAdmin)
	seedUser(t, store, "bob", enums.RoleStaff)

	got, err := store.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.UserID != alice.UserID {
		t.Fatalf("got %s, want %s", got.UserID, alice.UserID)
	}

	if _, err := store.FindByUsername(context.Background(), "carol"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("missing username err = %v, want ErrNotFound", err)
	}

	// Exact match only.
	if _, err := store.FindByUsername(context.Background(), "ali"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("partial username err = %v, want ErrNotFound", err)
	}
}

func TestFindByRole(t *testing.T) {
	store := newTestStore(t)
	seedUser(t, store, "alice", enums.RoleAdmin)
	seedUser(t, store, "bob", enums.RoleStaff)
	seedUser(t, store, "carol", enums.RoleStaff)

	staff, err := store.FindByRole(context.Background(), enums.RoleStaff)
	if err != nil {
		t.Fatalf("FindByRole: %v", err)
	}
	if len(staff) != 2 {
		t.Fatalf("got %d staff users, want 2", len(staff))
	}
	for _, u := range staff {
		if u.Role != enums.RoleStaff {
			t.Fatalf("user %s has role %s", u.Username, u.Role)
		}
	}
}

func TestFindByIDRoundTrip(t *testing.T) {
	store := newTestStore(t)
	alice := seedUser(t, store, "alice", enums.RoleAdmin)

	got, err := store.FindByID(context.Background(), alice.UserID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Username != "alice" || got.Role != enums.RoleAdmin || got.PasswordHash != alice.PasswordHash {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
