package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/kv"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
)

// Store persists user accounts in the Users collection.
type Store struct {
	kv kv.Store
}

func NewStore(store kv.Store) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	return &Store{kv: store}, nil
}

// Create writes a new user. Username uniqueness belongs to the caller.
func (s *Store) Create(ctx context.Context, user models.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := s.kv.Put(ctx, kv.CollectionUsers, user.UserID.String(), doc); err != nil {
		return fmt.Errorf("writing user: %w", err)
	}
	return nil
}

// FindByID returns the user, or kv.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	doc, err := s.kv.GetByKey(ctx, kv.CollectionUsers, id.String())
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	return &user, nil
}

// FindByUsername scans for an exact username match, or kv.ErrNotFound.
func (s *Store) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := s.scan(ctx, func(user models.User) bool {
		return user.Username == username
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, kv.ErrNotFound
	}
	return &users[0], nil
}

// FindAll returns every user in backend order.
func (s *Store) FindAll(ctx context.Context) ([]models.User, error) {
	return s.scan(ctx, func(models.User) bool { return true })
}

// FindByRole returns the users holding one role.
func (s *Store) FindByRole(ctx context.Context, role enums.Role) ([]models.User, error) {
	return s.scan(ctx, func(user models.User) bool {
		return user.Role == role
	})
}

func (s *Store) scan(ctx context.Context, match func(models.User) bool) ([]models.User, error) {
	docs, err := s.kv.Scan(ctx, kv.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("scanning users: %w", err)
	}
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		var user models.User
		if err := json.Unmarshal(doc, &user); err != nil {
			return nil, fmt.Errorf("decoding user: %w", err)
		}
		if match(user) {
			users = append(users, user)
		}
	}
	return users, nil
}
