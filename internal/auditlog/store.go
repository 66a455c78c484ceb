package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/kv"
	"github.com/stockroomhq/stockroom-backend/pkg/kv/models"
)

// Store persists product audit entries in the ProductLogs collection.
// Entries are append-only: there is no update or delete path.
type Store struct {
	kv kv.Store
}

func NewStore(store kv.Store) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	return &Store{kv: store}, nil
}

// Create appends one audit entry.
func (s *Store) Create(ctx context.Context, entry models.AuditLogEntry) error {
	doc, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding audit entry: %w", err)
	}
	if err := s.kv.Put(ctx, kv.CollectionProductLogs, entry.LogID.String(), doc); err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}

// FindByProductID returns the entries for one product, newest first.
func (s *Store) FindByProductID(ctx context.Context, productID uuid.UUID) ([]models.AuditLogEntry, error) {
	return s.find(ctx, func(entry models.AuditLogEntry) bool {
		return entry.ProductID == productID
	})
}

// FindByUserID returns the entries recorded for one actor, newest first.
func (s *Store) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.AuditLogEntry, error) {
	return s.find(ctx, func(entry models.AuditLogEntry) bool {
		return entry.UserID == userID
	})
}

// FindByAction returns the entries for one action kind, newest first.
func (s *Store) FindByAction(ctx context.Context, action enums.LogAction) ([]models.AuditLogEntry, error) {
	return s.find(ctx, func(entry models.AuditLogEntry) bool {
		return entry.Action == action
	})
}

func (s *Store) find(ctx context.Context, match func(models.AuditLogEntry) bool) ([]models.AuditLogEntry, error) {
	docs, err := s.kv.Scan(ctx, kv.CollectionProductLogs)
	if err != nil {
		return nil, fmt.Errorf("scanning audit entries: %w", err)
	}

	entries := make([]models.AuditLogEntry, 0, len(docs))
	for _, doc := range docs {
		var entry models.AuditLogEntry
		if err := json.Unmarshal(doc, &entry); err != nil {
			return nil, fmt.Errorf("decoding audit entry: %w", err)
		}
		if match(entry) {
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.After(entries[j].Time)
	})
	return entries, nil
}
