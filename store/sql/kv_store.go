package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// KeyValueStore is the sqlite-backed durable collaborator for the token
// store. Writes replace the whole row for a key; a missing key on delete
// is not an error.
type KeyValueStore struct {
	db   *bun.DB
	repo repository.Repository[*kvRecord]
}

func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.repo == nil {
		return "", false, fmt.Errorf("sqlstore: key-value store is not configured")
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", false, fmt.Errorf("sqlstore: key is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("key", "=", trimmed),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return "", false, err
	}
	if len(records) == 0 {
		return "", false, nil
	}
	return records[0].Value, true, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key string, value string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: key-value store is not configured")
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return fmt.Errorf("sqlstore: key is required")
	}
	now := time.Now().UTC()

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record := &kvRecord{}
		err := tx.NewSelect().
			Model(record).
			Where("?TableAlias.key = ?", trimmed).
			Limit(1).
			Scan(ctx)
		if err != nil {
			if err != sql.ErrNoRows {
				return err
			}
			record = &kvRecord{
				ID:        uuid.NewString(),
				Key:       trimmed,
				Value:     value,
				CreatedAt: now,
				UpdatedAt: now,
			}
			_, insertErr := tx.NewInsert().Model(record).Exec(ctx)
			return insertErr
		}
		record.Value = value
		record.UpdatedAt = now
		_, updateErr := tx.NewUpdate().
			Model(record).
			Where("id = ?", record.ID).
			Exec(ctx)
		return updateErr
	})
}

func (s *KeyValueStore) Remove(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: key-value store is not configured")
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return fmt.Errorf("sqlstore: key is required")
	}
	_, err := s.db.NewDelete().
		Model((*kvRecord)(nil)).
		Where("?TableAlias.key = ?", trimmed).
		Exec(ctx)
	return err
}
