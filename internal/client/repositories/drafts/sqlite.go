package drafts

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gnode/gcaeditor/internal/dbx"
	"github.com/gnode/gcaeditor/internal/marshal"
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func encode(rec *marshal.Record) ([]byte, []byte, error) {
	s, err := rec.ToStruct()
	if err != nil {
		return nil, nil, fmt.Errorf("convert draft: %w", err)
	}
	payload, err := proto.MarshalOptions{Deterministic: true}.Marshal(s)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal draft: %w", err)
	}
	sum := blake2b.Sum256(payload)
	return payload, sum[:], nil
}

func (r *SQLiteRepository) Save(ctx context.Context, key string, rec *marshal.Record) (bool, error) {
	payload, digest, err := encode(rec)
	if err != nil {
		return false, err
	}

	return dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) (bool, error) {
		var current []byte
		err := tx.QueryRowContext(ctx, `SELECT digest FROM drafts WHERE key = ?`, key).Scan(&current)
		switch {
		case err == nil && bytes.Equal(current, digest):
			return false, nil
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			return false, fmt.Errorf("failed to read draft[%s]: %w", key, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO drafts (key, payload, digest, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				payload = excluded.payload,
				digest = excluded.digest,
				updated_at = excluded.updated_at
		`, key, payload, digest, r.now().UTC())
		if err != nil {
			return false, fmt.Errorf("failed to save draft[%s]: %w", key, err)
		}
		return true, nil
	})
}

func (r *SQLiteRepository) Load(ctx context.Context, key string) (*marshal.Record, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM drafts WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft[%s]: %w", key, err)
	}

	var s structpb.Struct
	if err := proto.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("failed to decode draft[%s]: %w", key, err)
	}
	return marshal.RecordFromStruct(&s), nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete draft[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM drafts ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draft rows: %w", err)
	}
	return keys, nil
}
