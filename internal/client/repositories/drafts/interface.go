package drafts

import (
	"context"

	"github.com/gnode/gcaeditor/internal/marshal"
)

type Repository interface {
	// Save stores rec under key and reports whether the stored draft changed.
	Save(ctx context.Context, key string, rec *marshal.Record) (bool, error)
	// Load returns (nil, nil) when key has no draft.
	Load(ctx context.Context, key string) (*marshal.Record, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
