package client

import (
	"context"
	"io"

	"github.com/gnode/gcaeditor/internal/client/models"
)

// Client is the abstract server API used by the editor.
type Client interface {
	Close() error
	GetConference(ctx context.Context, id string) (*models.Conference, error)
	GetAbstract(ctx context.Context, id string) (*models.Abstract, error)
	CreateAbstract(ctx context.Context, conferenceID string, a *models.Abstract) (*models.Abstract, error)
	UpdateAbstract(ctx context.Context, id string, a *models.Abstract) (*models.Abstract, error)
	UploadFigure(ctx context.Context, abstractID, caption, fileName string, image io.Reader) (*models.Figure, error)
	DeleteFigure(ctx context.Context, id string) error
	GetOwners(ctx context.Context, abstractID string) ([]*models.Owner, error)
}
