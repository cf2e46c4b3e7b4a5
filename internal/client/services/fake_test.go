package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gnode/gcaeditor/internal/client/client"
	"github.com/gnode/gcaeditor/internal/client/models"
	"github.com/gnode/gcaeditor/internal/marshal"
)

// fakeClient is an in-memory abstract server. Like the real one it keeps
// figures and owners of an abstract across updates.
type fakeClient struct {
	conferences map[string]*models.Conference
	abstracts   map[string]*models.Abstract
	owners      []*models.Owner

	GetConferenceErr error
	GetAbstractErr   error
	SaveErr          error
	UploadErr        error
	DeleteErr        error
	OwnersErr        error

	creates, updates, uploads, deletes int

	LastCreateConference string
	LastUploadCaption    string
	LastUploadName       string
	LastUploadBody       []byte
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		conferences: map[string]*models.Conference{},
		abstracts:   map[string]*models.Abstract{},
	}
}

func (f *fakeClient) addConference(c *models.Conference) { f.conferences[c.UUID] = c }

func (f *fakeClient) addAbstract(a *models.Abstract) { f.abstracts[a.UUID] = a.Clone() }

func (f *fakeClient) stored(id string) *models.Abstract { return f.abstracts[id] }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) GetConference(_ context.Context, id string) (*models.Conference, error) {
	if f.GetConferenceErr != nil {
		return nil, f.GetConferenceErr
	}
	c, ok := f.conferences[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return c, nil
}

func (f *fakeClient) GetAbstract(_ context.Context, id string) (*models.Abstract, error) {
	if f.GetAbstractErr != nil {
		return nil, f.GetAbstractErr
	}
	a, ok := f.abstracts[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return a.Clone(), nil
}

func (f *fakeClient) CreateAbstract(_ context.Context, conferenceID string, a *models.Abstract) (*models.Abstract, error) {
	f.creates++
	f.LastCreateConference = conferenceID
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	s := a.Clone()
	s.UUID = uuid.NewString()
	s.Owners = models.Str("/api/abstracts/" + s.UUID + "/owners")
	s.Figures = []*models.Figure{}
	f.abstracts[s.UUID] = s
	return s.Clone(), nil
}

func (f *fakeClient) UpdateAbstract(_ context.Context, id string, a *models.Abstract) (*models.Abstract, error) {
	f.updates++
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	prev, ok := f.abstracts[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	s := a.Clone()
	s.UUID = id
	s.Owners = prev.Owners
	s.Figures = prev.Figures
	f.abstracts[id] = s
	return s.Clone(), nil
}

func (f *fakeClient) UploadFigure(_ context.Context, abstractID, caption, fileName string, image io.Reader) (*models.Figure, error) {
	f.uploads++
	if f.UploadErr != nil {
		return nil, f.UploadErr
	}
	a, ok := f.abstracts[abstractID]
	if !ok {
		return nil, client.ErrNotFound
	}
	body, err := io.ReadAll(image)
	if err != nil {
		return nil, err
	}
	f.LastUploadCaption, f.LastUploadName, f.LastUploadBody = caption, fileName, body

	fig := &models.Figure{
		Identity: models.Identity{UUID: uuid.NewString()},
		Name:     models.Str(fileName),
		Caption:  models.Str(caption),
	}
	a.Figures = append(a.Figures, fig)
	return fig, nil
}

func (f *fakeClient) DeleteFigure(_ context.Context, id string) error {
	f.deletes++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for _, a := range f.abstracts {
		for i, fig := range a.Figures {
			if fig.UUID == id {
				a.Figures = append(a.Figures[:i], a.Figures[i+1:]...)
				return nil
			}
		}
	}
	return client.ErrNotFound
}

func (f *fakeClient) GetOwners(_ context.Context, _ string) ([]*models.Owner, error) {
	if f.OwnersErr != nil {
		return nil, f.OwnersErr
	}
	return f.owners, nil
}

// memDrafts is a map backed draft store.
type memDrafts struct {
	records map[string]*marshal.Record
	SaveErr error
	KeysErr error
}

func newMemDrafts() *memDrafts { return &memDrafts{records: map[string]*marshal.Record{}} }

func (m *memDrafts) Save(_ context.Context, key string, rec *marshal.Record) (bool, error) {
	if m.SaveErr != nil {
		return false, m.SaveErr
	}
	m.records[key] = rec
	return true, nil
}

func (m *memDrafts) Load(_ context.Context, key string) (*marshal.Record, error) {
	return m.records[key], nil
}

func (m *memDrafts) Delete(_ context.Context, key string) error {
	delete(m.records, key)
	return nil
}

func (m *memDrafts) Keys(_ context.Context) ([]string, error) {
	if m.KeysErr != nil {
		return nil, m.KeysErr
	}
	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// tb is the part of testing.TB that GinkgoT also provides.
type tb interface {
	Helper()
	TempDir() string
	Errorf(format string, args ...any)
	FailNow()
}

func writeFile(t tb, name string, size int64) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return p
}
