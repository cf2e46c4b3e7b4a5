package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnode/gcaeditor/internal/auth"
	"github.com/gnode/gcaeditor/internal/client/models"
	"github.com/gnode/gcaeditor/internal/metrics"
	"github.com/gnode/gcaeditor/internal/workflow"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts Options) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL+"/", opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.org", Options{})
	assert.Error(t, err)

	_, err = NewHTTPClient("://nope", Options{})
	assert.Error(t, err)
}

func TestHTTPClient_GetAbstract(t *testing.T) {
	var gotReqID, gotAuth, gotAccept string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/abstracts/a-1", r.URL.Path)
		gotReqID = r.Header.Get("X-Request-ID")
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = io.WriteString(w, `{"uuid":"a-1","title":"T","state":"Submitted","figures":[{"uuid":"f"}]}`)
	}, Options{Token: "opaque-token"})

	a, err := c.GetAbstract(context.Background(), "a-1")
	require.NoError(t, err)

	assert.Equal(t, "a-1", a.UUID)
	assert.Equal(t, workflow.Submitted, a.State)
	assert.Len(t, a.Figures, 1)
	assert.Equal(t, "Bearer opaque-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	_, err = uuid.Parse(gotReqID)
	assert.NoError(t, err, "request id must be a uuid")
}

func TestHTTPClient_CreateAndUpdate(t *testing.T) {
	var bodies []map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var m map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		bodies = append(bodies, m)

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/conferences/c-1/abstracts":
			_, _ = io.WriteString(w, `{"uuid":"new","title":"T","state":"InPreparation"}`)
		case r.Method == http.MethodPut && r.URL.Path == "/api/abstracts/new":
			_, _ = io.WriteString(w, `{"uuid":"new","title":"T2","state":"Submitted"}`)
		default:
			http.NotFound(w, r)
		}
	}, Options{})

	a := models.NewAbstract()
	a.Title = models.Str("T")
	a.Owners = models.Str("/not/sent")

	created, err := c.CreateAbstract(context.Background(), "c-1", a)
	require.NoError(t, err)
	assert.Equal(t, "new", created.UUID)

	created.Title = models.Str("T2")
	created.State = workflow.Submitted
	updated, err := c.UpdateAbstract(context.Background(), created.UUID, created)
	require.NoError(t, err)
	assert.Equal(t, workflow.Submitted, updated.State)

	require.Len(t, bodies, 2)
	assert.Nil(t, bodies[0]["uuid"])
	assert.NotContains(t, bodies[0], "owners")
	assert.NotContains(t, bodies[0], "figures")
	assert.Equal(t, "Submitted", bodies[1]["state"])
}

func TestHTTPClient_UploadAndDeleteFigure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/api/abstracts/a-1/figures", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			f, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			data, _ := io.ReadAll(f)
			assert.Equal(t, "IMG", string(data))
			assert.Equal(t, "fig.png", hdr.Filename)
			assert.JSONEq(t, `{"caption":"cap"}`, r.FormValue("figure"))
			_, _ = io.WriteString(w, `{"uuid":"f-1","caption":"cap","name":"fig.png"}`)
		case http.MethodDelete:
			assert.Equal(t, "/api/figures/f-1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}
	}, Options{})

	fig, err := c.UploadFigure(context.Background(), "a-1", "cap", "fig.png", strings.NewReader("IMG"))
	require.NoError(t, err)
	assert.Equal(t, "f-1", fig.UUID)

	require.NoError(t, c.DeleteFigure(context.Background(), "f-1"))
}

func TestHTTPClient_GetConferenceAndOwners(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/conferences/c-1":
			_, _ = io.WriteString(w, `{"uuid":"c-1","name":"BC","groups":[{"prefix":1}]}`)
		case "/api/abstracts/a-1/owners":
			_, _ = io.WriteString(w, `[{"uuid":"o-1","mail":"ada@example.org"}]`)
		case "/api/abstracts/a-2/owners":
			_, _ = io.WriteString(w, `null`)
		}
	}, Options{})

	conf, err := c.GetConference(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "BC", models.Deref(conf.Name))
	assert.Len(t, conf.Groups, 1)

	owners, err := c.GetOwners(context.Background(), "a-1")
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, "ada@example.org", models.Deref(owners[0].Mail))

	owners, err = c.GetOwners(context.Background(), "a-2")
	require.NoError(t, err)
	assert.NotNil(t, owners)
	assert.Empty(t, owners)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrUnavailable},
		{http.StatusBadGateway, ErrUnavailable},
		{http.StatusBadRequest, ErrRequestFailed},
		{http.StatusConflict, ErrRequestFailed},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tc.status)
			}, Options{})

			_, err := c.GetAbstract(context.Background(), "x")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestHTTPClient_BadRequestKeepsServerMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "title is required", http.StatusUnprocessableEntity)
	}, Options{})

	_, err := c.UpdateAbstract(context.Background(), "a", models.NewAbstract())
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "422")
}

func TestHTTPClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewHTTPClient(srv.URL, Options{Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.GetConference(context.Background(), "c")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_MalformedResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"title": 5}`)
	}, Options{})

	_, err := c.GetAbstract(context.Background(), "a")
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestHTTPClient_ExpiredTokenNeverDials(t *testing.T) {
	var calls atomic.Int32
	expired, err := auth.GenerateToken("u", "", []byte("s"), -time.Minute)
	require.NoError(t, err)

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{}`)
	}, Options{Token: expired})

	_, err = c.GetAbstract(context.Background(), "a")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, errors.Is(err, auth.ErrTokenExpired))
	assert.Zero(t, calls.Load())

	valid, err := auth.GenerateToken("u", "", []byte("s"), time.Hour)
	require.NoError(t, err)
	c.SetToken(valid)
	_, err = c.GetAbstract(context.Background(), "a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestHTTPClient_CanceledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, Options{RequestsPerSecond: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetAbstract(ctx, "a")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Metrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/abstracts/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{}`)
	}, Options{Metrics: m})

	_, _ = c.GetAbstract(context.Background(), "ok")
	_, _ = c.GetAbstract(context.Background(), "missing")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests("get_abstract", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests("get_abstract", metrics.OutcomeError)))
}

func TestPath_EscapesSegments(t *testing.T) {
	assert.Equal(t, "/api/abstracts/a%2Fb/figures", path("abstracts", "a/b", "figures"))
}
