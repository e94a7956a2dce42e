package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/showcase/internal/assistant"
	"github.com/MrSnakeDoc/showcase/internal/catalog"
	"github.com/MrSnakeDoc/showcase/internal/clock"
	"github.com/MrSnakeDoc/showcase/internal/comments"
	"github.com/MrSnakeDoc/showcase/internal/config"
	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
	"github.com/MrSnakeDoc/showcase/internal/index"
	"github.com/MrSnakeDoc/showcase/internal/logger"
	"github.com/MrSnakeDoc/showcase/internal/seed"
	"github.com/MrSnakeDoc/showcase/internal/store"
)

type fixture struct {
	handler  http.Handler
	deps     deps.Deps
	resource *store.Memory
}

func newFixture(t *testing.T, mutate ...func(*deps.Deps)) *fixture {
	t.Helper()
	log := logger.NewNop()
	clk := clock.NewFake(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	resource := store.NewMemory("memory")
	st := catalog.NewStore(resource, seed.DefaultRecords(), log)
	require.NoError(t, st.Load(context.Background()))

	persona := seed.DefaultPersona()
	d := deps.Deps{
		Logger:           log,
		StartTime:        clk.Now(),
		Version:          "test",
		TimeNow:          clk.Now,
		RequestTimeout:   5 * time.Second,
		ChatBurst:        100,
		ChatRefillPerMin: 100,
		Persona:          persona,
		Catalog:          catalog.NewService(st, clk, catalog.Latency{}),
		Comments:         comments.NewBoard(clk),
		Sessions:         index.NewSessionIndex(),
		Factory: assistant.Factory{
			Gateway: assistant.Unavailable{},
			Base: assistant.Options{
				Persona:       persona,
				Clock:         clk,
				DegradedDelay: time.Second,
				Logger:        log,
			},
		},
		Backend:       "memory",
		ReloadTrigger: make(chan struct{}, 1),
	}
	for _, m := range mutate {
		m(&d)
	}

	srv := New(&config.Config{ListenPort: ":0"}, log, d)
	return &fixture{handler: srv.Handler(), deps: d, resource: resource}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestReadyz(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/readyz", "").Code)

	down := newFixture(t, func(d *deps.Deps) {
		d.BackendPing = func(context.Context) error { return assert.AnError }
	})
	assert.Equal(t, http.StatusServiceUnavailable, down.do(t, http.MethodGet, "/readyz", "").Code)
}

func TestInfraReportsDegradedAssistant(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/infra", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "degraded", body["status"])
}

func TestCategories(t *testing.T) {
	f := newFixture(t)
	got := decode[[]string](t, f.do(t, http.MethodGet, "/api/categories", ""))
	assert.Equal(t, domain.CategoryLabels(), got)
}

func TestListRecords(t *testing.T) {
	f := newFixture(t)

	all := decode[[]domain.Record](t, f.do(t, http.MethodGet, "/api/records", ""))
	assert.Len(t, all, 5)

	web := decode[[]domain.Record](t, f.do(t, http.MethodGet, "/api/records?category=Web+Apps", ""))
	require.Len(t, web, 2)
	for _, r := range web {
		assert.Equal(t, domain.CategoryWebApps, r.Category)
	}

	rec := f.do(t, http.MethodGet, "/api/records?category=Podcasts", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSearchRecords(t *testing.T) {
	f := newFixture(t)
	got := decode[[]domain.Record](t, f.do(t, http.MethodGet, "/api/records?q=motion", ""))
	require.NotEmpty(t, got)
	assert.Equal(t, "motion-graphics-yas", got[0].ID)
}

func TestGetRecord(t *testing.T) {
	f := newFixture(t)

	got := decode[domain.Record](t, f.do(t, http.MethodGet, "/api/records/subtitle-studio", ""))
	assert.Equal(t, "subtitle-studio", got.ID)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/records/missing", "").Code)
}

func TestRecordWriteLifecycle(t *testing.T) {
	f := newFixture(t)
	writes := f.resource.Writes()

	rec := f.do(t, http.MethodPost, "/api/records", `{"title":"New Reel","category":"Motion Graphics","tags":["AE"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Record](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, writes+1, f.resource.Writes())

	list := decode[[]domain.Record](t, f.do(t, http.MethodGet, "/api/records", ""))
	assert.Equal(t, created.ID, list[0].ID, "new records go first")

	rec = f.do(t, http.MethodPut, "/api/records/"+created.ID, `{"title":"Renamed","category":"Motion Graphics"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.Record](t, f.do(t, http.MethodGet, "/api/records/"+created.ID, ""))
	assert.Equal(t, "Renamed", got.Title)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/records/"+created.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/records/"+created.ID, "").Code)
}

func TestCreateRecordValidation(t *testing.T) {
	f := newFixture(t)
	writes := f.resource.Writes()

	tests := []struct {
		name string
		body string
	}{
		{"empty title", `{"title":"  ","category":"Web Apps"}`},
		{"bad category", `{"title":"x","category":"Podcasts"}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/api/records", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
	assert.Equal(t, writes, f.resource.Writes())
}

func TestAdminRoutesRespectCIDRs(t *testing.T) {
	f := newFixture(t, func(d *deps.Deps) {
		d.AllowedCIDRS = []string{"10.0.0.0/8"}
	})

	// httptest requests come from 192.0.2.1
	rec := f.do(t, http.MethodDelete, "/api/records/subtitle-studio", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/api/catalog/reload", "").Code)

	// public reads are unaffected
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/records/subtitle-studio", "").Code)
}

func TestReload(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusAccepted, f.do(t, http.MethodPost, "/api/catalog/reload", "").Code)
	// trigger is buffered by one; nobody drains it here
	assert.Equal(t, http.StatusTooManyRequests, f.do(t, http.MethodPost, "/api/catalog/reload", "").Code)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	body := decode[map[string]json.RawMessage](t, f.do(t, http.MethodGet, "/api/profile", ""))
	assert.Contains(t, string(body["profile"]), "Sagar Parmar")
	assert.Contains(t, body, "skills")
	assert.Contains(t, body, "experience")
}

func TestComments(t *testing.T) {
	f := newFixture(t)

	thread := decode[[]domain.Comment](t, f.do(t, http.MethodGet, "/api/records/subtitle-studio/comments", ""))
	require.Len(t, thread, 2)
	assert.True(t, thread[0].Pinned)

	rec := f.do(t, http.MethodPost, "/api/records/subtitle-studio/comments", `{"content":"  Nice work  "}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decode[domain.Comment](t, rec)
	assert.Equal(t, "Nice work", c.Content)
	assert.Equal(t, comments.DefaultAuthor, c.Author)

	assert.Equal(t, http.StatusUnprocessableEntity,
		f.do(t, http.MethodPost, "/api/records/subtitle-studio/comments", `{"content":" "}`).Code)
	assert.Equal(t, http.StatusNotFound,
		f.do(t, http.MethodGet, "/api/records/missing/comments", "").Code)
}

func TestDescribeWithoutCredential(t *testing.T) {
	f := newFixture(t)
	before := f.resource.Writes()

	rec := f.do(t, http.MethodPost, "/api/records/subtitle-studio/description", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[assistant.Description](t, rec)
	assert.Equal(t, assistant.DescriptionUnavailable, got.Text)
	assert.False(t, got.Generated)
	assert.Equal(t, before, f.resource.Writes())
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/sessions", `{"recordId":"motion-graphics-yas"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	snap := decode[map[string]any](t, rec)
	id, _ := snap["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, true, snap["degraded"])
	assert.Equal(t, "ready", snap["state"])
	assert.Equal(t, 1, f.deps.Sessions.Count())

	rec = f.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", `{"text":"What tools did you use?"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var after assistant.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	require.Len(t, after.Messages, 3)
	assert.Equal(t, domain.RoleUser, after.Messages[1].Role)
	assert.Contains(t, after.Messages[2].Text, "High-End Motion Graphics Showcase")

	assert.Equal(t, http.StatusUnprocessableEntity,
		f.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", `{"text":""}`).Code)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/sessions/"+id, "").Code)
	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/sessions/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/sessions/"+id, "").Code)
	assert.Equal(t, 0, f.deps.Sessions.Count())
}

func TestCreateSessionWithoutBody(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	snap := decode[assistant.Snapshot](t, rec)
	assert.Empty(t, snap.RecordID)
}

func TestCreateSessionUnknownRecord(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/sessions", `{"recordId":"missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, f.deps.Sessions.Count())
}

func TestCreateSessionFetchesRecordThroughCatalog(t *testing.T) {
	catalogClock := clock.NewFake(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	f := newFixture(t, func(d *deps.Deps) {
		d.Catalog = catalog.NewService(d.Catalog.Store(), catalogClock, catalog.Latency{Get: 250 * time.Millisecond})
	})

	rec := f.do(t, http.MethodPost, "/api/sessions", `{"recordId":"subtitle-studio"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "subtitle-studio", decode[assistant.Snapshot](t, rec).RecordID)
	assert.Equal(t, []time.Duration{250 * time.Millisecond}, catalogClock.Sleeps())
}

func TestSendToClosedSession(t *testing.T) {
	f := newFixture(t)
	s, err := f.deps.Factory.Open(context.Background(), domain.None[domain.Record]())
	require.NoError(t, err)
	f.deps.Sessions.Add(s)
	require.NoError(t, s.Close())

	rec := f.do(t, http.MethodPost, "/api/sessions/"+s.ID()+"/messages", `{"text":"hello"}`)
	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestSessionRateLimit(t *testing.T) {
	f := newFixture(t, func(d *deps.Deps) {
		d.ChatBurst = 1
		d.ChatRefillPerMin = 1
	})
	assert.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/sessions", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, f.do(t, http.MethodPost, "/api/sessions", "").Code)
}

func TestSessionStream(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.handler)
	defer ts.Close()

	s, err := f.deps.Factory.Open(context.Background(), domain.None[domain.Record]())
	require.NoError(t, err)
	f.deps.Sessions.Add(s)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/sessions/" + s.ID() + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	type frame struct {
		Type     string              `json:"type"`
		Snapshot *assistant.Snapshot `json:"snapshot"`
		Message  *domain.ChatMessage `json:"message"`
		State    string              `json:"state"`
	}
	read := func() frame {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var fr frame
		require.NoError(t, conn.ReadJSON(&fr))
		return fr
	}

	first := read()
	require.Equal(t, "snapshot", first.Type)
	require.NotNil(t, first.Snapshot)
	assert.Len(t, first.Snapshot.Messages, 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "send", "text": "hello"}))

	var replies []string
	for {
		fr := read()
		if fr.Type == "message" && fr.Message.Role == domain.RoleAssistant {
			replies = append(replies, fr.Message.Text)
		}
		if fr.Type == "state" && fr.State == "ready" {
			break
		}
	}
	require.Len(t, replies, 1)
	assert.True(t, strings.HasPrefix(replies[0], "Since there is no real API Key"))

	require.NoError(t, s.Close())
	closed := read()
	assert.Equal(t, "state", closed.Type)
	assert.Equal(t, "closed", closed.State)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, bytes.Contains(rec.Body.Bytes(), []byte(`"error"`)))
}
