package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/invitation-letters/internal/config"
	"github.com/jonathan/invitation-letters/internal/letters"
	"github.com/jonathan/invitation-letters/internal/rendering"
	"github.com/jonathan/invitation-letters/internal/roster"
	"github.com/jonathan/invitation-letters/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmployees() []types.Employee {
	return []types.Employee{
		{ID: 1, FullName: "أحمد", Gender: types.GenderMale, JobTitle: "معلم", WorkLocation: "مدرسة النور", Division: "التعليم", City: "الرياض"},
		{ID: 2, FullName: "سارة", Gender: types.GenderFemale, JobTitle: "معلمة", WorkLocation: "مدرسة النور", Division: "التعليم", City: "الرياض"},
		{ID: 3, FullName: "خالد", Gender: types.GenderMale, PostResponsibility: "رئيس القسم", JobTitle: "مدير مدرسة", WorkLocation: "مدرسة النور", Division: "التعليم", City: "الرياض"},
		{ID: 4, FullName: "منى", Gender: types.GenderFemale, JobTitle: "محاسبة", WorkLocation: "الإدارة", Division: "المالية", City: "جدة"},
	}
}

// memoryRuns is an in-process letters.RunStore.
type memoryRuns struct {
	mu   sync.Mutex
	runs []letters.Report
}

func (m *memoryRuns) RecordRun(_ context.Context, report *letters.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, *report)
	return nil
}

func (m *memoryRuns) GetRun(_ context.Context, runID uuid.UUID) (*letters.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.runs {
		if m.runs[i].RunID == runID {
			r := m.runs[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memoryRuns) ListRuns(_ context.Context, limit int) ([]letters.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 || limit > len(m.runs) {
		limit = len(m.runs)
	}
	return append([]letters.Report(nil), m.runs[:limit]...), nil
}

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, types.GroupDocument) (string, error) {
	return "", errors.New("disk full")
}

type testServer struct {
	*Server
	repo *roster.MemoryRepository
	runs *memoryRuns
	out  string
}

func newTestServer(t *testing.T, cfg Config, renderer letters.Renderer) *testServer {
	t.Helper()
	out := t.TempDir()
	if renderer == nil {
		fr, err := rendering.NewFileRenderer("", out)
		require.NoError(t, err)
		renderer = fr
	}

	repo := roster.NewMemoryRepository(testEmployees()...)
	runs := &memoryRuns{}
	srv := New(cfg, Deps{
		Roster:    roster.NewService(repo),
		Generator: letters.NewGenerator(nil, renderer, nil),
		Runs:      runs,
	})
	return &testServer{Server: srv, repo: repo, runs: runs, out: out}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Config{}, nil)

	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, Config{}, nil)

	w := ts.do(t, http.MethodOptions, "/invited", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRosterSearch(t *testing.T) {
	ts := newTestServer(t, Config{}, nil)

	w := ts.do(t, http.MethodGet, "/roster", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decode[EmployeesResponse](t, w).Count)

	w = ts.do(t, http.MethodGet, "/roster?q=%D8%AC%D8%AF%D8%A9", nil) // جدة
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[EmployeesResponse](t, w)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, int64(4), resp.Employees[0].ID)
}

func TestInvitedLifecycle(t *testing.T) {
	ts := newTestServer(t, Config{}, nil)

	w := ts.do(t, http.MethodGet, "/invited", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[EmployeesResponse](t, w).Count)

	w = ts.do(t, http.MethodPost, "/invited", AddInvitedRequest{IDs: []int64{1, 2, 1}})
	require.Equal(t, http.StatusOK, w.Code)
	added := decode[roster.AddResult](t, w)
	assert.Equal(t, []int64{1, 2}, added.Added)
	assert.Equal(t, []int64{1}, added.AlreadyInvited)

	w = ts.do(t, http.MethodDelete, "/invited/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[map[string]int](t, w)["removed"])

	w = ts.do(t, http.MethodDelete, "/invited/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPut, "/invited", ReplaceInvitedRequest{IDs: []int64{4, 3, 4}})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/invited", nil)
	resp := decode[EmployeesResponse](t, w)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(4), resp.Employees[0].ID)
	assert.Equal(t, int64(3), resp.Employees[1].ID)

	w = ts.do(t, http.MethodDelete, "/invited", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	invited, err := ts.repo.ListInvited(context.Background())
	require.NoError(t, err)
	assert.Empty(t, invited)
}

func TestAddInvited_Errors(t *testing.T) {
	ts := newTestServer(t, Config{}, nil)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{name: "not in roster", body: AddInvitedRequest{IDs: []int64{1, 99}}, status: http.StatusBadRequest},
		{name: "empty list", body: AddInvitedRequest{IDs: []int64{}}, status: http.StatusBadRequest},
		{name: "non-positive id", body: AddInvitedRequest{IDs: []int64{0}}, status: http.StatusBadRequest},
		{name: "wrong shape", body: map[string]string{"ids": "1"}, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/invited", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decode[map[string]string](t, w)["error"])
		})
	}

	invited, err := ts.repo.ListInvited(context.Background())
	require.NoError(t, err)
	assert.Empty(t, invited, "rejected requests must not change the list")
}

func TestRemoveInvited_InvalidID(t *testing.T) {
	ts := newTestServer(t, Config{}, nil)

	w := ts.do(t, http.MethodDelete, "/invited/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGroups(t *testing.T) {
	ts := newTestServer(t, Config{}, nil)
	require.NoError(t, ts.repo.SetInvited(context.Background(), []int64{1, 2, 3, 4}))

	w := ts.do(t, http.MethodGet, "/groups", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[GroupsResponse](t, w)
	require.Len(t, resp.Groups, 2)

	school := resp.Groups[0]
	assert.Equal(t, "مدرسة النور", school.WorkLocation)
	assert.Len(t, school.Employees, 2, "responsible person is excluded from the body")
	assert.Equal(t, "بالسيد أحمد والسيدة سارة", school.CollectiveTitle)
	assert.Equal(t, "السيد مدير مدرسة", school.ResponsibilityLine)

	assert.Equal(t, "جدة", resp.Groups[1].City)
	assert.Equal(t, "بالسيدة منى", resp.Groups[1].CollectiveTitle)
}

func TestGenerate(t *testing.T) {
	ts := newTestServer(t, Config{}, nil)
	require.NoError(t, ts.repo.SetInvited(context.Background(), []int64{1, 4}))

	w := ts.do(t, http.MethodPost, "/generate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	report := decode[letters.Report](t, w)
	assert.Equal(t, letters.StatusCompleted, report.Status)
	require.Len(t, report.Artifacts, 2)
	for _, a := range report.Artifacts {
		_, err := os.Stat(a.Path)
		assert.NoError(t, err)
	}

	w = ts.do(t, http.MethodGet, "/runs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, w)["count"])

	w = ts.do(t, http.MethodGet, "/runs/"+report.RunID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, report.RunID, decode[letters.Report](t, w).RunID)

	w = ts.do(t, http.MethodGet, "/runs/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/runs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_RendererFailure(t *testing.T) {
	ts := newTestServer(t, Config{}, failingRenderer{})
	require.NoError(t, ts.repo.SetInvited(context.Background(), []int64{1}))

	w := ts.do(t, http.MethodPost, "/generate", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	report := decode[letters.Report](t, w)
	assert.Equal(t, letters.StatusFailed, report.Status)
	assert.Contains(t, report.Error, "disk full")
	assert.Len(t, ts.runs.runs, 1, "failed runs are recorded too")
}

func TestGenerate_RejectsConcurrentRun(t *testing.T) {
	ts := newTestServer(t, Config{}, nil)

	ts.generating.Lock()
	w := ts.do(t, http.MethodPost, "/generate", nil)
	ts.generating.Unlock()

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthentication(t *testing.T) {
	jwtCfg := &config.JWTConfig{Secret: "test-secret-key-for-jwt-signing-minimum-32-bytes", ExpirationHours: 1}
	ts := newTestServer(t, Config{JWT: jwtCfg}, nil)

	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code, "health stays public")

	w = ts.do(t, http.MethodGet, "/invited", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := NewJWTService(jwtCfg).GenerateToken("registrar")
	require.NoError(t, err)

	w = ts.do(t, http.MethodGet, "/invited", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ErrValidation{Field: "ids"}, http.StatusBadRequest},
		{&roster.NotInRosterError{IDs: []int64{9}}, http.StatusBadRequest},
		{&ErrNotFound{Resource: "run"}, http.StatusNotFound},
		{&roster.DuplicateError{IDs: []int64{1}}, http.StatusConflict},
		{&ErrGenerationInProgress{}, http.StatusConflict},
		{&letters.GenerationError{Message: "failed"}, http.StatusBadGateway},
		{&letters.GenerationError{Message: "failed", Cause: errors.New("template exploded")}, http.StatusBadGateway},
		{&letters.GenerationError{Message: "run cancelled", Cause: context.Canceled}, StatusClientClosedRequest},
		{&letters.GenerationError{Message: "failed to render document", Cause: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "%T", tt.err)
	}
}
