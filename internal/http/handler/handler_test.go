package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/http/middleware"
	"libraryapi/internal/model"
	"libraryapi/internal/service"
	svcmocks "libraryapi/internal/service/mocks"
	stmocks "libraryapi/internal/storage/mocks"
)

const testPasskey = "admin123"

type testDeps struct {
	ledger  *svcmocks.MockLedgerService
	catalog *svcmocks.MockCatalogService
	history *svcmocks.MockHistoryService
	snaps   *stmocks.MockSnapshotter
}

func newTestApp(t *testing.T) (*fiber.App, testDeps) {
	t.Helper()

	d := testDeps{
		ledger:  new(svcmocks.MockLedgerService),
		catalog: new(svcmocks.MockCatalogService),
		history: new(svcmocks.MockHistoryService),
		snaps:   new(stmocks.MockSnapshotter),
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	RegisterRoutes(app, Deps{
		Ledger:       d.ledger,
		Catalog:      d.catalog,
		History:      d.history,
		Snapshotter:  d.snaps,
		AdminPasskey: testPasskey,
	})
	return app, d
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var payload errorPayload
	decodeBody(t, resp, &payload)
	return payload
}

func sampleTitle() *model.Title {
	return &model.Title{
		ID:             "t1",
		Title:          "Dune",
		Author:         "Frank Herbert",
		Category:       "Fiction / Mystery",
		CopyCount:      2,
		AvailableCount: 1,
		BorrowRecords: []model.BorrowRecord{
			{HolderID: "u1", HolderName: "Alice Smith", DueDate: time.Now().Add(15 * 24 * time.Hour)},
		},
	}
}

func TestListTitles(t *testing.T) {
	app, d := newTestApp(t)
	d.catalog.On("Search", mock.Anything, "dune", "fiction-mystery").
		Return([]model.Title{*sampleTitle()}, nil)

	resp := doJSON(t, app, http.MethodGet, "/titles?q=dune&category=fiction-mystery", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body titleListResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Dune", body.Items[0].Title)
	d.catalog.AssertExpectations(t)
}

func TestListCategories(t *testing.T) {
	app, d := newTestApp(t)
	d.catalog.On("Categories", mock.Anything).Return([]model.Category{
		{ID: "all", Name: "All Books", Count: 3},
		{ID: "fiction-mystery", Name: "Fiction / Mystery", Count: 3},
	}, nil)

	resp := doJSON(t, app, http.MethodGet, "/categories", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var cats []model.Category
	decodeBody(t, resp, &cats)
	require.Len(t, cats, 2)
	assert.Equal(t, "all", cats[0].ID)
}

func TestBorrowTitle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app, d := newTestApp(t)
		d.ledger.On("Borrow", mock.Anything, "t1", service.Holder{ID: "u1", Name: "Alice Smith"}).
			Return(sampleTitle(), nil)

		resp := doJSON(t, app, http.MethodPost, "/titles/t1/borrow",
			lendingRequest{HolderID: "u1", HolderName: "Alice Smith"}, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var title model.Title
		decodeBody(t, resp, &title)
		assert.Equal(t, "t1", title.ID)
		d.ledger.AssertExpectations(t)
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{"unknown title", service.ErrTitleNotFound, http.StatusNotFound, "NOT_FOUND"},
			{"no copies", service.ErrNoCopiesAvailable, http.StatusConflict, "NO_COPIES_AVAILABLE"},
			{"double borrow", service.ErrAlreadyBorrowed, http.StatusConflict, "ALREADY_BORROWED"},
			{"missing holder", service.ErrHolderRequired, http.StatusBadRequest, "VALIDATION_ERROR"},
			{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				app, d := newTestApp(t)
				d.ledger.On("Borrow", mock.Anything, "t1", mock.Anything).
					Return(nil, tc.err)

				resp := doJSON(t, app, http.MethodPost, "/titles/t1/borrow",
					lendingRequest{HolderID: "u1"}, nil)
				assert.Equal(t, tc.wantStatus, resp.StatusCode)

				payload := decodeError(t, resp)
				assert.Equal(t, tc.wantCode, payload.Error.Code)
				assert.NotEmpty(t, payload.RequestID)
			})
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		app, _ := newTestApp(t)
		req := httptest.NewRequest(http.MethodPost, "/titles/t1/borrow", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})
}

func TestReturnTitle(t *testing.T) {
	t.Run("holder return", func(t *testing.T) {
		app, d := newTestApp(t)
		d.ledger.On("Return", mock.Anything, "t1", service.Holder{ID: "u1"}, false).
			Return(sampleTitle(), nil)

		resp := doJSON(t, app, http.MethodPost, "/titles/t1/return",
			lendingRequest{HolderID: "u1"}, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		d.ledger.AssertExpectations(t)
	})

	t.Run("admin override flag follows the passkey header", func(t *testing.T) {
		app, d := newTestApp(t)
		d.ledger.On("Return", mock.Anything, "t1", service.Holder{ID: "admin"}, true).
			Return(sampleTitle(), nil)

		resp := doJSON(t, app, http.MethodPost, "/titles/t1/return",
			lendingRequest{HolderID: "admin"},
			map[string]string{AdminPasskeyHeader: testPasskey})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		d.ledger.AssertExpectations(t)
	})

	t.Run("wrong passkey is not an override", func(t *testing.T) {
		app, d := newTestApp(t)
		d.ledger.On("Return", mock.Anything, "t1", service.Holder{ID: "u9"}, false).
			Return(nil, service.ErrNotBorrowed)

		resp := doJSON(t, app, http.MethodPost, "/titles/t1/return",
			lendingRequest{HolderID: "u9"},
			map[string]string{AdminPasskeyHeader: "wrong"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "NOT_BORROWED", decodeError(t, resp).Error.Code)
	})
}

func TestCreateTitle(t *testing.T) {
	body := createTitleRequest{
		Title:     "Dune",
		Author:    "Frank Herbert",
		Category:  "Science Fiction",
		CopyCount: 2,
	}

	t.Run("requires admin passkey", func(t *testing.T) {
		app, d := newTestApp(t)

		resp := doJSON(t, app, http.MethodPost, "/titles", body, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
		d.ledger.AssertNotCalled(t, "AddTitle", mock.Anything, mock.Anything)
	})

	t.Run("creates with valid passkey", func(t *testing.T) {
		app, d := newTestApp(t)
		d.ledger.On("AddTitle", mock.Anything, service.AddTitleInput{
			Title:     "Dune",
			Author:    "Frank Herbert",
			Category:  "Science Fiction",
			CopyCount: 2,
		}).Return(sampleTitle(), nil)

		resp := doJSON(t, app, http.MethodPost, "/titles", body,
			map[string]string{AdminPasskeyHeader: testPasskey})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		d.ledger.AssertExpectations(t)
	})

	t.Run("rejects missing author", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp := doJSON(t, app, http.MethodPost, "/titles",
			createTitleRequest{Title: "Dune"},
			map[string]string{AdminPasskeyHeader: testPasskey})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Error.Code)
	})
}

func TestDeleteTitle(t *testing.T) {
	t.Run("requires admin passkey", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp := doJSON(t, app, http.MethodDelete, "/titles/t1", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("deletes", func(t *testing.T) {
		app, d := newTestApp(t)
		d.ledger.On("RemoveTitle", mock.Anything, "t1").Return(nil)

		resp := doJSON(t, app, http.MethodDelete, "/titles/t1", nil,
			map[string]string{AdminPasskeyHeader: testPasskey})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		d.ledger.AssertExpectations(t)
	})

	t.Run("unknown title", func(t *testing.T) {
		app, d := newTestApp(t)
		d.ledger.On("RemoveTitle", mock.Anything, "missing").Return(service.ErrTitleNotFound)

		resp := doJSON(t, app, http.MethodDelete, "/titles/missing", nil,
			map[string]string{AdminPasskeyHeader: testPasskey})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHistoryRoutes(t *testing.T) {
	t.Run("full history requires admin", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp := doJSON(t, app, http.MethodGet, "/history", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("full history", func(t *testing.T) {
		app, d := newTestApp(t)
		d.history.On("Full", mock.Anything).Return([]model.HistoryEntry{
			{ID: "h1", Action: model.ActionBorrowed},
		}, nil)

		resp := doJSON(t, app, http.MethodGet, "/history", nil,
			map[string]string{AdminPasskeyHeader: testPasskey})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var entries []model.HistoryEntry
		decodeBody(t, resp, &entries)
		require.Len(t, entries, 1)
		d.history.AssertExpectations(t)
	})

	t.Run("holder history is open", func(t *testing.T) {
		app, d := newTestApp(t)
		d.history.On("ForHolder", mock.Anything, "u1").Return([]model.HistoryEntry{}, nil)

		resp := doJSON(t, app, http.MethodGet, "/history/u1", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		d.history.AssertExpectations(t)
	})
}

func TestUsersRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/users", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var users []model.User
	decodeBody(t, resp, &users)
	require.NotEmpty(t, users)
	assert.Equal(t, "student1", users[0].ID)
}

func TestVerifyPasskey(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("valid", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/admin/verify",
			map[string]string{"passkey": testPasskey}, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]bool
		decodeBody(t, resp, &body)
		assert.True(t, body["valid"])
	})

	t.Run("invalid", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/admin/verify",
			map[string]string{"passkey": "wrong"}, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]bool
		decodeBody(t, resp, &body)
		assert.False(t, body["valid"])
	})
}

func TestHealthRoutes(t *testing.T) {
	t.Run("liveness", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp := doJSON(t, app, http.MethodGet, "/healthz", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("readiness healthy", func(t *testing.T) {
		app, d := newTestApp(t)
		d.snaps.On("Ping", mock.Anything).Return(nil)

		resp := doJSON(t, app, http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("readiness degraded", func(t *testing.T) {
		app, d := newTestApp(t)
		d.snaps.On("Ping", mock.Anything).Return(errors.New("bucket gone"))

		resp := doJSON(t, app, http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestUnknownRouteEnvelope(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
}
