package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheWaulicus/wolves-den-inventory/app"
	"github.com/TheWaulicus/wolves-den-inventory/memdb"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/service"
	"github.com/TheWaulicus/wolves-den-inventory/session"
)

func newTestSrv() *Srv {
	st := memdb.New()
	return &Srv{
		GearTypes:    service.NewGearTypeService(st),
		Gear:         service.NewGearItemService(st),
		Borrowers:    service.NewBorrowerService(st),
		Transactions: service.NewTransactionService(st),
		Sessions:     session.NewMemStore(time.Hour),
		Store:        st,
		Cfg:          app.Config{WebOrigin: "http://localhost:5173", SessionTTL: time.Hour},
	}
}

func newTestRouter(s *Srv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("actorID", "admin") })

	borrowerCtl := NewBorrowerController(s)
	gearCtl := NewGearController(s)
	sessionCtl := NewSessionController(s)
	r.POST("/api/borrowers/:id/counters", borrowerCtl.AdjustCounters)
	r.GET("/api/gear/barcode", gearCtl.Barcode)
	r.POST("/api/session/revoke-all", sessionCtl.RevokeAll)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdjustCountersEndpoint(t *testing.T) {
	s := newTestSrv()
	r := newTestRouter(s)
	ctx := context.Background()

	id, err := s.Borrowers.Create(ctx, &models.Borrower{
		FirstName: "Alex", LastName: "Thompson", Status: models.BorrowerActive, MaxItems: 5,
	}, "admin")
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/api/borrowers/"+id+"/counters", `{"counter":"overdue","delta":1}`)
	assert.Equal(t, http.StatusOK, w.Code)

	b, err := s.Borrowers.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, b.OverdueCount)

	w = doJSON(r, http.MethodPost, "/api/borrowers/"+id+"/counters", `{"counter":"overdue","delta":-1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	b, err = s.Borrowers.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, b.OverdueCount)

	w = doJSON(r, http.MethodPost, "/api/borrowers/"+id+"/counters", `{"counter":"items","delta":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	b, err = s.Borrowers.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, b.CurrentItemCount)
	assert.Equal(t, 1, b.TotalBorrows)
}

func TestAdjustCountersEndpointRejectsBadInput(t *testing.T) {
	s := newTestSrv()
	r := newTestRouter(s)

	w := doJSON(r, http.MethodPost, "/api/borrowers/some-id/counters", `{"counter":"karma","delta":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/borrowers/some-id/counters", `{"counter":"items","delta":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/borrowers/unknown/counters", `{"counter":"items","delta":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBarcodeEndpoint(t *testing.T) {
	s := newTestSrv()
	r := newTestRouter(s)

	w := doJSON(r, http.MethodGet, "/api/gear/barcode", "")
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Barcode string `json:"barcode"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Regexp(t, `^WDI-[0-9A-Z]+-[0-9A-Z]{4}$`, out.Barcode)

	w = doJSON(r, http.MethodGet, "/api/gear/barcode?prefix=TEAM", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, strings.HasPrefix(out.Barcode, "TEAM-"))
}

func TestRevokeAllEndpoint(t *testing.T) {
	s := newTestSrv()
	r := newTestRouter(s)
	ctx := context.Background()

	require.NoError(t, s.Sessions.Create(ctx, "tok-1", "admin"))
	require.NoError(t, s.Sessions.Create(ctx, "tok-2", "admin"))
	require.NoError(t, s.Sessions.Create(ctx, "tok-3", "someone-else"))

	w := doJSON(r, http.MethodPost, "/api/session/revoke-all", "")
	assert.Equal(t, http.StatusOK, w.Code)

	_, err := s.Sessions.Get(ctx, "tok-1")
	assert.True(t, errors.Is(err, session.ErrNoSession))
	_, err = s.Sessions.Get(ctx, "tok-2")
	assert.True(t, errors.Is(err, session.ErrNoSession))
	_, err = s.Sessions.Get(ctx, "tok-3")
	assert.NoError(t, err, "other actors keep their sessions")
}
