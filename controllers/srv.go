package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheWaulicus/wolves-den-inventory/app"
	"github.com/TheWaulicus/wolves-den-inventory/apperr"
	"github.com/TheWaulicus/wolves-den-inventory/service"
	"github.com/TheWaulicus/wolves-den-inventory/session"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

// Srv aggregates the services the controllers call.
type Srv struct {
	GearTypes    *service.GearTypeService
	Gear         *service.GearItemService
	Borrowers    *service.BorrowerService
	Transactions *service.TransactionService
	Sessions     session.Store
	Store        store.Store
	Cfg          app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		GearTypes:    service.NewGearTypeService(a.Store),
		Gear:         service.NewGearItemService(a.Store),
		Borrowers:    service.NewBorrowerService(a.Store),
		Transactions: service.NewTransactionService(a.Store),
		Sessions:     a.Sessions,
		Store:        a.Store,
		Cfg:          a.Config,
	}
}

// fail maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a backend error and surfaces as-is.
func fail(c *gin.Context, err error) {
	if ve, ok := apperr.IsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": ve.Error(), "rules": ve.Rules})
		return
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotAvailable), errors.Is(err, apperr.ErrInvalidState):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrBorrowingNotAllowed):
		c.JSON(http.StatusForbidden, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

// bindFields reads a partial-update body as document fields, dropping
// the keys callers must not touch directly.
func bindFields(c *gin.Context) (store.Fields, bool) {
	var fields store.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return nil, false
	}
	delete(fields, "id")
	delete(fields, "createdAt")
	delete(fields, "updatedAt")
	return fields, true
}
