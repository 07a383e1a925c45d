package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TheWaulicus/wolves-den-inventory/app"
	"github.com/TheWaulicus/wolves-den-inventory/service"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type TransactionController struct{ *Srv }

func NewTransactionController(s *Srv) *TransactionController {
	return &TransactionController{Srv: s}
}

func (tc *TransactionController) List(c *gin.Context) {
	f := store.TransactionFilter{
		Status:     c.Query("status"),
		BorrowerID: c.Query("borrowerId"),
		GearItemID: c.Query("gearItemId"),
	}
	if v := c.Query("overdue"); v != "" {
		overdue := v == "true"
		f.IsOverdue = &overdue
	}
	if v := c.Query("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	ts, err := tc.Transactions.GetAll(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"transactions": ts})
}

func (tc *TransactionController) Get(c *gin.Context) {
	t, err := tc.Transactions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, app.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (tc *TransactionController) CheckOut(c *gin.Context) {
	var in struct {
		GearItemID    string    `json:"gearItemId" binding:"required"`
		BorrowerID    string    `json:"borrowerId" binding:"required"`
		DueDate       time.Time `json:"dueDate" binding:"required"`
		CheckoutNotes string    `json:"checkoutNotes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	id, err := tc.Transactions.CheckOut(c.Request.Context(), service.CheckOutInput{
		GearItemID:    in.GearItemID,
		BorrowerID:    in.BorrowerID,
		DueDate:       in.DueDate,
		CheckoutNotes: in.CheckoutNotes,
		CheckedOutBy:  app.ActorID(c),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"id": id})
}

func (tc *TransactionController) CheckIn(c *gin.Context) {
	var in struct {
		ReturnCondition   string `json:"returnCondition"`
		ReturnNotes       string `json:"returnNotes"`
		DamageReported    bool   `json:"damageReported"`
		DamageDescription string `json:"damageDescription"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	err := tc.Transactions.CheckIn(c.Request.Context(), c.Param("id"), service.CheckInInput{
		ReturnCondition:   in.ReturnCondition,
		ReturnNotes:       in.ReturnNotes,
		DamageReported:    in.DamageReported,
		DamageDescription: in.DamageDescription,
		ReturnedBy:        app.ActorID(c),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (tc *TransactionController) Cancel(c *gin.Context) {
	if err := tc.Transactions.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// OverdueScan is on-demand; nothing schedules it internally.
func (tc *TransactionController) OverdueScan(c *gin.Context) {
	n, err := tc.Transactions.CheckOverdue(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"updated": n})
}

func (tc *TransactionController) Archive(c *gin.Context) {
	if err := tc.Transactions.MoveToHistory(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (tc *TransactionController) History(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	as, err := tc.Transactions.GetHistory(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"history": as})
}

func (tc *TransactionController) Stats(c *gin.Context) {
	stats, err := tc.Transactions.GetStatistics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
