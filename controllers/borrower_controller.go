package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TheWaulicus/wolves-den-inventory/app"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type BorrowerController struct{ *Srv }

func NewBorrowerController(s *Srv) *BorrowerController { return &BorrowerController{Srv: s} }

func (bc *BorrowerController) Create(c *gin.Context) {
	var b models.Borrower
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if b.Status == "" {
		b.Status = models.BorrowerActive
	}
	if b.MaxItems == 0 {
		b.MaxItems = 5
	}
	if b.PreferredContact == "" {
		b.PreferredContact = models.ContactEmail
	}
	id, err := bc.Borrowers.Create(c.Request.Context(), &b, app.ActorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"id": id})
}

func (bc *BorrowerController) Get(c *gin.Context) {
	b, err := bc.Borrowers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, app.H{"error": "borrower not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BorrowerController) List(c *gin.Context) {
	if term := c.Query("q"); term != "" {
		bs, err := bc.Borrowers.Search(c.Request.Context(), term)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, app.H{"borrowers": bs})
		return
	}
	f := store.BorrowerFilter{Status: c.Query("status")}
	if v := c.Query("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	bs, err := bc.Borrowers.GetAll(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"borrowers": bs})
}

func (bc *BorrowerController) Update(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	// Counters belong to the transaction workflow.
	delete(fields, "currentItemCount")
	delete(fields, "totalBorrows")
	delete(fields, "overdueCount")
	if err := bc.Borrowers.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (bc *BorrowerController) Delete(c *gin.Context) {
	if err := bc.Borrowers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (bc *BorrowerController) HardDelete(c *gin.Context) {
	if err := bc.Borrowers.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// AdjustCounters is the admin repair path for the denormalized
// counters, used when a fallback-mode partial failure leaves them
// drifted from the open loans.
func (bc *BorrowerController) AdjustCounters(c *gin.Context) {
	var in struct {
		Counter string `json:"counter" binding:"required,oneof=items overdue"`
		Delta   int    `json:"delta" binding:"required,oneof=1 -1"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	var err error
	switch {
	case in.Counter == "items" && in.Delta > 0:
		err = bc.Borrowers.IncrementItemCount(ctx, id)
	case in.Counter == "items":
		err = bc.Borrowers.DecrementItemCount(ctx, id)
	case in.Delta > 0:
		err = bc.Borrowers.IncrementOverdueCount(ctx, id)
	default:
		err = bc.Borrowers.DecrementOverdueCount(ctx, id)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (bc *BorrowerController) Stats(c *gin.Context) {
	stats, err := bc.Borrowers.GetStatistics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
