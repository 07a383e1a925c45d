package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TheWaulicus/wolves-den-inventory/app"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type GearTypeController struct{ *Srv }

func NewGearTypeController(s *Srv) *GearTypeController { return &GearTypeController{Srv: s} }

func (tc *GearTypeController) Create(c *gin.Context) {
	var t models.GearType
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	id, err := tc.GearTypes.Create(c.Request.Context(), &t)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"id": id})
}

func (tc *GearTypeController) Get(c *gin.Context) {
	t, err := tc.GearTypes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, app.H{"error": "gear type not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (tc *GearTypeController) List(c *gin.Context) {
	f := store.GearTypeFilter{
		Category:   c.Query("category"),
		ActiveOnly: c.Query("active") == "true",
	}
	if v := c.Query("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	if term := c.Query("q"); term != "" {
		ts, err := tc.GearTypes.Search(c.Request.Context(), term)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, app.H{"gearTypes": ts})
		return
	}
	ts, err := tc.GearTypes.GetAll(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"gearTypes": ts})
}

func (tc *GearTypeController) Grouped(c *gin.Context) {
	grouped, err := tc.GearTypes.GetGroupedByCategory(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, grouped)
}

func (tc *GearTypeController) Update(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	if err := tc.GearTypes.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (tc *GearTypeController) Delete(c *gin.Context) {
	if err := tc.GearTypes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (tc *GearTypeController) HardDelete(c *gin.Context) {
	if err := tc.GearTypes.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (tc *GearTypeController) Reorder(c *gin.Context) {
	var in struct {
		OrderedIDs []string `json:"orderedIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := tc.GearTypes.Reorder(c.Request.Context(), in.OrderedIDs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (tc *GearTypeController) Stats(c *gin.Context) {
	stats, err := tc.GearTypes.GetStatistics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
