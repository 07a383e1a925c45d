package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TheWaulicus/wolves-den-inventory/app"
	"github.com/TheWaulicus/wolves-den-inventory/models"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

type GearController struct{ *Srv }

func NewGearController(s *Srv) *GearController { return &GearController{Srv: s} }

func (gc *GearController) Create(c *gin.Context) {
	var g models.GearItem
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if g.Condition == "" {
		g.Condition = models.ConditionGood
	}
	if g.Status == "" {
		g.Status = models.StatusAvailable
	}
	id, err := gc.Gear.Create(c.Request.Context(), &g, app.ActorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"id": id})
}

func (gc *GearController) Get(c *gin.Context) {
	g, err := gc.Gear.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if g == nil {
		c.JSON(http.StatusNotFound, app.H{"error": "gear item not found"})
		return
	}
	c.JSON(http.StatusOK, g)
}

func (gc *GearController) List(c *gin.Context) {
	if term := c.Query("q"); term != "" {
		items, err := gc.Gear.Search(c.Request.Context(), term)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, app.H{"items": items})
		return
	}
	f := store.GearItemFilter{
		Status:    c.Query("status"),
		GearType:  c.Query("gearType"),
		Condition: c.Query("condition"),
	}
	if v := c.Query("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	items, err := gc.Gear.GetAll(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

func (gc *GearController) Update(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	if err := gc.Gear.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (gc *GearController) Delete(c *gin.Context) {
	if err := gc.Gear.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (gc *GearController) HardDelete(c *gin.Context) {
	if err := gc.Gear.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (gc *GearController) SendToMaintenance(c *gin.Context) {
	var in struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&in)
	if err := gc.Gear.SendToMaintenance(c.Request.Context(), c.Param("id"), in.Note); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// Barcode hands the form a fresh label for a new unit.
func (gc *GearController) Barcode(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"barcode": gc.Gear.GenerateBarcode(c.Query("prefix"))})
}

func (gc *GearController) Stats(c *gin.Context) {
	stats, err := gc.Gear.GetStatistics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
