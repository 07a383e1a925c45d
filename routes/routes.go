package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/TheWaulicus/wolves-den-inventory/app"
	"github.com/TheWaulicus/wolves-den-inventory/controllers"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	sessionCtl := controllers.NewSessionController(s)
	gearTypeCtl := controllers.NewGearTypeController(s)
	gearCtl := controllers.NewGearController(s)
	borrowerCtl := controllers.NewBorrowerController(s)
	txCtl := controllers.NewTransactionController(s)

	authMW := app.AuthRequired(a.Sessions)

	// ------------------------------
	// Sessions (identity provider adapter)
	// ------------------------------
	sess := r.Group("/api/session")
	{
		sess.POST("", sessionCtl.Login)
	}
	sessAuth := sess.Group("", authMW)
	{
		sessAuth.GET("", sessionCtl.WhoAmI)
		sessAuth.DELETE("", sessionCtl.Logout)
		sessAuth.POST("/revoke-all", sessionCtl.RevokeAll)
	}

	// ------------------------------
	// Gear type catalog
	// ------------------------------
	gearTypes := r.Group("/api/gear-types", authMW)
	{
		gearTypes.GET("", gearTypeCtl.List) // ?category=&active=&q=&limit=
		gearTypes.POST("", gearTypeCtl.Create)
		gearTypes.GET("/grouped", gearTypeCtl.Grouped)
		gearTypes.GET("/stats", gearTypeCtl.Stats)
		gearTypes.PUT("/reorder", gearTypeCtl.Reorder)
		gearTypes.GET("/:id", gearTypeCtl.Get)
		gearTypes.PUT("/:id", gearTypeCtl.Update)
		gearTypes.DELETE("/:id", gearTypeCtl.Delete)
		gearTypes.DELETE("/:id/permanent", gearTypeCtl.HardDelete)
	}

	// ------------------------------
	// Gear items
	// ------------------------------
	gear := r.Group("/api/gear", authMW)
	{
		gear.GET("", gearCtl.List) // ?status=&gearType=&condition=&q=&limit=
		gear.POST("", gearCtl.Create)
		gear.GET("/barcode", gearCtl.Barcode) // ?prefix=
		gear.GET("/stats", gearCtl.Stats)
		gear.GET("/:id", gearCtl.Get)
		gear.PUT("/:id", gearCtl.Update)
		gear.DELETE("/:id", gearCtl.Delete)
		gear.DELETE("/:id/permanent", gearCtl.HardDelete)
		gear.POST("/:id/maintenance", gearCtl.SendToMaintenance)
	}

	// ------------------------------
	// Borrowers
	// ------------------------------
	borrowers := r.Group("/api/borrowers", authMW)
	{
		borrowers.GET("", borrowerCtl.List) // ?status=&q=&limit=
		borrowers.POST("", borrowerCtl.Create)
		borrowers.GET("/stats", borrowerCtl.Stats)
		borrowers.GET("/:id", borrowerCtl.Get)
		borrowers.PUT("/:id", borrowerCtl.Update)
		borrowers.POST("/:id/counters", borrowerCtl.AdjustCounters)
		borrowers.DELETE("/:id", borrowerCtl.Delete)
		borrowers.DELETE("/:id/permanent", borrowerCtl.HardDelete)
	}

	// ------------------------------
	// Checkout / return workflow
	// ------------------------------
	txs := r.Group("/api/transactions", authMW)
	{
		txs.GET("", txCtl.List) // ?status=&borrowerId=&gearItemId=&overdue=&limit=
		txs.POST("/checkout", txCtl.CheckOut)
		txs.POST("/overdue-scan", txCtl.OverdueScan)
		txs.GET("/history", txCtl.History)
		txs.GET("/stats", txCtl.Stats)
		txs.GET("/:id", txCtl.Get)
		txs.POST("/:id/checkin", txCtl.CheckIn)
		txs.POST("/:id/cancel", txCtl.Cancel)
		txs.POST("/:id/archive", txCtl.Archive)
	}
}
