package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TheWaulicus/wolves-den-inventory/app"
)

type SessionController struct{ *Srv }

func NewSessionController(s *Srv) *SessionController { return &SessionController{Srv: s} }

// Login issues a session for an opaque actor id. Who the actor is and
// whether they may administer gear is the identity provider's problem,
// not this service's.
func (sc *SessionController) Login(c *gin.Context) {
	var in struct {
		ActorID string `json:"actorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	id := uuid.NewString()
	if err := sc.Sessions.Create(c.Request.Context(), id, in.ActorID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	sc.setSessionCookie(c, id, sc.Cfg.SessionTTL)
	c.JSON(http.StatusCreated, app.H{"token": id, "actorId": in.ActorID})
}

func (sc *SessionController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.SessionCookie); err == nil && ck.Value != "" {
		_ = sc.Sessions.Delete(c.Request.Context(), ck.Value)
	}
	sc.setSessionCookie(c, "", -time.Second)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// RevokeAll invalidates every session of the calling actor, this one
// included.
func (sc *SessionController) RevokeAll(c *gin.Context) {
	if err := sc.Sessions.RevokeAllForActor(c.Request.Context(), app.ActorID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	sc.setSessionCookie(c, "", -time.Second)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (sc *SessionController) WhoAmI(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"actorId": app.ActorID(c)})
}

func (sc *SessionController) setSessionCookie(c *gin.Context, id string, maxAge time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(sc.Cfg.WebOrigin, "https://"),
	})
}
