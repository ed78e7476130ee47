package userapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/rxfetch/errors"
	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/server"
	"github.com/kbukum/rxfetch/validation"
)

const serviceName = "user-api"

// Handler serves the user routes.
type Handler struct {
	dir *Directory
	log *logger.Logger
}

// NewHandler creates a Handler over dir.
func NewHandler(dir *Directory, log *logger.Logger) *Handler {
	return &Handler{dir: dir, log: log}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/users/:id", h.GetUser)
}

// GetUser answers GET /users/:id: 400 for a malformed id, 404 for an unknown
// one, 503 for a forced failure. The configured latency is honored before
// answering unless the caller goes away first.
func (h *Handler) GetUser(c *gin.Context) {
	v := validation.New()
	id := v.PositiveInt("id", c.Param("id"))
	if err := v.Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	if d := h.dir.Latency(id); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-c.Request.Context().Done():
			h.log.WithContext(c.Request.Context()).Debug("client went away", logger.Fields(logger.FieldUserID, id))
			c.Abort()
			return
		}
	}

	if h.dir.Fails(id) {
		server.RespondWithError(c, errors.ServiceUnavailable(serviceName).WithDetail("id", id))
		return
	}
	user, ok := h.dir.Lookup(id)
	if !ok {
		server.RespondWithError(c, errors.NotFound("user", c.Param("id")))
		return
	}
	server.RespondOK(c, user)
}
