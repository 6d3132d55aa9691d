package overrides

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slayervault/internal/admin"
	"slayervault/internal/sync"
	"slayervault/pkg/models"
)

// Broadcaster is satisfied by *sync.Hub.
type Broadcaster interface {
	BroadcastJSON(v any)
}

type Handler struct {
	Store Store
	Auth  admin.Authorizer
	Hub   Broadcaster
	Log   *zap.Logger
}

func NewHandler(store Store, auth admin.Authorizer, hub Broadcaster, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Store: store, Auth: auth, Hub: hub, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.get)  // GET /overrides[?slug=]
	rg.POST("", h.put) // POST /overrides
}

func (h *Handler) get(c *gin.Context) {
	if slug := strings.TrimSpace(c.Query("slug")); slug != "" {
		img, err := h.Store.Get(c.Request.Context(), slug)
		if err != nil {
			h.Log.Error("get override", zap.String("slug", slug), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"images": img})
		return
	}

	all, err := h.Store.All(c.Request.Context())
	if err != nil {
		h.Log.Error("list overrides", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"overrides": all})
}

type putReq struct {
	Slug     string         `json:"slug"`
	Images   *models.Images `json:"images"`
	Password string         `json:"password"`
}

func (h *Handler) put(c *gin.Context) {
	var req putReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if err := h.Auth.Authorize(c, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" || req.Images == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if err := h.Store.Put(c.Request.Context(), slug, *req.Images); err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}
		h.Log.Error("save override", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	h.Log.Info("override saved", zap.String("slug", slug))

	if h.Hub != nil {
		img := req.Images.Clone()
		ev := sync.OverrideEvent{
			Type:   sync.EventOverrideUpdate,
			Slug:   slug,
			Images: &img,
			At:     time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
