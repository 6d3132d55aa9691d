package upload

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"slayervault/internal/admin"
)

const (
	maxUploadBytes = 20 << 20
	maxFormMemory  = 8 << 20
)

type Handler struct {
	Blobs    BlobStore
	Auth     admin.Authorizer
	Log      *zap.Logger
	MaxBytes int64
}

func NewHandler(blobs BlobStore, auth admin.Authorizer, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Blobs: blobs, Auth: auth, Log: log, MaxBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.upload) // POST /upload
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)

	// parse up front; PostForm swallows errors and would report 401
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form"})
		return
	}

	if err := h.Auth.Authorize(c, c.PostForm("password")); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	name := strings.TrimSpace(c.PostForm("filename"))
	if name == "" {
		name = fh.Filename
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}
	defer f.Close()

	object := ObjectName(uuid.NewString(), name)
	url, err := h.Blobs.Put(c.Request.Context(), object, fh.Header.Get("Content-Type"), f)
	if err != nil {
		h.Log.Error("store upload", zap.String("object", object), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}
	h.Log.Info("upload stored", zap.String("object", object), zap.Int64("bytes", fh.Size))

	c.JSON(http.StatusOK, gin.H{"url": url})
}
