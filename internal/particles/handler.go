package particles

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultCount = 24
	MaxCount     = 500
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.generate)        // GET /particles
	rg.GET("/presets", h.presets) // GET /particles/presets
}

func (h *Handler) generate(c *gin.Context) {
	preset, ok := PresetFor(c.Query("preset"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown preset"})
		return
	}

	seed := c.Query("seed")
	count := ClampCount(ParseCount(c.Query("count"), DefaultCount))

	c.JSON(http.StatusOK, gin.H{
		"seed":      seed,
		"count":     count,
		"particles": GenerateWith(count, seed, preset),
	})
}

func (h *Handler) presets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": PresetNames()})
}

func ParseCount(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func ClampCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}
