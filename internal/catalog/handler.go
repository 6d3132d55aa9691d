package catalog

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"slayervault/internal/particles"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/characters", h.list)                         // GET /characters
	rg.GET("/characters/:slug", h.getBySlug)              // GET /characters/:slug
	rg.GET("/characters/:slug/particles", h.particlesFor) // GET /characters/:slug/particles
	rg.GET("/tags", h.tags)                               // GET /tags
}

func (h *Handler) list(c *gin.Context) {
	q := QuerySpec{
		Text:      c.Query("q"),
		Faction:   ParseFaction(c.Query("faction")),
		Rank:      ParseRankFilter(c.Query("rank")),
		Technique: ParseTechniqueFilter(c.Query("technique")),
		Sort:      ParseSortKey(c.Query("sort")),
	}

	// tags=Hashira,Mentor OR tags=Hashira&tags=Mentor
	tags := c.QueryArray("tags")
	if len(tags) == 1 && strings.Contains(tags[0], ",") {
		tags = strings.Split(tags[0], ",")
	}
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}
	q.Tags = tags

	items := h.Repo.List(c.Request.Context(), q)
	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

func (h *Handler) getBySlug(c *gin.Context) {
	rec := h.Repo.Get(c.Request.Context(), c.Param("slug"))
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// particlesFor seeds the layout with "<slug>-<vfx>" so each character and
// effect pair keeps a stable layout across renders.
func (h *Handler) particlesFor(c *gin.Context) {
	rec, ok := FindBySlug(h.Repo.Records, c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	effect := string(rec.Theme.VFX)
	preset, ok := particles.PresetFor(effect)
	if !ok {
		preset = particles.DefaultPreset
	}
	seed := rec.Slug + "-" + effect
	count := particles.ClampCount(particles.ParseCount(c.Query("count"), particles.DefaultCount))

	c.JSON(http.StatusOK, gin.H{
		"seed":      seed,
		"effect":    effect,
		"count":     count,
		"particles": particles.GenerateWith(count, seed, preset),
	})
}

func (h *Handler) tags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": h.Repo.Tags()})
}
