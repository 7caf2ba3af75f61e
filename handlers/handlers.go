package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/K1ssSh0t/url-shortener/models"
	"github.com/K1ssSh0t/url-shortener/shortcode"
	"github.com/K1ssSh0t/url-shortener/store"
)

// generateShortCode yields the code for a new mapping.
// It will be monkey patched during testing to produce
// a predictable result.
var generateShortCode = shortcode.Generate

// ShortenerHandler serves the /api/v1 mapping routes.
type ShortenerHandler struct {
	store store.Store
	log   *slog.Logger
}

// NewShortenerHandler is the factory function of ShortenerHandler
func NewShortenerHandler(router *gin.RouterGroup, s store.Store, log *slog.Logger) {
	handler := &ShortenerHandler{
		store: s,
		log:   log,
	}

	v1 := router.Group("/api/v1")
	v1.POST("/shorten", handler.ShortenURL)
	v1.GET("/shorten/:shortCode", handler.RedirectURL)
	v1.PUT("/shorten/:shortCode", handler.UpdateURL)
	v1.DELETE("/shorten/:shortCode", handler.DeleteURL)
	v1.GET("/shorten/:shortCode/stats", handler.URLStats)
}

// ShortenURL creates a mapping for the submitted URL.
//
//	@Summary		Shorten a URL
//	@Description	Generates a random 6-character code for the submitted URL. Codes are not checked for collisions.
//	@Tags			shorten
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.ShortenRequest	true	"destination URL"
//	@Success		200		{object}	models.ShortenResponse
//	@Failure		400		{object}	map[string]string
//	@Router			/shorten [post]
func (h *ShortenerHandler) ShortenURL(c *gin.Context) {
	var req models.ShortenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("ShouldBindJSON failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "url is required"})
		return
	}

	mapping := &models.Mapping{
		ShortCode: generateShortCode(),
		URL:       req.URL,
		Clicks:    0,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.Create(c.Request.Context(), mapping); err != nil {
		h.log.Error("store.Create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ShortenResponse{
		ShortCode: mapping.ShortCode,
		URL:       mapping.URL,
	})
}

// RedirectURL resolves a short code, counts the visit and redirects to the
// destination. The lookup and the increment are two separate store calls
// with no atomicity between them; a mapping deleted in between still
// redirects and the increment counts nothing.
//
//	@Summary	Redirect to the destination URL
//	@Tags		shorten
//	@Produce	plain
//	@Param		shortCode	path	string	true	"short code"
//	@Success	302
//	@Failure	404	{string}	string	"URL not found"
//	@Router		/shorten/{shortCode} [get]
func (h *ShortenerHandler) RedirectURL(c *gin.Context) {
	code := c.Param("shortCode")

	mapping, err := h.store.Find(c.Request.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		c.String(http.StatusNotFound, "URL not found")
		return
	}
	if err != nil {
		h.log.Error("store.Find failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if err := h.store.IncrementClicks(c.Request.Context(), code); err != nil {
		h.log.Error("store.IncrementClicks failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, mapping.URL)
}

// UpdateURL replaces the destination URL of an existing mapping. Click
// count and creation time are untouched.
//
//	@Summary	Update the destination URL
//	@Tags		shorten
//	@Accept		json
//	@Produce	json
//	@Param		shortCode	path		string					true	"short code"
//	@Param		request		body		models.ShortenRequest	true	"new destination URL"
//	@Success	200			{object}	map[string]string
//	@Failure	400			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Router		/shorten/{shortCode} [put]
func (h *ShortenerHandler) UpdateURL(c *gin.Context) {
	var req models.ShortenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("ShouldBindJSON failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "url is required"})
		return
	}

	err := h.store.UpdateURL(c.Request.Context(), c.Param("shortCode"), req.URL)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "url not found"})
		return
	}
	if err != nil {
		h.log.Error("store.UpdateURL failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "url updated successfully"})
}

// DeleteURL removes a mapping.
//
//	@Summary	Delete a mapping
//	@Tags		shorten
//	@Produce	json
//	@Param		shortCode	path		string	true	"short code"
//	@Success	200			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Router		/shorten/{shortCode} [delete]
func (h *ShortenerHandler) DeleteURL(c *gin.Context) {
	err := h.store.Delete(c.Request.Context(), c.Param("shortCode"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "url not found"})
		return
	}
	if err != nil {
		h.log.Error("store.Delete failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "url deleted successfully"})
}

// URLStats returns the stored mapping with its click count.
//
//	@Summary	Click statistics for a mapping
//	@Tags		shorten
//	@Produce	json
//	@Param		shortCode	path		string	true	"short code"
//	@Success	200			{object}	models.Mapping
//	@Failure	404			{object}	map[string]string
//	@Router		/shorten/{shortCode}/stats [get]
func (h *ShortenerHandler) URLStats(c *gin.Context) {
	mapping, err := h.store.Find(c.Request.Context(), c.Param("shortCode"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "url not found"})
		return
	}
	if err != nil {
		h.log.Error("store.Find failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapping)
}
