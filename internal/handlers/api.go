package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"
	"traveltales/internal/services"
	"traveltales/internal/utils"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the API-key-gated JSON mirror of the blog CRUD
// surface. Responses use a {success, data|error} envelope.
type APIHandler struct {
	content *services.ContentService
}

func NewAPIHandler(content *services.ContentService) *APIHandler {
	return &APIHandler{content: content}
}

// statsCacheTTL for the viewer-independent stats responses.
const statsCacheTTL = time.Minute

func apiOK(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func apiError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// apiFail maps service errors onto the envelope.
func apiFail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		apiError(c, http.StatusNotFound, "Blog not found")
	case errors.Is(err, services.ErrUnauthorized):
		apiError(c, http.StatusForbidden, "Not the owner of this blog")
	case errors.Is(err, services.ErrMissingFields):
		apiError(c, http.StatusBadRequest, "title, content, country and visit_date are required")
	default:
		log.Printf("api request failed: %v", err)
		apiError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// blogPayload is the request body for API mutations. The API is keyed,
// not session-backed, so the acting user travels in the body.
type blogPayload struct {
	UserID    uint   `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Country   string `json:"country"`
	VisitDate string `json:"visit_date"`
}

func (h *APIHandler) ListBlogs(c *gin.Context) {
	page := utils.ParsePage(c.Query("page"))
	limit := utils.StringToInt(c.DefaultQuery("limit", "5"))

	blogs, err := h.content.List(page, limit)
	if err != nil {
		apiFail(c, err)
		return
	}
	apiOK(c, http.StatusOK, blogs)
}

func (h *APIHandler) GetBlog(c *gin.Context) {
	blog, err := h.content.Get(uint(utils.StringToInt(c.Param("id"))))
	if err != nil {
		apiFail(c, err)
		return
	}
	apiOK(c, http.StatusOK, blog)
}

func (h *APIHandler) CreateBlog(c *gin.Context) {
	var payload blogPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if payload.UserID == 0 {
		apiError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	blog, err := h.content.Create(payload.UserID, payload.Title, payload.Content, payload.Country, payload.VisitDate)
	if err != nil {
		apiFail(c, err)
		return
	}
	apiOK(c, http.StatusCreated, blog)
}

func (h *APIHandler) UpdateBlog(c *gin.Context) {
	var payload blogPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	id := uint(utils.StringToInt(c.Param("id")))
	if err := h.content.Update(id, payload.UserID,
		payload.Title, payload.Content, payload.Country, payload.VisitDate); err != nil {
		apiFail(c, err)
		return
	}

	blog, err := h.content.Get(id)
	if err != nil {
		apiFail(c, err)
		return
	}
	apiOK(c, http.StatusOK, blog)
}

func (h *APIHandler) DeleteBlog(c *gin.Context) {
	var payload blogPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	id := uint(utils.StringToInt(c.Param("id")))
	if err := h.content.Delete(id, payload.UserID); err != nil {
		apiFail(c, err)
		return
	}
	apiOK(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *APIHandler) Search(c *gin.Context) {
	query := c.Query("query")
	mode := services.SearchMode(c.DefaultQuery("searchType", string(services.SearchByCountry)))
	page := utils.ParsePage(c.Query("page"))
	limit := utils.StringToInt(c.DefaultQuery("limit", "5"))

	blogs, err := h.content.Search(query, mode, page, limit)
	if err != nil {
		apiFail(c, err)
		return
	}
	// An empty page is a reportable condition, not an error.
	apiOK(c, http.StatusOK, gin.H{"results": blogs, "count": len(blogs)})
}

// PopularPosts returns the top 3 by like count, cached briefly since
// the answer is viewer-independent.
func (h *APIHandler) PopularPosts(c *gin.Context) {
	const cacheKey = "stats:popular-posts"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		apiOK(c, http.StatusOK, cached)
		return
	}

	blogs, err := h.content.Popular()
	if err != nil {
		apiFail(c, err)
		return
	}
	utils.GetCache().Set(cacheKey, blogs, statsCacheTTL)
	apiOK(c, http.StatusOK, blogs)
}

// RecentPosts returns the 3 newest, cached like PopularPosts.
func (h *APIHandler) RecentPosts(c *gin.Context) {
	const cacheKey = "stats:recent-posts"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		apiOK(c, http.StatusOK, cached)
		return
	}

	blogs, err := h.content.Recent()
	if err != nil {
		apiFail(c, err)
		return
	}
	utils.GetCache().Set(cacheKey, blogs, statsCacheTTL)
	apiOK(c, http.StatusOK, blogs)
}
