package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"traveltales/internal/middleware"
	"traveltales/internal/models"
	"traveltales/internal/services"
	"traveltales/internal/utils"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	content  *services.ContentService
	enricher *services.Enricher
}

func NewBlogHandler(content *services.ContentService, enricher *services.Enricher) *BlogHandler {
	return &BlogHandler{content: content, enricher: enricher}
}

func viewerID(c *gin.Context) uint {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}

// List renders the paginated home page with enriched blog views.
func (h *BlogHandler) List(c *gin.Context) {
	page := utils.ParsePage(c.Query("page"))

	blogs, err := h.content.List(page, services.PageSize)
	if err != nil {
		log.Printf("list blogs failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error loading blog posts.")
		return
	}

	total, err := h.content.Count()
	if err != nil {
		log.Printf("count blogs failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error loading blog posts.")
		return
	}
	totalPages := int(math.Ceil(float64(total) / float64(services.PageSize)))
	if totalPages == 0 {
		totalPages = 1
	}

	views, err := h.enricher.EnrichPage(c.Request.Context(), viewerID(c), blogs)
	if err != nil {
		log.Printf("enrich blogs failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error loading blog posts.")
		return
	}

	Render(c, http.StatusOK, "blog/list.html", gin.H{
		"Title":       "TravelTales",
		"Blogs":       views,
		"CurrentPage": page,
		"TotalPages":  totalPages,
	})
}

func (h *BlogHandler) Detail(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	blog, err := h.content.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "Blog post not found.")
			return
		}
		log.Printf("get blog failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error loading blog post.")
		return
	}

	views, err := h.enricher.EnrichPage(c.Request.Context(), viewerID(c), []models.Blog{*blog})
	if err != nil {
		log.Printf("enrich blog failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error loading blog post.")
		return
	}

	Render(c, http.StatusOK, "blog/detail.html", gin.H{
		"Title": blog.Title,
		"Blog":  views[0],
	})
}

func (h *BlogHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "blog/create.html", gin.H{"Title": "New Entry"})
}

func (h *BlogHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	title := c.PostForm("title")
	content := c.PostForm("content")
	country := c.PostForm("country")
	visitDate := c.PostForm("visit_date")

	blog, err := h.content.Create(user.ID, title, content, country, visitDate)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			Render(c, http.StatusBadRequest, "blog/create.html", gin.H{
				"Error":     "Title, content, country and visit date are all required.",
				"FormTitle": title, "FormContent": content,
				"FormCountry": country, "FormVisitDate": visitDate,
			})
			return
		}
		log.Printf("create blog failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error saving blog post.")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/blog/%d", blog.ID))
}

func (h *BlogHandler) ShowEdit(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := uint(utils.StringToInt(c.Param("id")))

	blog, err := h.content.Get(id)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Blog post not found.")
		return
	}
	if blog.UserID != user.ID {
		RenderError(c, http.StatusForbidden, "You can only edit your own posts.")
		return
	}

	Render(c, http.StatusOK, "blog/edit.html", gin.H{
		"Title": "Edit Entry",
		"Blog":  blog,
	})
}

func (h *BlogHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := uint(utils.StringToInt(c.Param("id")))

	err := h.content.Update(id, user.ID,
		c.PostForm("title"), c.PostForm("content"),
		c.PostForm("country"), c.PostForm("visit_date"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			RenderError(c, http.StatusNotFound, "Blog post not found.")
		case errors.Is(err, services.ErrUnauthorized):
			RenderError(c, http.StatusForbidden, "You can only edit your own posts.")
		case errors.Is(err, services.ErrMissingFields):
			RenderError(c, http.StatusBadRequest, "Title, content, country and visit date are all required.")
		default:
			log.Printf("update blog failed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Error updating blog post.")
		}
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/blog/%d", id))
}

func (h *BlogHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := uint(utils.StringToInt(c.Param("id")))

	if err := h.content.Delete(id, user.ID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			RenderError(c, http.StatusNotFound, "Blog post not found.")
		case errors.Is(err, services.ErrUnauthorized):
			RenderError(c, http.StatusForbidden, "You can only delete your own posts.")
		default:
			log.Printf("delete blog failed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Error deleting blog post.")
		}
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Search renders blog search by country or author. No matches is a
// normal outcome reported on the page, not an error.
func (h *BlogHandler) Search(c *gin.Context) {
	query := c.Query("query")
	mode := services.SearchMode(c.DefaultQuery("searchType", string(services.SearchByCountry)))
	page := utils.ParsePage(c.Query("page"))

	var views []services.BlogView
	if query != "" {
		blogs, err := h.content.Search(query, mode, page, services.PageSize)
		if err != nil {
			log.Printf("search blogs failed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Error searching blog posts.")
			return
		}
		views, err = h.enricher.EnrichPage(c.Request.Context(), viewerID(c), blogs)
		if err != nil {
			log.Printf("enrich search failed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Error searching blog posts.")
			return
		}
	}

	Render(c, http.StatusOK, "search.html", gin.H{
		"Title":       "Search",
		"Query":       query,
		"SearchType":  string(mode),
		"Blogs":       views,
		"NoResults":   query != "" && len(views) == 0,
		"CurrentPage": page,
	})
}
