package handlers

import (
	"errors"
	"log"
	"net/http"
	"traveltales/internal/middleware"
	"traveltales/internal/models"
	"traveltales/internal/services"
	"traveltales/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactions *services.ReactionService
}

func NewReactionHandler(reactions *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions}
}

func (h *ReactionHandler) Like(c *gin.Context) {
	h.react(c, models.ReactionLike)
}

func (h *ReactionHandler) Dislike(c *gin.Context) {
	h.react(c, models.ReactionDislike)
}

// react upserts the reaction and redirects back; switching like/dislike
// replaces the previous value.
func (h *ReactionHandler) react(c *gin.Context, reaction models.ReactionType) {
	user := middleware.CurrentUser(c)
	blogID := uint(utils.StringToInt(c.Param("id")))

	if err := h.reactions.React(user.ID, blogID, reaction); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "Blog post not found.")
			return
		}
		log.Printf("react failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error saving reaction. Please try again.")
		return
	}
	redirectBack(c, http.StatusFound)
}
