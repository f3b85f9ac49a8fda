package handlers

import (
	"errors"
	"log"
	"net/http"
	"traveltales/internal/middleware"
	"traveltales/internal/services"
	"traveltales/internal/utils"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	social   *services.SocialService
	identity *services.IdentityService
}

func NewFollowHandler(social *services.SocialService, identity *services.IdentityService) *FollowHandler {
	return &FollowHandler{social: social, identity: identity}
}

// Follow creates the edge and redirects back to the referring page.
func (h *FollowHandler) Follow(c *gin.Context) {
	user := middleware.CurrentUser(c)
	followingID := uint(utils.StringToInt(c.Param("id")))

	if err := h.social.Follow(user.ID, followingID); err != nil {
		if errors.Is(err, services.ErrSelfFollow) {
			RenderError(c, http.StatusBadRequest, "You cannot follow yourself.")
			return
		}
		log.Printf("follow failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error following user. Please try again.")
		return
	}
	redirectBack(c, http.StatusFound)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	user := middleware.CurrentUser(c)
	followingID := uint(utils.StringToInt(c.Param("id")))

	if err := h.social.Unfollow(user.ID, followingID); err != nil {
		log.Printf("unfollow failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error unfollowing user. Please try again.")
		return
	}
	redirectBack(c, http.StatusFound)
}

// userEntry is a directory row: a user plus the viewer's follow state.
type userEntry struct {
	ID          uint
	Name        string
	IsFollowing bool
	Followers   int64
	Following   int64
}

// Users lists everyone except the viewer with follow/unfollow state.
func (h *FollowHandler) Users(c *gin.Context) {
	user := middleware.CurrentUser(c)

	others, err := h.identity.ListOtherUsers(user.ID)
	if err != nil {
		log.Printf("list users failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error loading users. Please try again.")
		return
	}

	entries := make([]userEntry, 0, len(others))
	for _, other := range others {
		following, err := h.social.IsFollowing(user.ID, other.ID)
		if err != nil {
			log.Printf("follow lookup failed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Error loading users. Please try again.")
			return
		}
		followers, err := h.social.FollowerCount(other.ID)
		if err != nil {
			log.Printf("follower count failed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Error loading users. Please try again.")
			return
		}
		followingCount, err := h.social.FollowingCount(other.ID)
		if err != nil {
			log.Printf("following count failed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Error loading users. Please try again.")
			return
		}
		entries = append(entries, userEntry{
			ID:          other.ID,
			Name:        other.Name,
			IsFollowing: following,
			Followers:   followers,
			Following:   followingCount,
		})
	}

	Render(c, http.StatusOK, "users.html", gin.H{
		"Title": "Travellers",
		"Users": entries,
	})
}
