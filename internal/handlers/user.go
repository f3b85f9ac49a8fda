package handlers

import (
	"errors"
	"log"
	"net/http"
	"traveltales/internal/middleware"
	"traveltales/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	identity *services.IdentityService
	social   *services.SocialService
}

func NewUserHandler(identity *services.IdentityService, social *services.SocialService) *UserHandler {
	return &UserHandler{identity: identity, social: social}
}

// ShowProfile renders the viewer's own profile with graph counts.
func (h *UserHandler) ShowProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	followers, err := h.social.FollowerCount(user.ID)
	if err != nil {
		log.Printf("follower count failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error loading profile.")
		return
	}
	following, err := h.social.FollowingCount(user.ID)
	if err != nil {
		log.Printf("following count failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Error loading profile.")
		return
	}

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":     "My Profile",
		"User":      user,
		"Followers": followers,
		"Following": following,
	})
}

// UpdateProfile changes name/email and mirrors the new values into the
// live session; no re-authentication is required.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	name := c.PostForm("name")
	email := c.PostForm("email")

	if err := h.identity.UpdateProfile(user.ID, name, email); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			RenderError(c, http.StatusBadRequest, "Name and email are required.")
		case errors.Is(err, services.ErrDuplicateEmail):
			RenderError(c, http.StatusConflict, "That email is already in use.")
		default:
			log.Printf("update profile failed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Error updating profile.")
		}
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserName, name)
	session.Set(middleware.SessionUserEmail, email)
	session.Save()

	c.Redirect(http.StatusFound, "/profile")
}

// ChangePassword rotates the password and then invalidates the session,
// forcing a fresh login.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	current := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")
	confirm := c.PostForm("confirm_password")

	if err := h.identity.ChangePassword(user.ID, current, newPassword, confirm); err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			RenderError(c, http.StatusBadRequest, "New passwords do not match.")
		case errors.Is(err, services.ErrWrongPassword):
			RenderError(c, http.StatusUnauthorized, "Current password is incorrect.")
		default:
			log.Printf("change password failed: %v", err)
			RenderError(c, http.StatusInternalServerError, "Error changing password.")
		}
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Save()

	RenderMessage(c, http.StatusOK,
		"Password changed. Please log in again.", "success", "/login")
}
