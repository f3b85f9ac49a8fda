package handlers

import (
	"errors"
	"log"
	"net/http"
	"traveltales/internal/middleware"
	"traveltales/internal/models"
	"traveltales/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	identity *services.IdentityService
}

func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{
		"Question1": models.Question1,
		"Question2": models.Question2,
		"Question3": models.Question3,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	answers := [3]string{
		c.PostForm("answer1"),
		c.PostForm("answer2"),
		c.PostForm("answer3"),
	}

	_, err := h.identity.Register(name, email, password, answers)
	if err != nil {
		data := gin.H{
			"Name":      name,
			"Email":     email,
			"Question1": models.Question1,
			"Question2": models.Question2,
			"Question3": models.Question3,
		}
		switch {
		case errors.Is(err, services.ErrMissingFields):
			data["Error"] = "All fields are required."
			Render(c, http.StatusBadRequest, "auth/register.html", data)
		case errors.Is(err, services.ErrDuplicateEmail):
			data["Error"] = "Email already registered."
			Render(c, http.StatusConflict, "auth/register.html", data)
		default:
			log.Printf("register failed: %v", err)
			data["Error"] = "Registration failed. Please try again."
			Render(c, http.StatusInternalServerError, "auth/register.html", data)
		}
		return
	}

	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Success": "Registration successful! Please log in.",
	})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{
			"Error": "Please enter both email and password.",
		})
		return
	}

	user, err := h.identity.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, services.ErrUnknownEmail) || errors.Is(err, services.ErrWrongPassword) {
			Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
				"Error": "Invalid email or password.",
			})
			return
		}
		log.Printf("login failed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	setSessionUser(c, user)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) ShowForgotPassword(c *gin.Context) {
	Render(c, http.StatusOK, "auth/forgot_password.html", gin.H{
		"Question1": models.Question1,
		"Question2": models.Question2,
		"Question3": models.Question3,
	})
}

// ForgotPassword verifies the three security answers and, on success,
// shows a one-shot temporary password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	email := c.PostForm("email")
	answers := [3]string{
		c.PostForm("answer1"),
		c.PostForm("answer2"),
		c.PostForm("answer3"),
	}

	temp, err := h.identity.RecoverPassword(email, answers)
	if err != nil {
		data := gin.H{
			"Email":     email,
			"Question1": models.Question1,
			"Question2": models.Question2,
			"Question3": models.Question3,
		}
		switch {
		case errors.Is(err, services.ErrUnknownEmail):
			data["Error"] = "No account with that email."
			Render(c, http.StatusNotFound, "auth/forgot_password.html", data)
		case errors.Is(err, services.ErrWrongAnswers):
			data["Error"] = "Security answers do not match."
			Render(c, http.StatusUnauthorized, "auth/forgot_password.html", data)
		default:
			log.Printf("password recovery failed: %v", err)
			data["Error"] = "Recovery failed. Please try again."
			Render(c, http.StatusInternalServerError, "auth/forgot_password.html", data)
		}
		return
	}

	RenderMessage(c, http.StatusOK,
		"Your temporary password is: "+temp+". Log in with it and change it right away.",
		"success", "/login")
}

// setSessionUser stores the {id, name, email} payload; the password
// hash never enters the session.
func setSessionUser(c *gin.Context, user *models.User) {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserID, user.ID)
	session.Set(middleware.SessionUserName, user.Name)
	session.Set(middleware.SessionUserEmail, user.Email)
	session.Save()
}
