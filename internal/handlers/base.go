package handlers

import (
	"traveltales/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError shows the generic failure page. Every failure keeps the
// user on a navigable page, never a blank one.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "ReturnURL": "/"})
}

// RenderMessage shows a standardized feedback screen with an optional
// next destination.
func RenderMessage(c *gin.Context, code int, message, msgType, redirectURL string) {
	Render(c, code, "message.html", gin.H{
		"Message":     message,
		"Type":        msgType,
		"RedirectURL": redirectURL,
	})
}

// redirectBack sends the browser to the page the action came from.
func redirectBack(c *gin.Context, code int) {
	referrer := c.GetHeader("Referer")
	if referrer == "" {
		referrer = "/"
	}
	c.Redirect(code, referrer)
}
