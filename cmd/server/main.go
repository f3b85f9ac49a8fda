package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"
	"traveltales/internal/db"
	"traveltales/internal/handlers"
	"traveltales/internal/middleware"
	"traveltales/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	conn := db.Init()

	// Services
	identity := services.NewIdentityService(conn)
	social := services.NewSocialService(conn)
	reactions := services.NewReactionService(conn)
	content := services.NewContentService(conn)
	countries := services.NewCountryService()
	enricher := services.NewEnricher(social, reactions, countries)

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(time.Hour / time.Second), // idle lifetime
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("traveltales_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser(conn))

	// Handlers
	authHandler := handlers.NewAuthHandler(identity)
	blogHandler := handlers.NewBlogHandler(content, enricher)
	followHandler := handlers.NewFollowHandler(social, identity)
	reactionHandler := handlers.NewReactionHandler(reactions)
	userHandler := handlers.NewUserHandler(identity, social)
	apiHandler := handlers.NewAPIHandler(content)

	// Public Routes
	r.GET("/", blogHandler.List)
	r.GET("/search", blogHandler.Search)
	r.GET("/blog/:id", blogHandler.Detail)

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/forgot-password", authHandler.ShowForgotPassword)
	r.POST("/forgot-password", authHandler.ForgotPassword)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/blog/create", blogHandler.ShowCreate)
		authorized.POST("/blog/create", blogHandler.Create)
		authorized.GET("/blog/edit/:id", blogHandler.ShowEdit)
		authorized.POST("/blog/edit/:id", blogHandler.Update)
		authorized.GET("/blog/delete/:id", blogHandler.Delete)

		authorized.POST("/follow/:id", followHandler.Follow)
		authorized.POST("/unfollow/:id", followHandler.Unfollow)
		authorized.GET("/users", followHandler.Users)

		authorized.POST("/like/:id", reactionHandler.Like)
		authorized.POST("/dislike/:id", reactionHandler.Dislike)

		authorized.GET("/profile", userHandler.ShowProfile)
		authorized.POST("/profile", userHandler.UpdateProfile)
		authorized.POST("/profile/password", userHandler.ChangePassword)
	}

	// JSON API for external applications, API-key gated
	api := r.Group("/api")
	api.Use(middleware.APIKeyAuth(middleware.APIKeys()))
	{
		api.GET("/blogs", apiHandler.ListBlogs)
		api.GET("/blogs/:id", apiHandler.GetBlog)
		api.POST("/blogs", apiHandler.CreateBlog)
		api.PUT("/blogs/:id", apiHandler.UpdateBlog)
		api.DELETE("/blogs/:id", apiHandler.DeleteBlog)

		api.GET("/search", apiHandler.Search)
		api.GET("/stats/popular-posts", apiHandler.PopularPosts)
		api.GET("/stats/recent-posts", apiHandler.RecentPosts)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("TravelTales server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
	}

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)
	r.AddFromFilesFuncs("auth/forgot_password.html", funcMap, assemble(templatesDir+"/views/auth/forgot_password.html")...)

	// Blog
	r.AddFromFilesFuncs("blog/list.html", funcMap, assemble(templatesDir+"/views/blog/list.html")...)
	r.AddFromFilesFuncs("blog/detail.html", funcMap, assemble(templatesDir+"/views/blog/detail.html")...)
	r.AddFromFilesFuncs("blog/create.html", funcMap, assemble(templatesDir+"/views/blog/create.html")...)
	r.AddFromFilesFuncs("blog/edit.html", funcMap, assemble(templatesDir+"/views/blog/edit.html")...)

	// Social
	r.AddFromFilesFuncs("users.html", funcMap, assemble(templatesDir+"/views/users.html")...)

	// User
	r.AddFromFilesFuncs("user/profile.html", funcMap, assemble(templatesDir+"/views/user/profile.html")...)

	// Search
	r.AddFromFilesFuncs("search.html", funcMap, assemble(templatesDir+"/views/search.html")...)

	// Feedback
	r.AddFromFilesFuncs("message.html", funcMap, assemble(templatesDir+"/views/message.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
