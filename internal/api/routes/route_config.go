package routes

import (
	"Recipe-Marketplace/internal/api/handlers"
	"Recipe-Marketplace/internal/middleware"
	"Recipe-Marketplace/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	PostHandler   handlers.PostHandler
	MapHandler    handlers.MapHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
	SessionLoader middleware.SessionLoader
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Posts()
	c.Map()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService, c.SessionLoader)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.auth(), c.UserHandler.Me)
		user.Patch("/update", c.auth(), c.UserHandler.UpdateUser)
		user.Post("/logout", c.auth(), c.UserHandler.Logout)
	}
}

func (c *Config) Posts() {
	posts := c.App.Group("/api/v1/posts")
	posts.Get("", c.PostHandler.GetPosts)
	posts.Get("/categories", c.PostHandler.GetCategories)
	posts.Get("/sliders", c.PostHandler.GetSliders)
	posts.Get("/category/:category", c.PostHandler.GetPostsByCategory)
	posts.Get("/search", c.PostHandler.SearchPosts)
	posts.Get("/ingredients/cross-references", c.PostHandler.GetCrossReferences)
	posts.Get("/mine", c.auth(), c.PostHandler.GetMyPosts)
	posts.Get("/:id", c.PostHandler.GetPostDetail)

	posts.Post("", c.auth(), c.PostHandler.CreatePost)
	posts.Delete("/:id", c.auth(), c.PostHandler.DeletePost)
	posts.Post("/:id/contact", c.auth(), c.PostHandler.ContactOwner)
}

func (c *Config) Map() {
	m := c.App.Group("/api/v1/map")
	m.Get("/locations", c.MapHandler.GetLocations)
	m.Get("/users/:id", c.MapHandler.GetUserCard)
	m.Get("/me", c.auth(), c.MapHandler.GetMyLocation)
	m.Put("/me", c.auth(), c.MapHandler.UpsertMyLocation)
}
