// Package handlers serves the blog pages and JSON API.
package handlers

import (
	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/example/models"
	"github.com/dmitrymomot/awesome/pkg/orm"
)

// PageSize is the number of items per listing page.
const PageSize = 10

// Handler serves the blog.
type Handler struct {
	db     *orm.DB
	models *models.Models
	api    []awesome.Middleware
}

// New creates a blog handler. The api middleware wraps every /api route.
func New(db *orm.DB, m *models.Models, api ...awesome.Middleware) *Handler {
	return &Handler{db: db, models: m, api: api}
}

// Routes declares the blog routes.
func (h *Handler) Routes(r awesome.Router) {
	r.GET("/", h.index)
	r.GET("/blog/{id}", h.showBlog)
	r.GET("/register", h.registerPage)

	r.Route("/api", func(r awesome.Router) {
		r.Use(h.api...)

		r.GET("/users", h.listUsers)
		r.POST("/users", h.register)

		r.GET("/blogs", h.listBlogs)
		r.POST("/blogs", h.createBlog)
		r.GET("/blogs/{id}", h.getBlog)
		r.DELETE("/blogs/{id}", h.deleteBlog)
		r.GET("/blogs/{id}/comments", h.listComments)
		r.POST("/blogs/{id}/comments", h.createComment)
	})
}
