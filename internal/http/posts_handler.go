package http

import (
	"net/http"

	"log/slog"
)

// Post is a sample article served by the protected endpoint.
type Post struct {
	PostID         int    `json:"post_id"`
	Title          string `json:"title"`
	ContentSnippet string `json:"contentSnippet"`
}

var samplePosts = []Post{
	{
		PostID:         1,
		Title:          "Understanding Constitutional Law in India",
		ContentSnippet: "Constitutional law forms the foundation of legal system in India. This article explores the fundamental principles...",
	},
	{
		PostID:         2,
		Title:          "Corporate Law Essentials for Startups",
		ContentSnippet: "Starting a business requires understanding various legal compliance requirements. Here's a comprehensive guide...",
	},
	{
		PostID:         3,
		Title:          "Intellectual Property Rights in Digital Age",
		ContentSnippet: "With the rise of digital technologies, protecting intellectual property has become more challenging...",
	},
}

// PostsHandler serves the example protected resource.
type PostsHandler struct {
	logger *slog.Logger
}

// NewPostsHandler creates a PostsHandler.
func NewPostsHandler(logger *slog.Logger) *PostsHandler {
	return &PostsHandler{logger: logger}
}

// List handles GET /api/posts. The guard middleware has already resolved the
// caller by the time this runs.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	if user := UserFromContext(r.Context()); user != nil {
		h.logger.Debug("posts listed", "user_id", user.ID)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    samplePosts,
	})
}
