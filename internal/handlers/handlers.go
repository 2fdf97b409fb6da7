package handlers

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/proagil-api/internal/response"
	"github.com/gravadigital/proagil-api/internal/storage/postgres"
)

// RepositoryFactory returns a repository with a fresh unit of work. Handlers
// call it once per request.
type RepositoryFactory func() postgres.ProAgilRepository

// saveChanges commits what the request staged. It writes the error response
// itself and returns false when the commit failed or changed nothing.
func saveChanges(c *gin.Context, repo postgres.ProAgilRepository, l *log.Logger, failure string) bool {
	saved, err := repo.SaveChanges(c.Request.Context())
	if err != nil {
		l.Error(failure, "error", err)
		response.StoreError(c, failure, err)
		return false
	}
	if !saved {
		response.BadRequestError(c, "No changes were saved")
		return false
	}
	return true
}
