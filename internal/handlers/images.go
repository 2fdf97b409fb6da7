package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/proagil-api/internal/response"
	"github.com/gravadigital/proagil-api/internal/storage/objectstore"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// uploadImage stores the multipart "file" field under prefix and returns its
// public URL. Failures are written to c and reported as false.
func uploadImage(c *gin.Context, l *log.Logger, images objectstore.ImageStore, maxSize int64, prefix string) (string, bool) {
	if images == nil {
		response.ErrorResponseWithMessage(c, http.StatusServiceUnavailable, "Image storage is not configured")
		return "", false
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequestError(c, "No file provided", err)
		return "", false
	}
	defer file.Close()

	if header.Size > maxSize {
		response.BadRequestError(c, fmt.Sprintf("File size exceeds %d bytes limit", maxSize))
		return "", false
	}

	contentType := strings.ToLower(header.Header.Get("Content-Type"))
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":       false,
			"error":         "File type not allowed",
			"code":          http.StatusBadRequest,
			"allowed_types": []string{"JPEG", "PNG", "GIF", "WEBP"},
		})
		return "", false
	}

	url, err := images.Upload(c.Request.Context(), objectstore.ObjectName(prefix, header.Filename), file, header.Size, contentType)
	if err != nil {
		l.Error("Failed to upload image", "prefix", prefix, "filename", header.Filename, "error", err)
		response.ErrorResponseWithMessage(c, http.StatusBadGateway, "Failed to upload image")
		return "", false
	}
	return url, true
}
