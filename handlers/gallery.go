package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/moodykhalif23/kula-chipo2/uploads"
)

// UploadGalleryHandler stages a multipart image batch and appends the
// resulting data URLs to the vendor's gallery. Images are stored
// inline; there is no object store behind this.
func UploadGalleryHandler(c *gin.Context) {
	vendor, ok := requireVendor(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected multipart form upload"})
		return
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images provided"})
		return
	}

	files := make([]uploads.File, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		// Cheap rejection before buffering the content.
		if err := uploads.Validate(header.Filename, header.Size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
			return
		}
		content, err := io.ReadAll(io.LimitReader(f, uploads.MaxFileSize+1))
		f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
			return
		}

		files = append(files, uploads.File{Name: header.Filename, Content: content})
	}

	stager := &uploads.Stager{}
	staged, err := stager.StageAll(files)
	if err != nil {
		if errors.Is(err, uploads.ErrFileTooLarge) || errors.Is(err, uploads.ErrUnsupportedType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to stage uploads")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stage uploads"})
		return
	}

	for _, img := range staged {
		vendor.Images = append(vendor.Images, img.DataURL)
	}

	if err := DB.Save(vendor).Error; err != nil {
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to save gallery")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save gallery"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"staged": staged, "images": vendor.Images})
}
