package handlers

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/docsmart-health/docsmart-api/internal/imaging"
	"github.com/docsmart-health/docsmart-api/internal/storage"
)

const maxImageBytes = 10 << 20 // 10 MiB

// uploadProfileImage reads the multipart file, converts it to a resized WebP
// and stores it in S3 under prefix. Returns the public URL.
func uploadProfileImage(
	c *gin.Context,
	uploader *storage.Uploader,
	file *multipart.FileHeader,
	prefix string,
) (string, error) {

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	raw, err := io.ReadAll(io.LimitReader(src, maxImageBytes))
	if err != nil {
		return "", err
	}

	processed, err := imaging.ProcessProfileImage(raw)
	if err != nil {
		return "", err
	}

	return uploader.UploadImage(c.Request.Context(), prefix, processed, "image/webp")
}
