package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vmackland-source/TGRoom/apperrors"
	"github.com/vmackland-source/TGRoom/monitoring"
	"github.com/vmackland-source/TGRoom/services"
)

// Uploader relays a single image file to the cloud image store.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader) (services.UploadResult, error)
}

type UploadController struct {
	Uploads Uploader
	Logger  *zap.Logger
}

// HandleUpload accepts one multipart image file (field "file", max 10 MB) and
// returns the stored URL and public ID.
func (uc *UploadController) HandleUpload(c *gin.Context) {
	if uc.Uploads == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cloud upload failed"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		monitoring.Uploads.WithLabelValues("rejected").Inc()
		apperrors.Respond(c, apperrors.Validation("No file"))
		return
	}
	if fileHeader.Size > services.MaxUploadBytes {
		monitoring.Uploads.WithLabelValues("rejected").Inc()
		apperrors.Respond(c, apperrors.Validation("File too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		monitoring.Uploads.WithLabelValues("rejected").Inc()
		apperrors.Respond(c, apperrors.Validation("Upload parse error"))
		return
	}
	defer file.Close()

	result, err := uc.Uploads.Upload(c.Request.Context(), file)
	if err != nil {
		monitoring.Uploads.WithLabelValues("error").Inc()
		uc.Logger.Error("upload relay failed", zap.Error(err))
		apperrors.Respond(c, apperrors.Upstream("Cloud upload failed", err))
		return
	}

	monitoring.Uploads.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, result)
}
