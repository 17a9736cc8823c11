package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cover-planner-api/internal/models"
	"github.com/noah-isme/cover-planner-api/internal/service"
	"github.com/noah-isme/cover-planner-api/pkg/config"
	appErrors "github.com/noah-isme/cover-planner-api/pkg/errors"
	"github.com/noah-isme/cover-planner-api/pkg/response"
)

type scheduleImporter interface {
	Import(ctx context.Context, workbook io.Reader) (*models.ImportReport, error)
}

// ScheduleHandler manages workbook upload endpoints.
type ScheduleHandler struct {
	importer scheduleImporter
	metrics  *service.MetricsService
	upload   config.UploadConfig
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(importer scheduleImporter, metrics *service.MetricsService, upload config.UploadConfig) *ScheduleHandler {
	return &ScheduleHandler{importer: importer, metrics: metrics, upload: upload}
}

// Upload godoc
// @Summary Upload a timetable workbook
// @Description Parses every recognisable worksheet and replaces the stored schedule of each teacher found.
// @Tags Schedules
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook (.xlsx)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 415 {object} response.Envelope
// @Router /schedule/upload [post]
func (h *ScheduleHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}

	if h.upload.MaxFileSizeBytes > 0 && fileHeader.Size > h.upload.MaxFileSizeBytes {
		response.Error(c, appErrors.ErrFileTooLarge)
		return
	}
	if len(h.upload.AllowedMIMEs) > 0 {
		mime := strings.TrimSpace(fileHeader.Header.Get("Content-Type"))
		if !mimeAllowed(mime, h.upload.AllowedMIMEs) {
			response.Error(c, appErrors.ErrUnsupportedMedia)
			return
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	report, err := h.importer.Import(c.Request.Context(), src)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.ObserveImport(report.SlotsImported)
	response.JSON(c, http.StatusOK, report, nil)
}

func mimeAllowed(mime string, allowed []string) bool {
	if mime == "" {
		return false
	}
	// Browsers may append charset parameters to the declared type.
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	for _, candidate := range allowed {
		if strings.EqualFold(mime, candidate) {
			return true
		}
	}
	return false
}
