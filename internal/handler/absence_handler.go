package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cover-planner-api/internal/service"
	appErrors "github.com/noah-isme/cover-planner-api/pkg/errors"
	"github.com/noah-isme/cover-planner-api/pkg/response"
)

// AbsenceHandler manages absence and cover resolution endpoints.
type AbsenceHandler struct {
	absences *service.AbsenceService
	cover    *service.CoverService
	exports  *service.ExportService
}

// NewAbsenceHandler constructs the handler.
func NewAbsenceHandler(absences *service.AbsenceService, cover *service.CoverService, exports *service.ExportService) *AbsenceHandler {
	return &AbsenceHandler{absences: absences, cover: cover, exports: exports}
}

// Create godoc
// @Summary Record an absence
// @Tags Absences
// @Accept json
// @Produce json
// @Param payload body service.CreateAbsenceInput true "Absence payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /absences [post]
func (h *AbsenceHandler) Create(c *gin.Context) {
	var input service.CreateAbsenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid absence payload"))
		return
	}
	absence, err := h.absences.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, absence)
}

// CreateBatch godoc
// @Summary Record absences for several teachers at once
// @Description Entries are processed independently; invalid entries are reported as skipped while valid ones are recorded.
// @Tags Absences
// @Accept json
// @Produce json
// @Param payload body service.BatchAbsenceInput true "Batch payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /absences/batch [post]
func (h *AbsenceHandler) CreateBatch(c *gin.Context) {
	var input service.BatchAbsenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid batch payload"))
		return
	}
	result, err := h.absences.CreateBatch(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List recent absences
// @Tags Absences
// @Produce json
// @Param limit query int false "Maximum number of records" default(10)
// @Success 200 {object} response.Envelope
// @Router /absences [get]
func (h *AbsenceHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	absences, err := h.absences.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, absences, nil)
}

// Get godoc
// @Summary Get absence detail
// @Tags Absences
// @Produce json
// @Param id path string true "Absence ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /absences/{id} [get]
func (h *AbsenceHandler) Get(c *gin.Context) {
	absence, err := h.absences.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, absence, nil)
}

// AvailableTeachers godoc
// @Summary Resolve cover availability for an absence
// @Description For each slot of the absent teacher's day, lists roster members free to cover it.
// @Tags Absences
// @Produce json
// @Param id path string true "Absence ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /absences/{id}/available-teachers [get]
func (h *AbsenceHandler) AvailableTeachers(c *gin.Context) {
	result, err := h.cover.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CoverSheet godoc
// @Summary Download a printable cover sheet for an absence
// @Tags Absences
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Absence ID"
// @Param format query string false "Export format (csv,pdf)" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /absences/{id}/cover-sheet [get]
func (h *AbsenceHandler) CoverSheet(c *gin.Context) {
	file, err := h.exports.CoverSheet(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
