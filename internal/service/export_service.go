package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/cover-planner-api/internal/models"
	appErrors "github.com/noah-isme/cover-planner-api/pkg/errors"
	"github.com/noah-isme/cover-planner-api/pkg/export"
)

// Export formats supported by the cover sheet endpoint.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// CoverResolver computes availability for an absence.
type CoverResolver interface {
	Resolve(ctx context.Context, absenceID string) (*models.CoverResult, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders cover results into downloadable sheets that can be
// handed to the staff room.
type ExportService struct {
	resolver CoverResolver
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(resolver CoverResolver, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		resolver: resolver,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// CoverSheet resolves the absence and renders one row per slot with the
// candidate list flattened into a single column.
func (s *ExportService) CoverSheet(ctx context.Context, absenceID, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	result, err := s.resolver.Resolve(ctx, absenceID)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Headers: []string{"Time", "Subject", "Class", "Available Teachers"},
		Rows:    make([][]string, 0, len(result.Slots)),
	}
	for _, slot := range result.Slots {
		names := make([]string, 0, len(slot.AvailableTeachers))
		for _, teacher := range slot.AvailableTeachers {
			names = append(names, teacher.Name)
		}
		candidates := strings.Join(names, ", ")
		if candidates == "" {
			candidates = "none"
		}
		data.Rows = append(data.Rows, []string{slot.Time, slot.Subject, slot.ClassRoom, candidates})
	}

	date := result.Date.Format("2006-01-02")
	switch format {
	case FormatPDF:
		title := "Cover Sheet"
		subtitle := fmt.Sprintf("%s absent on %s (%s)", result.AbsentTeacher, date, result.DayOfWeek)
		content, err := s.pdf.Render(data, title, subtitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf cover sheet")
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("cover-sheet-%s.pdf", date),
		}, nil
	default:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv cover sheet")
		}
		return &ExportFile{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("cover-sheet-%s.csv", date),
		}, nil
	}
}
