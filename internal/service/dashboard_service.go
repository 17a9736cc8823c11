package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/cover-planner-api/internal/models"
	appErrors "github.com/noah-isme/cover-planner-api/pkg/errors"
)

const (
	dashboardCacheKey     = "dashboard:summary"
	dashboardCachePattern = "dashboard:*"
	recentAbsenceLimit    = 5
)

// DashboardCache is the cache-aside surface for the summary payload.
type DashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// TeacherCounter counts roster members.
type TeacherCounter interface {
	CountAll(ctx context.Context) (int, error)
}

// SlotCounter counts stored schedule slots.
type SlotCounter interface {
	CountAll(ctx context.Context) (int, error)
}

// AbsenceCounter counts and lists absence records.
type AbsenceCounter interface {
	CountAll(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit int) ([]models.Absence, error)
}

// DashboardService assembles the landing summary with an optional cache in
// front of the counting queries.
type DashboardService struct {
	teachers TeacherCounter
	slots    SlotCounter
	absences AbsenceCounter
	cache    DashboardCache
	enabled  bool
	ttl      time.Duration
	logger   *zap.Logger
}

// NewDashboardService constructs a DashboardService. Passing a nil cache or
// enabled=false serves every request from the store.
func NewDashboardService(teachers TeacherCounter, slots SlotCounter, absences AbsenceCounter, cache DashboardCache, enabled bool, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{teachers: teachers, slots: slots, absences: absences, cache: cache, enabled: enabled && cache != nil, ttl: ttl, logger: logger}
}

// Summary returns the dashboard counters, cache-aside. The second return
// value reports whether the payload was served from cache.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, bool, error) {
	if s.enabled {
		var cached models.DashboardSummary
		err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil {
			return &cached, true, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	summary := &models.DashboardSummary{GeneratedAt: time.Now().UTC()}
	var err error
	if summary.TeacherCount, err = s.teachers.CountAll(ctx); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count teachers")
	}
	if summary.SlotCount, err = s.slots.CountAll(ctx); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count slots")
	}
	if summary.AbsenceCount, err = s.absences.CountAll(ctx); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count absences")
	}
	if summary.RecentAbsences, err = s.absences.ListRecent(ctx, recentAbsenceLimit); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list recent absences")
	}
	if summary.RecentAbsences == nil {
		summary.RecentAbsences = []models.Absence{}
	}

	if s.enabled {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.ttl); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}
