package remote

import (
	"context"
	"errors"

	"sdgdash.org/internal/audit"
	"sdgdash.org/internal/obs"
	"sdgdash.org/internal/sdg"
	"sdgdash.org/internal/session"
)

// errEmptyResult marks a structurally valid but empty remote answer. The
// dashboard cannot tell "remote has no data" from "no backend configured",
// so both degrade to the local dataset. Keeping this as a single named rule
// stops every operation from re-deriving the policy on its own.
var errEmptyResult = errors.New("remote: empty result")

// Service adapts the upstream client to sdg.Service with the
// try-remote-then-fallback protocol. Remote failures never reach the caller
// while a local answer exists; authentication failures always do, because
// they require a user-visible login prompt.
type Service struct {
	remote *Client
	local  *sdg.Dataset
}

// NewService builds the façade over an upstream client and a local engine.
func NewService(remote *Client, local *sdg.Dataset) *Service {
	return &Service{remote: remote, local: local}
}

var _ sdg.Service = (*Service)(nil)

func (s *Service) Activities(ctx context.Context, kind sdg.ActivityKind) ([]sdg.Activity, error) {
	items, err := s.remote.Activities(ctx, kind, "", 0)
	if err == nil && len(items) == 0 {
		err = errEmptyResult
	}
	if err == nil {
		return items, nil
	}
	if surfaces(err) {
		return nil, err
	}
	obs.FallbackInc("activities", reason(err))
	return s.local.Activities(ctx, kind)
}

func (s *Service) Activity(ctx context.Context, id string) (sdg.ActivityDetail, error) {
	detail, err := s.remote.Activity(ctx, id)
	if err == nil && detail.ID == "" {
		err = errEmptyResult
	}
	if err == nil {
		return detail, nil
	}
	if surfaces(err) {
		return sdg.ActivityDetail{}, err
	}
	obs.FallbackInc("activity_detail", reason(err))
	return s.local.Activity(ctx, id)
}

// CreateActivity writes remotely; when the remote write fails the record is
// appended to the local log instead, so the dashboard stays interactive
// offline. The locally synthesized record carries a generated id and a
// bounded impact score.
func (s *Service) CreateActivity(ctx context.Context, draft sdg.NewActivity) (sdg.ActivityDetail, error) {
	created, err := s.remote.CreateActivity(ctx, draft)
	if err == nil && created.ID == "" {
		err = errEmptyResult
	}
	if err == nil {
		_ = audit.LogEvent(ctx, "activity.create", map[string]any{"id": created.ID, "source": "remote"})
		return created, nil
	}
	if surfaces(err) {
		return sdg.ActivityDetail{}, err
	}

	obs.FallbackInc("activity_create", reason(err))
	local, localErr := s.local.CreateActivity(ctx, draft)
	if localErr != nil {
		return sdg.ActivityDetail{}, localErr
	}
	obs.LocalWriteInc("activity")
	_ = audit.LogEvent(ctx, "activity.create.fallback", map[string]any{"id": local.ID, "source": "local"})
	return local, nil
}

func (s *Service) Goals(ctx context.Context) ([]sdg.Goal, error) {
	goals, err := s.remote.Goals(ctx)
	if err == nil && len(goals) == 0 {
		err = errEmptyResult
	}
	if err == nil {
		return goals, nil
	}
	if surfaces(err) {
		return nil, err
	}
	obs.FallbackInc("goals", reason(err))
	return s.local.Goals(ctx)
}

func (s *Service) GoalActivities(ctx context.Context, goalID int) ([]sdg.Activity, error) {
	items, err := s.remote.GoalActivities(ctx, goalID)
	if err == nil && len(items) == 0 {
		err = errEmptyResult
	}
	if err == nil {
		return items, nil
	}
	if surfaces(err) {
		return nil, err
	}
	obs.FallbackInc("goal_activities", reason(err))
	return s.local.GoalActivities(ctx, goalID)
}

func (s *Service) GoalSummary(ctx context.Context, goalID int) (sdg.GoalSummary, error) {
	gs, err := s.remote.GoalSummary(ctx, goalID)
	if err == nil && gs.Activities() == 0 {
		err = errEmptyResult
	}
	if err == nil {
		return gs, nil
	}
	if surfaces(err) {
		return sdg.GoalSummary{}, err
	}
	obs.FallbackInc("goal_summary", reason(err))
	return s.local.GoalSummary(ctx, goalID)
}

func (s *Service) GoalDetail(ctx context.Context, goalID int) (sdg.GoalDetail, error) {
	detail, err := s.remote.GoalDetail(ctx, goalID)
	if err == nil && detail.Goal.ID == 0 {
		err = errEmptyResult
	}
	if err == nil {
		return detail, nil
	}
	if surfaces(err) {
		return sdg.GoalDetail{}, err
	}
	obs.FallbackInc("goal_detail", reason(err))
	return s.local.GoalDetail(ctx, goalID)
}

func (s *Service) Summary(ctx context.Context) (sdg.Summary, error) {
	summary, err := s.remote.Summary(ctx)
	if err == nil && len(summary.SDGs) == 0 {
		err = errEmptyResult
	}
	if err == nil {
		return summary, nil
	}
	if surfaces(err) {
		return sdg.Summary{}, err
	}
	obs.FallbackInc("summary", reason(err))
	return s.local.Summary(ctx)
}

func (s *Service) Totals(ctx context.Context) (sdg.Totals, error) {
	summary, err := s.remote.Summary(ctx)
	if err == nil && summary.Totals.TotalProjects+summary.Totals.TotalPublications == 0 {
		err = errEmptyResult
	}
	if err == nil {
		return summary.Totals, nil
	}
	if surfaces(err) {
		return sdg.Totals{}, err
	}
	obs.FallbackInc("totals", reason(err))
	return s.local.Totals(ctx)
}

func (s *Service) RecentProjects(ctx context.Context, limit int) ([]sdg.Activity, error) {
	if limit <= 0 {
		limit = 5
	}
	items, err := s.remote.Activities(ctx, sdg.KindProject, "-date_created", limit)
	if err == nil && len(items) == 0 {
		err = errEmptyResult
	}
	if err == nil {
		if len(items) > limit {
			items = items[:limit]
		}
		return items, nil
	}
	if surfaces(err) {
		return nil, err
	}
	obs.FallbackInc("recent_projects", reason(err))
	return s.local.RecentProjects(ctx, limit)
}

func (s *Service) Benchmark(ctx context.Context) (sdg.Benchmark, error) {
	b, err := s.remote.Benchmark(ctx)
	if err == nil && len(b.Distribution) == 0 {
		err = errEmptyResult
	}
	if err == nil {
		return b, nil
	}
	if surfaces(err) {
		return sdg.Benchmark{}, err
	}
	obs.FallbackInc("benchmark", reason(err))
	return s.local.Benchmark(ctx)
}

func (s *Service) Metadata(ctx context.Context) (sdg.Metadata, error) {
	meta, err := s.remote.Metadata(ctx)
	if err == nil && len(meta.SDGs) == 0 {
		err = errEmptyResult
	}
	if err == nil {
		return meta, nil
	}
	if surfaces(err) {
		return sdg.Metadata{}, err
	}
	obs.FallbackInc("metadata", reason(err))
	return s.local.Metadata(ctx)
}

func (s *Service) CreateResearcher(ctx context.Context, name, departmentID string) (sdg.Researcher, error) {
	r, err := s.remote.CreateResearcher(ctx, name, departmentID)
	if err == nil && r.ID == "" {
		err = errEmptyResult
	}
	if err == nil {
		_ = audit.LogEvent(ctx, "researcher.create", map[string]any{"id": r.ID, "source": "remote"})
		return r, nil
	}
	if surfaces(err) {
		return sdg.Researcher{}, err
	}

	obs.FallbackInc("researcher_create", reason(err))
	local, localErr := s.local.CreateResearcher(ctx, name, departmentID)
	if localErr != nil {
		return sdg.Researcher{}, localErr
	}
	obs.LocalWriteInc("researcher")
	_ = audit.LogEvent(ctx, "researcher.create.fallback", map[string]any{"id": local.ID, "source": "local"})
	return local, nil
}

// surfaces reports whether err must reach the caller instead of degrading to
// local data. Authentication failures require a user-visible login prompt.
func surfaces(err error) bool {
	return errors.Is(err, session.ErrExpired) ||
		errors.Is(err, session.ErrInvalidCredentials) ||
		errors.Is(err, session.ErrRefreshRejected)
}

func reason(err error) string {
	if errors.Is(err, errEmptyResult) {
		return "empty"
	}
	return "error"
}
