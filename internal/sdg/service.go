package sdg

import "context"

// Service is the operation set consumed by dashboard collaborators. The
// resilient remote façade and the local Dataset both satisfy it; the façade
// answers from the upstream API when it can and from the Dataset when it
// cannot.
type Service interface {
	Activities(ctx context.Context, kind ActivityKind) ([]Activity, error)
	Activity(ctx context.Context, id string) (ActivityDetail, error)
	CreateActivity(ctx context.Context, draft NewActivity) (ActivityDetail, error)

	Goals(ctx context.Context) ([]Goal, error)
	GoalActivities(ctx context.Context, goalID int) ([]Activity, error)
	GoalSummary(ctx context.Context, goalID int) (GoalSummary, error)
	GoalDetail(ctx context.Context, goalID int) (GoalDetail, error)

	Summary(ctx context.Context) (Summary, error)
	Totals(ctx context.Context) (Totals, error)
	RecentProjects(ctx context.Context, limit int) ([]Activity, error)
	Benchmark(ctx context.Context) (Benchmark, error)

	Metadata(ctx context.Context) (Metadata, error)
	CreateResearcher(ctx context.Context, name, departmentID string) (Researcher, error)
}
