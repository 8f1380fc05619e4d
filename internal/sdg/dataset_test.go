package sdg

import (
	"context"
	"strconv"
	"testing"
	"time"
)

func countByKind(activities []Activity, goalID int, kind ActivityKind) int {
	n := 0
	for _, a := range activities {
		if a.Kind != kind {
			continue
		}
		for _, g := range a.Goals {
			if g == goalID {
				n++
				break
			}
		}
	}
	return n
}

func TestGoalSummaryMatchesActivitySet(t *testing.T) {
	d := NewDataset()
	ctx := context.Background()
	all, _ := d.Activities(ctx, "")

	for goalID := 1; goalID <= GoalCount; goalID++ {
		gs, err := d.GoalSummary(ctx, goalID)
		if err != nil {
			t.Fatalf("GoalSummary(%d): %v", goalID, err)
		}
		if want := countByKind(all, goalID, KindProject); gs.ProjectCount != want {
			t.Fatalf("goal %d: project count %d, want %d", goalID, gs.ProjectCount, want)
		}
		if want := countByKind(all, goalID, KindPublication); gs.PublicationCount != want {
			t.Fatalf("goal %d: publication count %d, want %d", goalID, gs.PublicationCount, want)
		}
	}
}

func TestAppendIncrementsOnlyLinkedGoals(t *testing.T) {
	d := NewDataset(WithScorer(func() int { return 42 }))
	ctx := context.Background()

	before := make(map[int]GoalSummary)
	for id := 1; id <= GoalCount; id++ {
		before[id], _ = d.GoalSummary(ctx, id)
	}

	created, err := d.CreateActivity(ctx, NewActivity{
		Title: "Inclusive Apprenticeships", Kind: KindProject, Status: "Active",
		Goals: []int{4, 8}, DepartmentID: "dept-5",
	})
	if err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}
	if created.Impact != 42 {
		t.Fatalf("expected injected impact score, got %d", created.Impact)
	}

	for id := 1; id <= GoalCount; id++ {
		after, _ := d.GoalSummary(ctx, id)
		wantProjects := before[id].ProjectCount
		if id == 4 || id == 8 {
			wantProjects++
		}
		if after.ProjectCount != wantProjects {
			t.Fatalf("goal %d: project count %d, want %d", id, after.ProjectCount, wantProjects)
		}
		if after.PublicationCount != before[id].PublicationCount {
			t.Fatalf("goal %d: publication count changed on project append", id)
		}
	}
}

func TestSummaryOmitsGoalsWithoutActivities(t *testing.T) {
	// Seed only goals 1..3; goal 17 (and the rest) must not appear.
	activities := []Activity{
		{ID: "a1", Title: "A", Kind: KindProject, Goals: []int{1}, DepartmentID: "dept-1"},
		{ID: "a2", Title: "B", Kind: KindPublication, Goals: []int{2, 3}, DepartmentID: "dept-2"},
	}
	d := NewDataset(WithActivities(activities))
	s, err := d.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(s.SDGs) != 3 {
		t.Fatalf("expected 3 reported goals, got %d", len(s.SDGs))
	}
	for _, gs := range s.SDGs {
		if gs.Activities() == 0 {
			t.Fatalf("goal %d reported with zero activities", gs.ID)
		}
		if gs.ID == 17 {
			t.Fatalf("goal 17 must be omitted")
		}
	}
}

func TestDepartmentAndResearcherDeduplication(t *testing.T) {
	activities := []Activity{
		{ID: "a1", Title: "A", Kind: KindProject, Goals: []int{4}, DepartmentID: "dept-5", ResearcherIDs: []string{"res-8"}},
		{ID: "a2", Title: "B", Kind: KindPublication, Goals: []int{4}, DepartmentID: "dept-5", ResearcherIDs: []string{"res-8"}},
	}
	d := NewDataset(WithActivities(activities))
	ctx := context.Background()

	gs, err := d.GoalSummary(ctx, 4)
	if err != nil {
		t.Fatal(err)
	}
	if gs.DepartmentCount != 1 || gs.ResearcherCount != 1 {
		t.Fatalf("expected deduplicated counts 1/1, got %d/%d", gs.DepartmentCount, gs.ResearcherCount)
	}

	detail, err := d.GoalDetail(ctx, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Departments) != 1 || len(detail.Researchers) != 1 {
		t.Fatalf("detail must materialize each department/researcher once, got %d/%d",
			len(detail.Departments), len(detail.Researchers))
	}
	if detail.Stats.Projects != 1 || detail.Stats.Publications != 1 {
		t.Fatalf("unexpected stats: %+v", detail.Stats)
	}
}

func TestDistributionToleratesOutOfRangeGoalIDs(t *testing.T) {
	activities := []Activity{
		{ID: "a1", Title: "A", Kind: KindProject, Goals: []int{1, 99}},
		{ID: "a2", Title: "B", Kind: KindPublication, Goals: []int{0, 1}},
	}
	d := NewDataset(WithActivities(activities))
	b, err := d.Benchmark(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Distribution) != GoalCount {
		t.Fatalf("distribution length %d, want %d", len(b.Distribution), GoalCount)
	}
	if b.Distribution[0].Count != 2 {
		t.Fatalf("goal 1 count %d, want 2", b.Distribution[0].Count)
	}
	total := 0
	for _, share := range b.Distribution {
		total += share.Count
	}
	if total != 2 {
		t.Fatalf("out-of-range goal ids leaked into the distribution: total %d", total)
	}
}

func TestBenchmarkBands(t *testing.T) {
	// Goals 1..6 with combined counts [10,9,8,7,2,1] in goal-id order.
	var activities []Activity
	counts := []int{10, 9, 8, 7, 2, 1}
	for goal, n := range counts {
		for i := 0; i < n; i++ {
			activities = append(activities, Activity{
				ID:    "g" + strconv.Itoa(goal+1) + "-" + strconv.Itoa(i),
				Title: "x", Kind: KindProject, Goals: []int{goal + 1},
			})
		}
	}
	d := NewDataset(WithActivities(activities))
	b, err := d.Benchmark(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	ids := func(in []GoalSummary) []int {
		out := make([]int, len(in))
		for i, gs := range in {
			out[i] = gs.ID
		}
		return out
	}
	if got := ids(b.Strong); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("strong = %v, want [1 2 3]", got)
	}
	if got := ids(b.Underrepresented); len(got) != 3 || got[0] != 4 || got[1] != 5 || got[2] != 6 {
		t.Fatalf("underrepresented = %v, want [4 5 6]", got)
	}
}

func TestBenchmarkTiesKeepGoalOrder(t *testing.T) {
	activities := []Activity{
		{ID: "a1", Title: "A", Kind: KindProject, Goals: []int{2}},
		{ID: "a2", Title: "B", Kind: KindProject, Goals: []int{5}},
		{ID: "a3", Title: "C", Kind: KindProject, Goals: []int{9}},
	}
	d := NewDataset(WithActivities(activities))
	b, _ := d.Benchmark(context.Background())
	if len(b.Strong) != 3 || b.Strong[0].ID != 2 || b.Strong[1].ID != 5 || b.Strong[2].ID != 9 {
		t.Fatalf("ties must keep goal-id order, got %+v", b.Strong)
	}
}

func TestRecentProjectsOrderedByDateDescending(t *testing.T) {
	d := NewDataset()
	recent, err := d.RecentProjects(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 5 {
		t.Fatalf("expected 5 projects, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i-1].Date < recent[i].Date {
			t.Fatalf("projects out of order: %s before %s", recent[i-1].Date, recent[i].Date)
		}
	}
	for _, a := range recent {
		if a.Kind != KindProject {
			t.Fatalf("non-project %s in recent projects", a.ID)
		}
	}
}

func TestActivityDetailResolvesReferences(t *testing.T) {
	d := NewDataset()
	detail, err := d.Activity(context.Background(), "P-001")
	if err != nil {
		t.Fatalf("Activity: %v", err)
	}
	if detail.Department == nil || detail.Department.ID != "dept-5" {
		t.Fatalf("department not resolved: %+v", detail.Department)
	}
	if len(detail.Researchers) != 1 || detail.Researchers[0].ID != "res-8" {
		t.Fatalf("researchers not resolved: %+v", detail.Researchers)
	}
	if len(detail.GoalDetails) != 2 {
		t.Fatalf("expected 2 resolved goals, got %d", len(detail.GoalDetails))
	}
}

func TestActivityNotFound(t *testing.T) {
	d := NewDataset()
	if _, err := d.Activity(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateActivityValidation(t *testing.T) {
	d := NewDataset()
	ctx := context.Background()

	cases := map[string]NewActivity{
		"empty title":    {Kind: KindProject, Goals: []int{1}},
		"no goals":       {Title: "x", Kind: KindProject},
		"goal too large": {Title: "x", Kind: KindProject, Goals: []int{18}},
		"goal zero":      {Title: "x", Kind: KindProject, Goals: []int{0}},
		"bad kind":       {Title: "x", Kind: "poster", Goals: []int{1}},
	}
	for name, draft := range cases {
		if _, err := d.CreateActivity(ctx, draft); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	if _, err := d.CreateActivity(ctx, NewActivity{
		Title: "x", Kind: KindProject, Goals: []int{1}, DepartmentID: "dept-404",
	}); err != ErrUnknownDepartment {
		t.Fatalf("expected ErrUnknownDepartment, got %v", err)
	}
}

func TestCreateActivityStampsCreationDate(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	d := NewDataset(WithClock(func() time.Time { return fixed }), WithScorer(func() int { return 55 }))

	created, err := d.CreateActivity(context.Background(), NewActivity{
		Title: "x", Kind: KindPublication, Goals: []int{3}, Date: "2025-12-01",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !created.CreatedAt.Equal(fixed) {
		t.Fatalf("creation stamp %v, want %v", created.CreatedAt, fixed)
	}
	// Effective date is the caller's, not the stamp.
	if created.Date != "2025-12-01" {
		t.Fatalf("effective date %q overwritten", created.Date)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	// A record without an effective date gets today's.
	dated, _ := d.CreateActivity(context.Background(), NewActivity{
		Title: "y", Kind: KindProject, Goals: []int{3},
	})
	if dated.Date != "2026-03-01" {
		t.Fatalf("default date %q, want 2026-03-01", dated.Date)
	}
}

func TestCreateResearcher(t *testing.T) {
	d := NewDataset()
	ctx := context.Background()

	r, err := d.CreateResearcher(ctx, "Dr. New Hire", "dept-3")
	if err != nil {
		t.Fatal(err)
	}
	if r.ID == "" || r.DepartmentID != "dept-3" {
		t.Fatalf("unexpected researcher: %+v", r)
	}

	meta, _ := d.Metadata(ctx)
	found := false
	for _, existing := range meta.Researchers {
		if existing.ID == r.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("appended researcher missing from metadata")
	}

	if _, err := d.CreateResearcher(ctx, "Dr. Lost", "dept-404"); err != ErrUnknownDepartment {
		t.Fatalf("expected ErrUnknownDepartment, got %v", err)
	}
	if _, err := d.CreateResearcher(ctx, "  ", "dept-3"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTotalsCoverAppendedRecords(t *testing.T) {
	d := NewDataset(WithScorer(func() int { return 40 }))
	ctx := context.Background()

	before, _ := d.Totals(ctx)
	if _, err := d.CreateActivity(ctx, NewActivity{
		Title: "x", Kind: KindProject, Status: "Active", Goals: []int{14},
	}); err != nil {
		t.Fatal(err)
	}
	after, _ := d.Totals(ctx)

	if after.TotalProjects != before.TotalProjects+1 {
		t.Fatalf("total projects %d, want %d", after.TotalProjects, before.TotalProjects+1)
	}
	if after.ActiveProjects != before.ActiveProjects+1 {
		t.Fatalf("active projects %d, want %d", after.ActiveProjects, before.ActiveProjects+1)
	}
	// Goal 14 has no seed activity, so coverage must grow.
	if after.GoalsCovered != before.GoalsCovered+1 {
		t.Fatalf("goals covered %d, want %d", after.GoalsCovered, before.GoalsCovered+1)
	}
}
