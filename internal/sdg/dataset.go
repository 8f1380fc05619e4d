package sdg

import (
	"context"
	mathrand "math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"sdgdash.org/internal/ids"
)

// Scorer produces the synthetic impact score assigned to locally created
// records. Injectable so tests can make it deterministic.
type Scorer func() int

func defaultScorer() int {
	// Matches the upstream placeholder range: uniform in [30,80).
	return 30 + mathrand.Intn(50)
}

// Dataset is the local engine: the fixed seed plus an in-process append log
// consulted by every aggregation. Activities are immutable once created and
// the log only grows, so readers never observe a torn write. Every derived
// value is recomputed from the current set on each call.
type Dataset struct {
	mu          sync.RWMutex
	activities  []Activity
	researchers []Researcher

	score Scorer
	now   func() time.Time
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithScorer replaces the impact score strategy for local writes.
func WithScorer(s Scorer) Option {
	return func(d *Dataset) {
		if s != nil {
			d.score = s
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(d *Dataset) {
		if now != nil {
			d.now = now
		}
	}
}

// WithActivities replaces the seed activity set. Used by tests to build
// scenarios with known counts.
func WithActivities(activities []Activity) Option {
	return func(d *Dataset) {
		d.activities = append([]Activity(nil), activities...)
	}
}

// NewDataset builds an engine over the compiled-in seed.
func NewDataset(opts ...Option) *Dataset {
	d := &Dataset{
		activities:  append([]Activity(nil), seedActivities...),
		researchers: append([]Researcher(nil), seedResearchers...),
		score:       defaultScorer,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ Service = (*Dataset)(nil)

func (d *Dataset) Activities(ctx context.Context, kind ActivityKind) ([]Activity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Activity, 0, len(d.activities))
	for _, a := range d.activities {
		if kind != "" && a.Kind != kind {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (d *Dataset) Activity(ctx context.Context, id string) (ActivityDetail, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.activities {
		if a.ID == id {
			return d.resolveLocked(a), nil
		}
	}
	return ActivityDetail{}, ErrNotFound
}

// CreateActivity appends to the in-memory log. The record gets a fresh
// prefixed id, a creation stamp of today and a synthetic impact score; it is
// visible to every subsequent aggregation for the lifetime of the process.
func (d *Dataset) CreateActivity(ctx context.Context, draft NewActivity) (ActivityDetail, error) {
	if err := validateDraft(draft); err != nil {
		return ActivityDetail{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if draft.DepartmentID != "" && departmentByID(draft.DepartmentID) == nil {
		return ActivityDetail{}, ErrUnknownDepartment
	}

	now := d.now()
	a := Activity{
		ID:            ids.Prefixed("local"),
		Title:         strings.TrimSpace(draft.Title),
		Description:   strings.TrimSpace(draft.Description),
		Kind:          draft.Kind,
		Status:        draft.Status,
		Goals:         append([]int(nil), draft.Goals...),
		Date:          draft.Date,
		DepartmentID:  draft.DepartmentID,
		Impact:        d.score(),
		ResearcherIDs: append([]string(nil), draft.ResearcherIDs...),
		CreatedAt:     now,
	}
	if a.Date == "" {
		a.Date = now.Format("2006-01-02")
	}
	d.activities = append(d.activities, a)
	return d.resolveLocked(a), nil
}

func (d *Dataset) Goals(ctx context.Context) ([]Goal, error) {
	return append([]Goal(nil), seedGoals...), nil
}

func (d *Dataset) GoalActivities(ctx context.Context, goalID int) ([]Activity, error) {
	if goalID < 1 || goalID > GoalCount {
		return nil, ErrInvalidGoal
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Activity
	for _, a := range d.activities {
		if linksGoal(a, goalID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (d *Dataset) GoalSummary(ctx context.Context, goalID int) (GoalSummary, error) {
	if goalID < 1 || goalID > GoalCount {
		return GoalSummary{}, ErrInvalidGoal
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.goalSummaryLocked(seedGoals[goalID-1]), nil
}

func (d *Dataset) GoalDetail(ctx context.Context, goalID int) (GoalDetail, error) {
	if goalID < 1 || goalID > GoalCount {
		return GoalDetail{}, ErrInvalidGoal
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	goal := seedGoals[goalID-1]
	detail := GoalDetail{Goal: goal}
	deptSeen := map[string]bool{}
	resSeen := map[string]bool{}
	for _, a := range d.activities {
		if !linksGoal(a, goalID) {
			continue
		}
		switch a.Kind {
		case KindPublication:
			detail.Publications = append(detail.Publications, a)
		default:
			detail.Projects = append(detail.Projects, a)
		}
		if dept := departmentByID(a.DepartmentID); dept != nil && !deptSeen[dept.ID] {
			deptSeen[dept.ID] = true
			detail.Departments = append(detail.Departments, *dept)
		}
		for _, rid := range a.ResearcherIDs {
			if resSeen[rid] {
				continue
			}
			if r := d.researcherByIDLocked(rid); r != nil {
				resSeen[rid] = true
				detail.Researchers = append(detail.Researchers, *r)
			}
		}
	}
	detail.Stats = GoalStats{
		Projects:     len(detail.Projects),
		Publications: len(detail.Publications),
		Departments:  len(detail.Departments),
		Researchers:  len(detail.Researchers),
	}
	return detail, nil
}

func (d *Dataset) Summary(ctx context.Context) (Summary, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := Summary{GeneratedAt: d.now(), Totals: d.totalsLocked()}
	for _, g := range seedGoals {
		gs := d.goalSummaryLocked(g)
		if gs.Activities() == 0 {
			// Goals with zero linked activities stay out of the report.
			continue
		}
		s.SDGs = append(s.SDGs, gs)
	}
	return s, nil
}

func (d *Dataset) Totals(ctx context.Context) (Totals, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.totalsLocked(), nil
}

func (d *Dataset) RecentProjects(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 5
	}
	d.mu.RLock()
	var projects []Activity
	for _, a := range d.activities {
		if a.Kind == KindProject {
			projects = append(projects, a)
		}
	}
	d.mu.RUnlock()

	// ISO dates sort lexicographically in chronological order.
	sort.SliceStable(projects, func(i, j int) bool { return projects[i].Date > projects[j].Date })
	if len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}

func (d *Dataset) Benchmark(ctx context.Context) (Benchmark, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	b := Benchmark{Distribution: d.distributionLocked()}

	var ranked []GoalSummary
	for _, g := range seedGoals {
		if gs := d.goalSummaryLocked(g); gs.Activities() > 0 {
			ranked = append(ranked, gs)
		}
	}
	// Stable sort keeps goal-id order on ties.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Activities() > ranked[j].Activities() })

	cut := func(lo, hi int) []GoalSummary {
		if lo < 0 {
			lo = 0
		}
		if hi > len(ranked) {
			hi = len(ranked)
		}
		if lo >= hi {
			return nil
		}
		return append([]GoalSummary(nil), ranked[lo:hi]...)
	}
	b.Strong = cut(0, 3)
	b.Moderate = cut(3, 10)
	b.Underrepresented = cut(len(ranked)-3, len(ranked))
	return b, nil
}

func (d *Dataset) Metadata(ctx context.Context) (Metadata, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Metadata{
		SDGs:        append([]Goal(nil), seedGoals...),
		Departments: append([]Department(nil), seedDepartments...),
		Researchers: append([]Researcher(nil), d.researchers...),
	}, nil
}

func (d *Dataset) CreateResearcher(ctx context.Context, name, departmentID string) (Researcher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Researcher{}, ErrInvalidInput
	}
	if departmentByID(departmentID) == nil {
		return Researcher{}, ErrUnknownDepartment
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	r := Researcher{ID: ids.Prefixed("res"), Name: name, DepartmentID: departmentID}
	d.researchers = append(d.researchers, r)
	return r, nil
}

// Aggregation internals ---------------------------------------------------

func (d *Dataset) goalSummaryLocked(g Goal) GoalSummary {
	gs := GoalSummary{ID: g.ID, Code: g.Code, Title: g.Title, Color: g.Color}
	depts := map[string]struct{}{}
	researchers := map[string]struct{}{}
	for _, a := range d.activities {
		if !linksGoal(a, g.ID) {
			continue
		}
		switch a.Kind {
		case KindPublication:
			gs.PublicationCount++
		default:
			gs.ProjectCount++
		}
		if a.DepartmentID != "" {
			depts[a.DepartmentID] = struct{}{}
		}
		for _, rid := range a.ResearcherIDs {
			researchers[rid] = struct{}{}
		}
	}
	gs.DepartmentCount = len(depts)
	gs.ResearcherCount = len(researchers)
	return gs
}

func (d *Dataset) totalsLocked() Totals {
	t := Totals{ImpactScore: seedImpactScore, CommunityReach: seedCommunityReach}
	goals := map[int]struct{}{}
	depts := map[string]struct{}{}
	for _, a := range d.activities {
		switch a.Kind {
		case KindPublication:
			t.TotalPublications++
		default:
			t.TotalProjects++
			switch a.Status {
			case "Active":
				t.ActiveProjects++
			case "Completed":
				t.CompletedProjects++
			case "Planned":
				t.PlannedProjects++
			}
		}
		for _, g := range a.Goals {
			if g >= 1 && g <= GoalCount {
				goals[g] = struct{}{}
			}
		}
		if a.DepartmentID != "" {
			depts[a.DepartmentID] = struct{}{}
		}
	}
	t.GoalsCovered = len(goals)
	t.DepartmentsCount = len(depts)
	return t
}

func (d *Dataset) distributionLocked() []GoalShare {
	var counts, projects, publications [GoalCount]int
	for _, a := range d.activities {
		for _, g := range a.Goals {
			if g < 1 || g > GoalCount {
				// Tolerate malformed links rather than failing the report.
				continue
			}
			counts[g-1]++
			if a.Kind == KindPublication {
				publications[g-1]++
			} else {
				projects[g-1]++
			}
		}
	}
	out := make([]GoalShare, GoalCount)
	for i, g := range seedGoals {
		out[i] = GoalShare{
			Goal:             g,
			Count:            counts[i],
			ProjectCount:     projects[i],
			PublicationCount: publications[i],
		}
	}
	return out
}

func (d *Dataset) resolveLocked(a Activity) ActivityDetail {
	detail := ActivityDetail{Activity: a}
	detail.Department = departmentByID(a.DepartmentID)
	for _, rid := range a.ResearcherIDs {
		if r := d.researcherByIDLocked(rid); r != nil {
			detail.Researchers = append(detail.Researchers, *r)
		}
	}
	for _, g := range a.Goals {
		if g >= 1 && g <= GoalCount {
			detail.GoalDetails = append(detail.GoalDetails, seedGoals[g-1])
		}
	}
	return detail
}

func (d *Dataset) researcherByIDLocked(id string) *Researcher {
	for i := range d.researchers {
		if d.researchers[i].ID == id {
			r := d.researchers[i]
			return &r
		}
	}
	return nil
}

func departmentByID(id string) *Department {
	for i := range seedDepartments {
		if seedDepartments[i].ID == id {
			dept := seedDepartments[i]
			return &dept
		}
	}
	return nil
}

func linksGoal(a Activity, goalID int) bool {
	for _, g := range a.Goals {
		if g == goalID {
			return true
		}
	}
	return false
}

func validateDraft(draft NewActivity) error {
	if strings.TrimSpace(draft.Title) == "" {
		return ErrInvalidInput
	}
	if draft.Kind != KindProject && draft.Kind != KindPublication {
		return ErrInvalidInput
	}
	if len(draft.Goals) == 0 {
		return ErrNoGoals
	}
	for _, g := range draft.Goals {
		if g < 1 || g > GoalCount {
			return ErrInvalidGoal
		}
	}
	return nil
}
