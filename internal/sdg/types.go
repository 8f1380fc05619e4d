package sdg

import (
	"errors"
	"time"
)

// GoalCount is the number of goals in the fixed taxonomy.
const GoalCount = 17

// ActivityKind distinguishes the two record families.
type ActivityKind string

const (
	KindProject     ActivityKind = "project"
	KindPublication ActivityKind = "publication"
)

// Goal is one entry of the fixed sustainable-development-goal taxonomy.
// The 17 instances are static reference data and never mutate.
type Goal struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Department is a static reference entry.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Researcher belongs to exactly one department. New researchers may be
// appended at runtime.
type Researcher struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
}

// Activity is a project or publication linked to one or more goals.
// Immutable once created. Date is an ISO day (YYYY-MM-DD); for that form
// lexicographic order equals chronological order.
type Activity struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Kind          ActivityKind `json:"activity_type"`
	Status        string       `json:"status"`
	Goals         []int        `json:"sdgs"`
	Date          string       `json:"date"`
	DepartmentID  string       `json:"department_id"`
	Impact        int          `json:"impact"`
	ResearcherIDs []string     `json:"researcher_ids"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NewActivity is the caller-supplied portion of a created record. The id,
// creation stamp and impact score are assigned by whichever side accepts the
// write.
type NewActivity struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Kind          ActivityKind `json:"activity_type"`
	Status        string       `json:"status"`
	Goals         []int        `json:"sdgs"`
	Date          string       `json:"date"`
	DepartmentID  string       `json:"department_id"`
	ResearcherIDs []string     `json:"researcher_ids"`
}

// GoalSummary is derived per goal; departments and researchers linked
// through several activities count once.
type GoalSummary struct {
	ID               int    `json:"id"`
	Code             string `json:"code"`
	Title            string `json:"title"`
	Color            string `json:"color"`
	ProjectCount     int    `json:"project_count"`
	PublicationCount int    `json:"publication_count"`
	DepartmentCount  int    `json:"department_count"`
	ResearcherCount  int    `json:"researcher_count"`
}

// Activities returns the combined activity count behind the summary.
func (s GoalSummary) Activities() int { return s.ProjectCount + s.PublicationCount }

// Totals aggregates counts across the whole activity set.
type Totals struct {
	TotalProjects     int `json:"total_projects"`
	TotalPublications int `json:"total_publications"`
	ActiveProjects    int `json:"active_projects"`
	CompletedProjects int `json:"completed_projects"`
	PlannedProjects   int `json:"planned_projects"`
	ImpactScore       int `json:"impact_score"`
	CommunityReach    int `json:"community_reach"`
	GoalsCovered      int `json:"sdgs_covered"`
	DepartmentsCount  int `json:"departments_count"`
}

// Summary is the dashboard-wide view. Goals with zero linked activities are
// excluded from SDGs even though they remain in the static reference set.
type Summary struct {
	GeneratedAt time.Time     `json:"generated_at"`
	SDGs        []GoalSummary `json:"sdgs"`
	Totals      Totals        `json:"totals"`
}

// GoalDetail materializes one goal's matched records and the deduplicated
// reference entities, not just counts.
type GoalDetail struct {
	Goal         Goal          `json:"sdg"`
	Stats        GoalStats     `json:"stats"`
	Projects     []Activity    `json:"projects"`
	Publications []Activity    `json:"publications"`
	Departments  []Department  `json:"departments"`
	Researchers  []Researcher  `json:"researchers"`
}

// GoalStats are the counts inside a GoalDetail.
type GoalStats struct {
	Projects     int `json:"projects"`
	Publications int `json:"publications"`
	Departments  int `json:"departments"`
	Researchers  int `json:"researchers"`
}

// ActivityDetail resolves one record's references for display.
type ActivityDetail struct {
	Activity
	Department  *Department  `json:"department"`
	Researchers []Researcher `json:"researchers"`
	GoalDetails []Goal       `json:"sdgs_details"`
}

// GoalShare is one slot of the distribution: the goal plus how many
// (activity, goal) pairs reference it.
type GoalShare struct {
	Goal
	Count            int `json:"count"`
	ProjectCount     int `json:"project_count"`
	PublicationCount int `json:"publication_count"`
}

// Benchmark ranks goals by combined activity count. Strong is the top 3,
// Moderate ranks 4-10, Underrepresented the bottom 3; ties keep goal-id
// order.
type Benchmark struct {
	Distribution     []GoalShare   `json:"distribution"`
	Strong           []GoalSummary `json:"strong"`
	Moderate         []GoalSummary `json:"moderate"`
	Underrepresented []GoalSummary `json:"underrepresented"`
}

// Metadata bundles the reference sets consumed by entry forms.
type Metadata struct {
	SDGs        []Goal       `json:"sdgs"`
	Departments []Department `json:"departments"`
	Researchers []Researcher `json:"researchers"`
}

var (
	ErrNotFound          = errors.New("sdg: not found")
	ErrInvalidGoal       = errors.New("sdg: goal id out of range")
	ErrNoGoals           = errors.New("sdg: at least one goal is required")
	ErrUnknownDepartment = errors.New("sdg: unknown department")
	ErrInvalidInput      = errors.New("sdg: invalid input")
)
