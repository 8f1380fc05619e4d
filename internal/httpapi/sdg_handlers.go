package httpapi

import (
	"net/http"
	"strings"

	"sdgdash.org/internal/sdg"
)

func (a *API) handleActivitiesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listActivities(w, r)
	case http.MethodPost:
		a.createActivity(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) listActivities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind := sdg.ActivityKind(q.Get("activity_type"))
	switch kind {
	case "", sdg.KindProject, sdg.KindPublication:
	default:
		writeError(w, r, http.StatusBadRequest, "activity_type must be project or publication")
		return
	}

	// recent projects are a dedicated query shape: newest first with a cap
	if q.Get("ordering") == "-date_created" {
		limit := 0
		if raw := q.Get("limit"); raw != "" {
			n, ok := parsePositiveInt(raw)
			if !ok {
				writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = n
		}
		items, err := a.svc.RecentProjects(r.Context(), limit)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": items})
		return
	}

	items, err := a.svc.Activities(r.Context(), kind)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

func (a *API) createActivity(w http.ResponseWriter, r *http.Request) {
	var draft sdg.NewActivity
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	created, err := a.svc.CreateActivity(r.Context(), draft)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) handleActivityResource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/activities/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	detail, err := a.svc.Activity(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (a *API) handleGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	goals, err := a.svc.Goals(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": goals})
}

func (a *API) handleGoalResource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/sdg/"), "/")
	idPart, view, _ := strings.Cut(rest, "/")
	goalID, ok := parsePositiveInt(idPart)
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch view {
	case "activities":
		items, err := a.svc.GoalActivities(r.Context(), goalID)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": items})
	case "summary":
		summary, err := a.svc.GoalSummary(r.Context(), goalID)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	case "detail":
		detail, err := a.svc.GoalDetail(r.Context(), goalID)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	summary, err := a.svc.Summary(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) handleTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	totals, err := a.svc.Totals(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (a *API) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	bench, err := a.svc.Benchmark(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bench)
}

func (a *API) handleMetadata(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	meta, err := a.svc.Metadata(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

type createResearcherRequest struct {
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
}

func (a *API) handleResearchers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req createResearcherRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}
	res, err := a.svc.CreateResearcher(r.Context(), req.Name, req.DepartmentID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
