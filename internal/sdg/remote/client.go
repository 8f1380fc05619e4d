package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"sdgdash.org/internal/sdg"
	"sdgdash.org/internal/session"
)

// Client speaks the upstream dashboard REST API through the session
// manager's authenticated-request primitive. It never touches raw tokens.
type Client struct {
	sess *session.Manager
}

// NewClient wraps an authenticated session.
func NewClient(sess *session.Manager) *Client { return &Client{sess: sess} }

func (c *Client) Activities(ctx context.Context, kind sdg.ActivityKind, ordering string, limit int) ([]sdg.Activity, error) {
	q := url.Values{}
	if kind != "" {
		q.Set("activity_type", string(kind))
	}
	if ordering != "" {
		q.Set("ordering", ordering)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/activities/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var items []sdg.Activity
	if err := c.getList(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Activity(ctx context.Context, id string) (sdg.ActivityDetail, error) {
	var detail sdg.ActivityDetail
	err := c.sess.JSON(ctx, http.MethodGet, "/activities/"+url.PathEscape(id)+"/", nil, &detail)
	return detail, err
}

func (c *Client) CreateActivity(ctx context.Context, draft sdg.NewActivity) (sdg.ActivityDetail, error) {
	var created sdg.ActivityDetail
	err := c.sess.JSON(ctx, http.MethodPost, "/activities/", draft, &created)
	return created, err
}

func (c *Client) Goals(ctx context.Context) ([]sdg.Goal, error) {
	var goals []sdg.Goal
	if err := c.getList(ctx, "/sdg/", &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *Client) GoalActivities(ctx context.Context, goalID int) ([]sdg.Activity, error) {
	var items []sdg.Activity
	if err := c.getList(ctx, fmt.Sprintf("/sdg/%d/activities/", goalID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GoalSummary(ctx context.Context, goalID int) (sdg.GoalSummary, error) {
	var gs sdg.GoalSummary
	err := c.sess.JSON(ctx, http.MethodGet, fmt.Sprintf("/sdg/%d/summary/", goalID), nil, &gs)
	return gs, err
}

func (c *Client) GoalDetail(ctx context.Context, goalID int) (sdg.GoalDetail, error) {
	var detail sdg.GoalDetail
	err := c.sess.JSON(ctx, http.MethodGet, fmt.Sprintf("/reports/sdg/%d", goalID), nil, &detail)
	return detail, err
}

func (c *Client) Summary(ctx context.Context) (sdg.Summary, error) {
	var s sdg.Summary
	err := c.sess.JSON(ctx, http.MethodGet, "/reports/summary/", nil, &s)
	return s, err
}

func (c *Client) Benchmark(ctx context.Context) (sdg.Benchmark, error) {
	var b sdg.Benchmark
	err := c.sess.JSON(ctx, http.MethodGet, "/benchmark/", nil, &b)
	return b, err
}

func (c *Client) Metadata(ctx context.Context) (sdg.Metadata, error) {
	var meta sdg.Metadata
	err := c.sess.JSON(ctx, http.MethodGet, "/metadata", nil, &meta)
	return meta, err
}

func (c *Client) CreateResearcher(ctx context.Context, name, departmentID string) (sdg.Researcher, error) {
	payload := map[string]string{"name": name, "department_id": departmentID}
	var r sdg.Researcher
	err := c.sess.JSON(ctx, http.MethodPost, "/metadata/researchers", payload, &r)
	return r, err
}

// getList fetches a collection endpoint, unwrapping the optional
// {"results": [...]} pagination envelope some endpoints use.
func (c *Client) getList(ctx context.Context, path string, out any) error {
	resp, err := c.sess.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}
	return unmarshalList(data, out)
}

func unmarshalList(data []byte, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	if envelope.Results == nil {
		return fmt.Errorf("remote: response is neither a list nor a results envelope")
	}
	return json.Unmarshal(envelope.Results, out)
}
