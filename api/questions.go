package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/askdesk/askdesk-go/ecode"
	"github.com/askdesk/askdesk-go/validation/validator"

	"github.com/google/go-querystring/query"
)

// QuestionService covers the /questions endpoints. Listing, updating
// and deleting are admin-area calls; submission and single reads are
// public.
type QuestionService struct {
	client *Client
}

// Questions returns the question endpoint service
func (c *Client) Questions() *QuestionService {
	return &QuestionService{client: c}
}

// List fetches questions with optional filters and pagination
func (s *QuestionService) List(ctx context.Context, filter *QuestionFilter) (*QuestionList, error) {
	req := &request{method: http.MethodGet, path: "/questions", authed: true}
	if filter != nil {
		values, err := query.Values(filter)
		if err != nil {
			return nil, ecode.Wrap(ecode.Validation, "invalid question filter", err)
		}
		req.query = values
	}

	var out listResponse
	if err := s.client.do(ctx, req, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}

	var items []Question
	if err := decodeData(out.Data, &items); err != nil {
		return nil, err
	}
	return &QuestionList{Items: items, Pagination: out.Pagination}, nil
}

// Get fetches a single question
func (s *QuestionService) Get(ctx context.Context, id string) (*Question, error) {
	var out dataResponse
	if err := s.client.do(ctx, &request{method: http.MethodGet, path: "/questions/" + id}, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	var q Question
	if err := decodeData(out.Data, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Create submits a new question; no credential required
func (s *QuestionService) Create(ctx context.Context, q *NewQuestion) (*Question, error) {
	if err := validator.Struct(q); err != nil {
		return nil, err
	}
	var out dataResponse
	req := &request{method: http.MethodPost, path: "/questions", body: q}
	if err := s.client.do(ctx, req, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	var created Question
	if err := decodeData(out.Data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies a partial change to a question
func (s *QuestionService) Update(ctx context.Context, id string, patch *QuestionPatch) (*Question, error) {
	var out dataResponse
	req := &request{method: http.MethodPut, path: "/questions/" + id, body: patch, authed: true}
	if err := s.client.do(ctx, req, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	var updated Question
	if err := decodeData(out.Data, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a question
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	var out envelope
	req := &request{method: http.MethodDelete, path: "/questions/" + id, authed: true}
	if err := s.client.do(ctx, req, &out); err != nil {
		return err
	}
	return out.check()
}

// Stats fetches the dashboard aggregates
func (s *QuestionService) Stats(ctx context.Context) (*DashboardStats, error) {
	var out dataResponse
	req := &request{method: http.MethodGet, path: "/questions/stats/dashboard", authed: true}
	if err := s.client.do(ctx, req, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	var stats DashboardStats
	if err := decodeData(out.Data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// decodeData unmarshals a data payload, mapping failures onto the
// validation kind
func decodeData(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return ecode.Wrap(ecode.Validation, "malformed backend response data", err)
	}
	return nil
}
