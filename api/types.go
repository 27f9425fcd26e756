package api

import (
	"encoding/json"

	"github.com/askdesk/askdesk-go/session"
)

// Question is a submitted question as the backend returns it
type Question struct {
	ID         string `json:"_id"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
	Answer     string `json:"answer,omitempty"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	AskedBy    string `json:"askedBy,omitempty"`
	ShowInFAQ  bool   `json:"showInFAQ"`
	ViewCount  int    `json:"viewCount"`
	AnsweredBy string `json:"answeredBy,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// QuestionFilter narrows the admin question listing; zero values are
// omitted from the query string
type QuestionFilter struct {
	Status   string `url:"status,omitempty"`
	Category string `url:"category,omitempty"`
	Search   string `url:"search,omitempty"`
	DateFrom string `url:"dateFrom,omitempty"`
	DateTo   string `url:"dateTo,omitempty"`
	Page     int    `url:"page,omitempty"`
	Limit    int    `url:"limit,omitempty"`
}

// QuestionPatch carries the fields an update may change; nil fields
// are left untouched by the backend
type QuestionPatch struct {
	Title     *string `json:"title,omitempty"`
	Detail    *string `json:"detail,omitempty"`
	Answer    *string `json:"answer,omitempty"`
	Category  *string `json:"category,omitempty"`
	Status    *string `json:"status,omitempty"`
	ShowInFAQ *bool   `json:"showInFAQ,omitempty"`
}

// NewQuestion is the public submission payload
type NewQuestion struct {
	Title    string `json:"title" validate:"required"`
	Detail   string `json:"detail" validate:"required"`
	Category string `json:"category" validate:"required"`
	AskedBy  string `json:"askedBy,omitempty"`
}

// Pagination describes a paged listing
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// QuestionList is a paged question listing
type QuestionList struct {
	Items      []Question
	Pagination *Pagination
}

// DashboardStats is the admin dashboard aggregate
type DashboardStats struct {
	Overview      map[string]int  `json:"overview"`
	CategoryStats []CategoryCount `json:"categoryStats"`
}

// CategoryCount is a per-category tally
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PageParams is shared pagination input for public listings
type PageParams struct {
	Page     int    `url:"page,omitempty"`
	Limit    int    `url:"limit,omitempty"`
	Category string `url:"category,omitempty"`
}

// loginResponse tolerates both the canonical "user" field and the
// deprecated "admin" field some backend revisions emit
type loginResponse struct {
	envelope
	Token string           `json:"token"`
	User  *session.Profile `json:"user"`
	Admin *session.Profile `json:"admin"`
}

// principal resolves the canonical profile field
func (r *loginResponse) principal() *session.Profile {
	if r.User != nil {
		return r.User
	}
	return r.Admin
}

// listResponse is the generic data+pagination envelope
type listResponse struct {
	envelope
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}

// dataResponse is the generic single-object envelope
type dataResponse struct {
	envelope
	Data json.RawMessage `json:"data"`
}
