package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/askdesk/askdesk-go/cache"
	"github.com/askdesk/askdesk-go/ecode"

	"github.com/google/go-querystring/query"
	"github.com/redis/go-redis/v9"
)

// faqCacheTTL bounds how long public FAQ reads are served from cache
const faqCacheTTL = time.Minute * 5

// FAQService covers the public /faq endpoints. Read-mostly responses
// (popular, categories) go through an optional redis cache.
type FAQService struct {
	client     *Client
	popular    *cache.Cache[[]Question]
	categories *cache.Cache[[]CategoryCount]
}

// FAQ returns the FAQ endpoint service; rc may be nil, which disables
// caching entirely
func (c *Client) FAQ(rc *redis.Client) *FAQService {
	return &FAQService{
		client:     c,
		popular:    cache.NewCache[[]Question](rc, "askdesk:faq:popular"),
		categories: cache.NewCache[[]CategoryCount](rc, "askdesk:faq:categories"),
	}
}

// List fetches published FAQ entries
func (s *FAQService) List(ctx context.Context, params *PageParams) (*QuestionList, error) {
	req := &request{method: http.MethodGet, path: "/faq"}
	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return nil, ecode.Wrap(ecode.Validation, "invalid page params", err)
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

// Get fetches a single FAQ entry
func (s *FAQService) Get(ctx context.Context, id string) (*Question, error) {
	var out dataResponse
	if err := s.client.do(ctx, &request{method: http.MethodGet, path: "/faq/" + id}, &out); err != nil {
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

// Search fetches FAQ entries matching the query text
func (s *FAQService) Search(ctx context.Context, text string, params *PageParams) (*QuestionList, error) {
	if text == "" {
		return nil, ecode.New(ecode.Validation, "search query is empty")
	}

	req := &request{method: http.MethodGet, path: "/faq/search/" + url.PathEscape(text)}
	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return nil, ecode.Wrap(ecode.Validation, "invalid page params", err)
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

// Popular fetches the latest published entries, cache-first
func (s *FAQService) Popular(ctx context.Context) ([]Question, error) {
	if cached, err := s.popular.Get(ctx, "latest"); err == nil && cached != nil {
		return *cached, nil
	}

	var out listResponse
	if err := s.client.do(ctx, &request{method: http.MethodGet, path: "/faq/popular"}, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}

	var items []Question
	if err := decodeData(out.Data, &items); err != nil {
		return nil, err
	}
	if err := s.popular.Set(ctx, "latest", &items, faqCacheTTL); err != nil {
		s.client.log.Warnf(ctx, "failed to cache popular faq: %v", err)
	}
	return items, nil
}

// Categories fetches the category tallies, cache-first
func (s *FAQService) Categories(ctx context.Context) ([]CategoryCount, error) {
	if cached, err := s.categories.Get(ctx, "all"); err == nil && cached != nil {
		return *cached, nil
	}

	var out listResponse
	if err := s.client.do(ctx, &request{method: http.MethodGet, path: "/faq/categories"}, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}

	var items []CategoryCount
	if err := decodeData(out.Data, &items); err != nil {
		return nil, err
	}
	if err := s.categories.Set(ctx, "all", &items, faqCacheTTL); err != nil {
		s.client.log.Warnf(ctx, "failed to cache faq categories: %v", err)
	}
	return items, nil
}
