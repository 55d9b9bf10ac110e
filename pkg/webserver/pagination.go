package webserver

import (
	"net/http"
	"strconv"
)

// Params represents pagination parameters for list endpoints.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Limit   int `json:"-"`
	Offset  int `json:"-"`
}

// Response represents a paginated response.
type Response[T any] struct {
	Page         int `json:"page"`
	PerPage      int `json:"per_page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
	Results      []T `json:"results"`
}

const DefaultPerPage = 20

const MaxPerPage = 100

// ParseParams extracts pagination parameters from an HTTP request.
func ParseParams(r *http.Request) Params {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Params{
		Page:    page,
		PerPage: perPage,
		Limit:   perPage,
		Offset:  (page - 1) * perPage,
	}
}

// NewResponse creates a paginated response.
func NewResponse[T any](results []T, page, perPage, totalResults int) Response[T] {
	return Response[T]{
		Page:         page,
		PerPage:      perPage,
		TotalPages:   totalPages(totalResults, perPage),
		TotalResults: totalResults,
		Results:      results,
	}
}

func totalPages(totalResults, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := totalResults / perPage
	if totalResults%perPage > 0 {
		pages++
	}
	return pages
}
