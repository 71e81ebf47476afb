package dto

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"comanda/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the request query string.
// With defaultRequest set, missing page and limit fall back to the package defaults:
//
//	q := dto.QueryParams{}
//	q.FromRequest(req, true)
//	q.AllowSort("name", "created_at")
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page, err := strconv.Atoi(queryParams.Get(constant.RequestParamPage)); err == nil && page > 0 {
		q.Page = page
	}

	if limit, err := strconv.Atoi(queryParams.Get(constant.RequestParamLimit)); err == nil && limit > 0 {
		q.Limit = limit
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// AllowSort drops a SortBy that is not one of allowed. SortBy ends up in the
// ORDER BY clause verbatim, so request input must always pass through here.
func (q *QueryParams) AllowSort(allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = ""
	}

	if q.SortBy != "" && q.SortDir == "" {
		q.SortDir = SortDirAsc
	}
}

// Capped returns limit bounded to [1, maxLimit], using fallback when limit is not positive.
func Capped(limit, fallback, maxLimit int) int {
	if limit <= 0 {
		limit = fallback
	}

	if maxLimit > 0 && limit > maxLimit {
		return maxLimit
	}

	return limit
}
