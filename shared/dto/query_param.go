package dto

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"stagebook/shared/constant"
	"strconv"
	"strings"
)

// ErrInvalidSort is returned by ValidateSort for an ordering the caller does not allow.
var ErrInvalidSort = errors.New("invalid sort")

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

// FromRequest populates QueryParams from the HTTP request.
// It's recommended to call this method with `defaultRequest` set to true if data is large
// Example:
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, true)
//
// This will set default values for Page, Limit, SortBy, and SortDir if they are not provided in the request.
// If `defaultRequest` is false, it will only populate the fields that are present in the request.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := queryParams.Get(constant.RequestParamSortDir); IsSortDir(strings.ToUpper(sortDir)) {
		q.SortDir = strings.ToUpper(sortDir)
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

// IsSortDir reports whether dir is ASC or DESC.
func IsSortDir(dir string) bool {
	return dir == SortDirAsc || dir == SortDirDesc
}

// ValidateSort checks SortBy against the allowed columns. An empty SortBy is accepted.
func (q QueryParams) ValidateSort(allowed ...string) error {
	if q.SortBy != "" && !slices.Contains(allowed, q.SortBy) {
		return fmt.Errorf("%w: sort_by must be one of %s", ErrInvalidSort, strings.Join(allowed, ", "))
	}

	if q.SortDir != "" && !IsSortDir(q.SortDir) {
		return fmt.Errorf("%w: sort_dir must be %s or %s", ErrInvalidSort, SortDirAsc, SortDirDesc)
	}

	return nil
}
