package models

import (
	"slices"
	"strings"

	"github.com/Temutjin2k/agro-insurance/pkg/validator"
)

const (
	maxPage     = 10_000_000
	maxPageSize = 100
)

// Filters carries the paging and ordering of a list request. Sort is a column
// name from SortSafelist, prefixed with "-" for descending order.
type Filters struct {
	Page         int
	PageSize     int
	Sort         string
	SortSafelist []string
}

func (f Filters) Validate(v *validator.Validator) {
	v.Check(f.Page > 0, "page", "must be greater than zero")
	v.Check(f.Page <= maxPage, "page", "must be a maximum of 10 million")
	v.Check(f.PageSize > 0, "page_size", "must be greater than zero")
	v.Check(f.PageSize <= maxPageSize, "page_size", "must be a maximum of 100")
	v.Check(validator.PermittedValue(f.Sort, f.SortSafelist...), "sort", "invalid sort value")
}

// SortColumn is the column to order by. It only ever returns safelisted names,
// so it is safe to interpolate into SQL; an unlisted Sort falls back to the first entry.
func (f Filters) SortColumn() string {
	sort := f.Sort
	if !slices.Contains(f.SortSafelist, sort) {
		if len(f.SortSafelist) == 0 {
			return "id"
		}
		sort = f.SortSafelist[0]
	}
	return strings.TrimPrefix(sort, "-")
}

func (f Filters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") && slices.Contains(f.SortSafelist, f.Sort) {
		return "DESC"
	}
	return "ASC"
}

func (f Filters) Limit() int {
	return f.PageSize
}

func (f Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Metadata describes the page returned by a list endpoint.
type Metadata struct {
	CurrentPage  int `json:"current_page"`
	PageSize     int `json:"page_size"`
	FirstPage    int `json:"first_page"`
	LastPage     int `json:"last_page"`
	TotalRecords int `json:"total_records"`
}

// CalculateMetadata derives the page bounds from the total row count.
// First and last page are zero when there are no rows.
func CalculateMetadata(totalRecords, page, pageSize int) Metadata {
	m := Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		TotalRecords: totalRecords,
	}
	if totalRecords == 0 || pageSize <= 0 {
		return m
	}

	m.FirstPage = 1
	m.LastPage = (totalRecords + pageSize - 1) / pageSize
	return m
}
