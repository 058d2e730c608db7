package handler

import (
	"net/url"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/pkg/validator"
)

// readFilters reads page, page_size and sort. The first safelist entry is the default sort.
func readFilters(qs url.Values, safelist []string, v *validator.Validator) models.Filters {
	filters := models.Filters{
		Page:         readInt(qs, "page", 1, v),
		PageSize:     readInt(qs, "page_size", 20, v),
		Sort:         readString(qs, "sort", safelist[0]),
		SortSafelist: safelist,
	}
	filters.Validate(v)
	return filters
}

func sortSafelist(columns ...string) []string {
	list := make([]string, 0, len(columns)*2)
	list = append(list, columns...)
	for _, c := range columns {
		list = append(list, "-"+c)
	}
	return list
}
