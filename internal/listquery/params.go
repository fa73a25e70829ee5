package listquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
)

// ParseParams reads search, sortBy, sortOrder and page from query values.
// Missing values take the defaults. The page size is never read from the
// request.
func ParseParams(values url.Values, defaults Params) (Params, error) {
	p := defaults
	p.Search = values.Get("search")

	if v := strings.TrimSpace(values.Get("sortBy")); v != "" {
		p.SortBy = v
	}
	if v := strings.TrimSpace(values.Get("sortOrder")); v != "" {
		p.SortOrder = v
	}
	if p.Page == 0 {
		p.Page = 1
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, apperror.NewValidationError(apperror.Violation{
				Field: "page", Rule: "numeric", Message: "page must be a whole number",
			})
		}
		p.Page = page
	}
	return p, nil
}
