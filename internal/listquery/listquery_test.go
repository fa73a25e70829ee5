package listquery_test

import (
	"net/url"
	"slices"
	"testing"

	"github.com/MhmdALii1/employee-management-system/internal/listquery"
	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID    int
	Name  string
	Dept  string
	Bonus *int
}

func intPtr(v int) *int { return &v }

var people = []person{
	{ID: 1, Name: "Jane Doe", Dept: "Engineering", Bonus: intPtr(10)},
	{ID: 2, Name: "John Smith", Dept: "Marketing"},
	{ID: 3, Name: "alice jones", Dept: "Engineering", Bonus: intPtr(5)},
	{ID: 4, Name: "Bob Brown", Dept: "Sales", Bonus: intPtr(10)},
	{ID: 5, Name: "Carol White", Dept: "engineering"},
	{ID: 6, Name: "Dan Green", Dept: "Sales", Bonus: intPtr(1)},
}

var schema = listquery.Schema[person]{
	Searchable: func(p person) []string { return []string{p.Name, p.Dept} },
	Sortable: map[string]listquery.CompareFunc[person]{
		"id":   listquery.By(func(p person) int { return p.ID }),
		"name": listquery.ByText(func(p person) string { return p.Name }),
		"dept": listquery.ByText(func(p person) string { return p.Dept }),
		"bonus": listquery.NullsFirst(func(p person) (int, bool) {
			if p.Bonus == nil {
				return 0, false
			}
			return *p.Bonus, true
		}, func(a, b int) int { return a - b }),
	},
}

func ids(items []person) []int {
	out := make([]int, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestRun_SearchIsCaseInsensitive(t *testing.T) {
	res, err := listquery.Run(people, schema, listquery.Params{
		Search: "ENGINEER", SortBy: "id", Page: 1, PageSize: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 5}, ids(res.Items))
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 1, res.TotalPages())
}

func TestRun_TotalCountCoversAllPages(t *testing.T) {
	res, err := listquery.Run(people, schema, listquery.Params{SortBy: "id", Page: 1, PageSize: 4})
	require.NoError(t, err)

	assert.Len(t, res.Items, 4)
	assert.Equal(t, 6, res.TotalCount)
	assert.Equal(t, 2, res.TotalPages())
}

func TestRun_SortsBeforePaginating(t *testing.T) {
	res, err := listquery.Run(people, schema, listquery.Params{SortBy: "name", SortOrder: "asc", Page: 1, PageSize: 2})
	require.NoError(t, err)

	// byte-wise comparison puts upper case before lower case
	assert.Equal(t, []int{4, 5}, ids(res.Items))

	last, err := listquery.Run(people, schema, listquery.Params{SortBy: "name", SortOrder: "asc", Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, ids(last.Items))
}

func TestRun_PagesPartitionTheOrderedSet(t *testing.T) {
	var seen []int
	for page := 1; page <= 3; page++ {
		res, err := listquery.Run(people, schema, listquery.Params{SortBy: "dept", SortOrder: "desc", Page: page, PageSize: 2})
		require.NoError(t, err)
		seen = append(seen, ids(res.Items)...)
	}

	all, err := listquery.Run(people, schema, listquery.Params{SortBy: "dept", SortOrder: "desc", Page: 1, PageSize: 6})
	require.NoError(t, err)
	assert.Equal(t, ids(all.Items), seen)

	sorted := slices.Clone(seen)
	slices.Sort(sorted)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, sorted)
}

func TestRun_StableForTiesInBothDirections(t *testing.T) {
	asc, err := listquery.Run(people, schema, listquery.Params{SortBy: "bonus", SortOrder: "asc", Page: 1, PageSize: 6})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 6, 3, 1, 4}, ids(asc.Items))

	desc, err := listquery.Run(people, schema, listquery.Params{SortBy: "bonus", SortOrder: "desc", Page: 1, PageSize: 6})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 3, 6, 2, 5}, ids(desc.Items))
}

func TestRun_IsRepeatableAndLeavesInputAlone(t *testing.T) {
	input := slices.Clone(people)
	p := listquery.Params{Search: "e", SortBy: "name", SortOrder: "desc", Page: 1, PageSize: 3}

	first, err := listquery.Run(input, schema, p)
	require.NoError(t, err)
	second, err := listquery.Run(input, schema, p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, people, input)
}

func TestRun_PagePastTheEndIsEmpty(t *testing.T) {
	res, err := listquery.Run(people, schema, listquery.Params{SortBy: "id", Page: 9, PageSize: 4})
	require.NoError(t, err)

	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, 6, res.TotalCount)
}

func TestRun_NoSortKeepsInputOrder(t *testing.T) {
	res, err := listquery.Run(people, schema, listquery.Params{Search: "sales", Page: 1, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 6}, ids(res.Items))
}

func TestRun_RejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		p     listquery.Params
		field string
	}{
		{"unknown sort field", listquery.Params{SortBy: "salary", Page: 1, PageSize: 4}, "sortBy"},
		{"bad sort order", listquery.Params{SortBy: "name", SortOrder: "sideways", Page: 1, PageSize: 4}, "sortOrder"},
		{"page zero", listquery.Params{Page: 0, PageSize: 4}, "page"},
		{"page size zero", listquery.Params{Page: 1, PageSize: 0}, "pageSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := listquery.Run(people, schema, tt.p)

			var verr *apperror.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Violations[0].Field)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		})
	}
}

func TestArrange_UnknownSortField(t *testing.T) {
	_, err := listquery.Arrange(people, schema, "", "salary", "asc")
	assert.ErrorContains(t, err, `cannot sort by "salary", expected one of: bonus, dept, id, name`)
}

func TestParseParams(t *testing.T) {
	defaults := listquery.Params{SortBy: "name", SortOrder: "asc", PageSize: 4}

	t.Run("defaults", func(t *testing.T) {
		p, err := listquery.ParseParams(url.Values{}, defaults)
		require.NoError(t, err)
		assert.Equal(t, listquery.Params{SortBy: "name", SortOrder: "asc", Page: 1, PageSize: 4}, p)
	})

	t.Run("overrides", func(t *testing.T) {
		q := url.Values{"search": {"Jane"}, "sortBy": {"dept"}, "sortOrder": {"desc"}, "page": {"2"}, "pageSize": {"100"}}
		p, err := listquery.ParseParams(q, defaults)
		require.NoError(t, err)
		assert.Equal(t, listquery.Params{Search: "Jane", SortBy: "dept", SortOrder: "desc", Page: 2, PageSize: 4}, p)
	})

	t.Run("non numeric page", func(t *testing.T) {
		_, err := listquery.ParseParams(url.Values{"page": {"two"}}, defaults)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})
}
