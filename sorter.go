package tabler

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/huandu/xstrings"

	"github.com/bjaus/tabler/internal/markup"
)

// Sorter renders the sort link placed in a sortable column header.
type Sorter struct {
	column             string
	currentPage        int
	linkAttributes     Attributes
	pageName           string
	pageSize           int
	pageSizeName       string
	separator          string
	sortClassAsc       string
	sortClassDesc      string
	sortParamName      string
	sortParams         SortState
	urlQueryParameters url.Values
	urlPath            string
}

// NewSorter returns a sorter with the default parameter names.
func NewSorter() Sorter {
	return Sorter{
		currentPage:   1,
		pageName:      "page",
		pageSize:      10,
		pageSizeName:  "page-size",
		separator:     ",",
		sortClassAsc:  "asc",
		sortClassDesc: "desc",
		sortParamName: "sort",
	}
}

// Column sets the field the link sorts by.
func (s Sorter) Column(value string) Sorter {
	s.column = value
	return s
}

// CurrentPage sets the page number written into the link.
func (s Sorter) CurrentPage(value int) Sorter {
	s.currentPage = value
	return s
}

// LinkAttributes replaces the attributes of the <a> element.
func (s Sorter) LinkAttributes(values Attributes) Sorter {
	s.linkAttributes = values
	return s
}

// LinkClass adds value to the class of the <a> element.
func (s Sorter) LinkClass(value string) Sorter {
	s.linkAttributes = s.linkAttributes.WithClass(value)
	return s
}

// PageName sets the query parameter holding the page number.
func (s Sorter) PageName(value string) Sorter {
	s.pageName = value
	return s
}

// PageSize sets the page size written into the link.
func (s Sorter) PageSize(value int) Sorter {
	s.pageSize = value
	return s
}

// PageSizeName sets the query parameter holding the page size.
func (s Sorter) PageSizeName(value string) Sorter {
	s.pageSizeName = value
	return s
}

// Separator sets the string joining sort values in data-sort.
func (s Sorter) Separator(value string) Sorter {
	s.separator = value
	return s
}

// SortClassAsc sets the class used when the requested sort is descending,
// meaning the column is currently sorted ascending.
func (s Sorter) SortClassAsc(value string) Sorter {
	s.sortClassAsc = value
	return s
}

// SortClassDesc sets the class used when the requested sort is ascending.
func (s Sorter) SortClassDesc(value string) Sorter {
	s.sortClassDesc = value
	return s
}

// SortParamName sets the query parameter holding the sort order.
func (s Sorter) SortParamName(value string) Sorter {
	s.sortParamName = value
	return s
}

// SortParams sets the query parameters the link requests.
func (s Sorter) SortParams(values SortState) Sorter {
	s.sortParams = values
	return s
}

// URLQueryParameters sets the parameters of the current request. Direction
// classes are only applied when they are non-empty.
func (s Sorter) URLQueryParameters(values url.Values) Sorter {
	s.urlQueryParameters = values
	return s
}

// URLPath sets the path the link points to.
func (s Sorter) URLPath(value string) Sorter {
	s.urlPath = value
	return s
}

// Render returns the <a> element.
func (s Sorter) Render() string {
	attrs := s.linkAttributes
	if len(s.urlQueryParameters) > 0 {
		if strings.HasPrefix(s.sortParams[s.sortParamName], "-") {
			attrs = attrs.WithClass(s.sortClassAsc)
		} else {
			attrs = attrs.WithClass(s.sortClassDesc)
		}
	}
	keys := s.sortKeys()
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = s.sortParams[k]
	}
	attrs = attrs.With("data-sort", strings.Join(values, s.separator)).With("href", s.url(keys))
	return markup.Tag("a", markup.Escape(Humanize(s.column)), attrs)
}

// sortKeys returns the sort parameter names in order, leaving out the
// paging parameters.
func (s Sorter) sortKeys() []string {
	keys := make([]string, 0, len(s.sortParams))
	for k := range s.sortParams {
		if k == s.pageName || k == s.pageSizeName {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// url builds urlPath?sort-params&page=..&page-size=.., keeping sort
// parameters first.
func (s Sorter) url(keys []string) string {
	pairs := make([]string, 0, len(keys)+2)
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(s.sortParams[k]))
	}
	pairs = append(pairs,
		url.QueryEscape(s.pageName)+"="+strconv.Itoa(s.currentPage),
		url.QueryEscape(s.pageSizeName)+"="+strconv.Itoa(s.pageSize),
	)
	return s.urlPath + "?" + strings.Join(pairs, "&")
}

// Humanize turns a field name into readable words: "blocked_at" and
// "blockedAt" both become "Blocked at".
func Humanize(name string) string {
	words := strings.NewReplacer("_", " ", "-", " ").Replace(xstrings.ToSnakeCase(name))
	return xstrings.FirstRuneToUpper(strings.Join(strings.Fields(words), " "))
}
