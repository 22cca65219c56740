package http

import (
	"net/url"
	"strconv"
)

// Query builds the filter string for a table API request. The backend supports
// equality filters and single-column ordering; nothing richer is composed on
// the client.
type Query struct {
	values url.Values
}

func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

func (q *Query) Select(columns string) *Query {
	q.values.Set("select", columns)
	return q
}

func (q *Query) Eq(column string, value string) *Query {
	q.values.Set(column, "eq."+value)
	return q
}

func (q *Query) OrderAsc(column string) *Query {
	q.values.Set("order", column+".asc")
	return q
}

func (q *Query) OrderDesc(column string) *Query {
	q.values.Set("order", column+".desc")
	return q
}

func (q *Query) Limit(n int) *Query {
	q.values.Set("limit", strconv.Itoa(n))
	return q
}

func (q *Query) Encode() string {
	return q.values.Encode()
}
