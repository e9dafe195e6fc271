package postgres

import (
	"fmt"
	"strings"
)

// queryArgs numbers positional parameters as they are added.
type queryArgs struct {
	args []interface{}
}

func (q *queryArgs) add(value interface{}) string {
	q.args = append(q.args, value)
	return fmt.Sprintf("$%d", len(q.args))
}

type setList struct {
	q       *queryArgs
	columns []string
}

func newSetList(q *queryArgs) *setList {
	return &setList{q: q}
}

func (s *setList) add(column string, value *string) {
	if value == nil {
		return
	}
	s.set(column, *value)
}

func (s *setList) set(column string, value interface{}) {
	s.columns = append(s.columns, column+" = "+s.q.add(value))
}

func (s *setList) clause() string {
	return strings.Join(s.columns, ", ")
}

func appendLimitOffset(query string, q *queryArgs, limit, offset int) string {
	if limit > 0 {
		query += " LIMIT " + q.add(limit)
		if offset > 0 {
			query += " OFFSET " + q.add(offset)
		}
	}
	return query
}
