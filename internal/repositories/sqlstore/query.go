package sqlstore

import "strings"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// setList collects `column = ?` assignments for a partial UPDATE.
type setList struct {
	columns []string
	args    []interface{}
}

func newSetList() *setList {
	return &setList{}
}

// add appends the assignment only when value is supplied.
func (s *setList) add(column string, value *string) {
	if value == nil {
		return
	}
	s.set(column, *value)
}

func (s *setList) set(column string, value interface{}) {
	s.columns = append(s.columns, column+" = ?")
	s.args = append(s.args, value)
}

func (s *setList) raw(expr string, value interface{}) {
	s.columns = append(s.columns, expr)
	s.args = append(s.args, value)
}

func (s *setList) clause() string {
	return strings.Join(s.columns, ", ")
}

// appendLimitOffset adds paging. A non-positive limit means no limit.
func appendLimitOffset(query string, args []interface{}, limit, offset int) (string, []interface{}) {
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
		if offset > 0 {
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}
	return query, args
}
