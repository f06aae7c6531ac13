package sqlite

import "fmt"

// Criteria selects rows by comparing a single column with a value
type Criteria struct {
	Field    string
	Operator string
	Value    interface{}
}

// EqualTo creates criteria matching field against value
func EqualTo(field string, value interface{}) *Criteria {
	return &Criteria{Field: field, Operator: "=", Value: value}
}

// BuildCriteria renders criteria as a case-insensitive filter expression
// with its bound arguments. Field and operator are not validated.
// Nil criteria yield an empty expression and no arguments.
func BuildCriteria(criteria *Criteria) (string, []interface{}) {
	if criteria == nil {
		return "", []interface{}{}
	}

	expression := fmt.Sprintf("%s%s? COLLATE NOCASE", criteria.Field, criteria.Operator)
	return expression, []interface{}{criteria.Value}
}
