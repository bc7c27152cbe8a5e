// Package query turns client supplied conference filters into a datastore
// query. Only whitelisted fields and operators are accepted and at most one
// field may carry inequality filters.
package query

import (
	"conference-api/errors"
	"conference-api/model"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	OpEqual        = "="
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpLess         = "<"
	OpLessEqual    = "<="
	OpNotEqual     = "!="
)

// Fields maps wire field symbols to conference document fields.
var Fields = map[string]string{
	"CITY":          "city",
	"TOPIC":         "topics",
	"MONTH":         "month",
	"MAX_ATTENDEES": "max_attendees",
}

// Operators maps wire operator symbols to comparison operators.
var Operators = map[string]string{
	"EQ":   OpEqual,
	"GT":   OpGreater,
	"GTEQ": OpGreaterEqual,
	"LT":   OpLess,
	"LTEQ": OpLessEqual,
	"NE":   OpNotEqual,
}

var numericFields = map[string]bool{
	"month":         true,
	"max_attendees": true,
}

var mongoOperators = map[string]string{
	OpEqual:        "$eq",
	OpGreater:      "$gt",
	OpGreaterEqual: "$gte",
	OpLess:         "$lt",
	OpLessEqual:    "$lte",
	OpNotEqual:     "$ne",
}

type Filter struct {
	Field    string
	Operator string
	// Value is an int for numeric fields and a string otherwise.
	Value any
}

type Query struct {
	Filters         []Filter
	InequalityField string
	Order           []string
}

// Build validates filters and composes the query. Filters keep their input
// order; results are ordered by the inequality field, if any, then by name.
func Build(filters []model.ConferenceQueryForm) (Query, error) {
	q := Query{Filters: make([]Filter, 0, len(filters))}

	for _, f := range filters {
		field, fieldOk := Fields[strings.TrimSpace(f.Field)]
		operator, operatorOk := Operators[strings.TrimSpace(f.Operator)]
		if !fieldOk || !operatorOk {
			return Query{}, errors.BadRequest("Filter contains invalid field or operator.")
		}

		if operator != OpEqual {
			if q.InequalityField != "" && q.InequalityField != field {
				return Query{}, errors.BadRequest("Inequality filter is allowed on only one field.")
			}
			q.InequalityField = field
		}

		var value any = f.Value
		if numericFields[field] {
			n, err := strconv.Atoi(strings.TrimSpace(f.Value))
			if err != nil {
				return Query{}, errors.BadRequest("Filter value %q for %s must be an integer.", f.Value, f.Field)
			}
			value = n
		}

		q.Filters = append(q.Filters, Filter{Field: field, Operator: operator, Value: value})
	}

	if q.InequalityField != "" {
		q.Order = append(q.Order, q.InequalityField)
	}
	q.Order = append(q.Order, "name")

	return q, nil
}

// BSON renders the filters as a mongo query document.
func (q Query) BSON() bson.D {
	if len(q.Filters) == 0 {
		return bson.D{}
	}

	clauses := bson.A{}
	for _, f := range q.Filters {
		clauses = append(clauses, bson.D{{Key: f.Field, Value: bson.D{{Key: mongoOperators[f.Operator], Value: f.Value}}}})
	}

	return bson.D{{Key: "$and", Value: clauses}}
}

// Sort renders the ordering as a mongo sort document.
func (q Query) Sort() bson.D {
	sort := bson.D{}
	for _, field := range q.Order {
		sort = append(sort, bson.E{Key: field, Value: 1})
	}
	return sort
}
