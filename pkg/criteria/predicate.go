package criteria

import (
	"strings"
	"time"
)

// Condition is a single column test. Value carries the operand of single-valued
// operators (a bool for OpSpecified), Values the operands of OpIn and OpNotIn.
type Condition struct {
	Column string
	Op     Op
	Value  any
	Values []any
}

// Predicate is a conjunction of conditions. The zero Predicate matches every row.
type Predicate struct {
	Conditions []Condition
}

// And joins predicates, keeping the order of their conditions.
func And(preds ...Predicate) Predicate {
	var out Predicate
	for _, p := range preds {
		out.Conditions = append(out.Conditions, p.Conditions...)
	}
	return out
}

// Where builds a one-condition predicate.
func Where(column string, op Op, value any) Predicate {
	return Predicate{Conditions: []Condition{{Column: column, Op: op, Value: value}}}
}

// IsEmpty reports whether the predicate has no conditions.
func (p Predicate) IsEmpty() bool {
	return len(p.Conditions) == 0
}

// Match evaluates the predicate against a row given as column values.
// Comparisons involving NULL are false, as in SQL, except for OpSpecified.
func (p Predicate) Match(row map[string]any) bool {
	for _, c := range p.Conditions {
		if !c.Match(row[c.Column]) {
			return false
		}
	}
	return true
}

// Match evaluates the condition against a single column value.
func (c Condition) Match(raw any) bool {
	v := Normalize(raw)
	if c.Op == OpSpecified {
		want, _ := c.Value.(bool)
		return (v != nil) == want
	}
	if v == nil {
		return false
	}

	switch c.Op {
	case OpEquals:
		return equal(v, c.Value)
	case OpNotEquals:
		return !equal(v, c.Value)
	case OpIn:
		return in(v, c.Values)
	case OpNotIn:
		return !in(v, c.Values)
	case OpGreaterThan:
		n, ok := Compare(v, c.Value)
		return ok && n > 0
	case OpGreaterThanOrEqual:
		n, ok := Compare(v, c.Value)
		return ok && n >= 0
	case OpLessThan:
		n, ok := Compare(v, c.Value)
		return ok && n < 0
	case OpLessThanOrEqual:
		n, ok := Compare(v, c.Value)
		return ok && n <= 0
	case OpContains, OpDoesNotContain:
		s, ok := v.(string)
		needle, nok := Normalize(c.Value).(string)
		if !ok || !nok {
			return false
		}
		found := strings.Contains(strings.ToUpper(s), strings.ToUpper(needle))
		return found == (c.Op == OpContains)
	}
	return false
}

func equal(a, b any) bool {
	n, ok := Compare(a, b)
	return ok && n == 0
}

func in(v any, values []any) bool {
	for _, x := range values {
		if equal(v, x) {
			return true
		}
	}
	return false
}

// Normalize dereferences pointers and widens integers to int64 so that values
// coming from entities and from filters compare directly. Nil pointers become nil.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *int:
		if x == nil {
			return nil
		}
		return int64(*x)
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	case *bool:
		if x == nil {
			return nil
		}
		return *x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	}
	return v
}

// Compare orders two values of the same kind. The second result is false when
// either value is nil or the kinds differ.
func Compare(a, b any) (int, bool) {
	a, b = Normalize(a), Normalize(b)
	switch x := a.(type) {
	case int64:
		y, ok := b.(int64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}
