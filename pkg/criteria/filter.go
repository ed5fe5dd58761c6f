package criteria

import "time"

// Rangeable lists the field kinds that support ordering operators.
type Rangeable interface {
	~int | ~int64 | time.Time
}

// Filter holds the operators every field kind supports.
type Filter[T any] struct {
	Equals    *T    `json:"equals,omitempty"`
	NotEquals *T    `json:"notEquals,omitempty"`
	In        []T   `json:"in,omitempty"`
	NotIn     []T   `json:"notIn,omitempty"`
	Specified *bool `json:"specified,omitempty"`
}

// On returns the conditions of the filter applied to column, in operator order.
// A nil filter yields the empty predicate.
func (f *Filter[T]) On(column string) Predicate {
	if f == nil {
		return Predicate{}
	}
	var p Predicate
	if f.Equals != nil {
		p.Conditions = append(p.Conditions, Condition{Column: column, Op: OpEquals, Value: *f.Equals})
	}
	if f.NotEquals != nil {
		p.Conditions = append(p.Conditions, Condition{Column: column, Op: OpNotEquals, Value: *f.NotEquals})
	}
	if len(f.In) > 0 {
		p.Conditions = append(p.Conditions, Condition{Column: column, Op: OpIn, Values: anySlice(f.In)})
	}
	if len(f.NotIn) > 0 {
		p.Conditions = append(p.Conditions, Condition{Column: column, Op: OpNotIn, Values: anySlice(f.NotIn)})
	}
	if f.Specified != nil {
		p.Conditions = append(p.Conditions, Condition{Column: column, Op: OpSpecified, Value: *f.Specified})
	}
	return p
}

// RangeFilter adds ordering operators to Filter.
type RangeFilter[T Rangeable] struct {
	Filter[T]
	GreaterThan        *T `json:"greaterThan,omitempty"`
	GreaterThanOrEqual *T `json:"greaterThanOrEqual,omitempty"`
	LessThan           *T `json:"lessThan,omitempty"`
	LessThanOrEqual    *T `json:"lessThanOrEqual,omitempty"`
}

func (f *RangeFilter[T]) On(column string) Predicate {
	if f == nil {
		return Predicate{}
	}
	p := f.Filter.On(column)
	bounds := []struct {
		op Op
		v  *T
	}{
		{OpGreaterThan, f.GreaterThan},
		{OpGreaterThanOrEqual, f.GreaterThanOrEqual},
		{OpLessThan, f.LessThan},
		{OpLessThanOrEqual, f.LessThanOrEqual},
	}
	for _, b := range bounds {
		if b.v != nil {
			p.Conditions = append(p.Conditions, Condition{Column: column, Op: b.op, Value: *b.v})
		}
	}
	return p
}

// StringFilter adds case-insensitive substring operators to Filter.
type StringFilter struct {
	Filter[string]
	Contains       *string `json:"contains,omitempty"`
	DoesNotContain *string `json:"doesNotContain,omitempty"`
}

func (f *StringFilter) On(column string) Predicate {
	if f == nil {
		return Predicate{}
	}
	p := f.Filter.On(column)
	if f.Contains != nil {
		p.Conditions = append(p.Conditions, Condition{Column: column, Op: OpContains, Value: *f.Contains})
	}
	if f.DoesNotContain != nil {
		p.Conditions = append(p.Conditions, Condition{Column: column, Op: OpDoesNotContain, Value: *f.DoesNotContain})
	}
	return p
}

type (
	LongFilter    = RangeFilter[int64]
	IntegerFilter = RangeFilter[int]
	InstantFilter = RangeFilter[time.Time]
)

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
