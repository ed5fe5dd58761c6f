package criteria

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidCriteria is returned when a query parameter cannot be bound to a filter.
var ErrInvalidCriteria = errors.New("invalid criteria")

// Parser binds query parameters of the form <field>.<operator>=<value> to filters.
// Errors are collected and reported by Err so that a criteria struct can be
// filled field by field.
type Parser struct {
	values url.Values
	errs   []error
}

// NewParser creates a Parser over the given query parameters.
func NewParser(values url.Values) *Parser {
	return &Parser{values: values}
}

// Err returns every binding error, wrapped in ErrInvalidCriteria.
func (p *Parser) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCriteria, errors.Join(p.errs...))
}

// params returns the operator/value pairs given for field.
func (p *Parser) params(field string) map[Op]string {
	var out map[Op]string
	prefix := field + "."
	for key, vals := range p.values {
		if !strings.HasPrefix(key, prefix) || len(vals) == 0 {
			continue
		}
		op, err := ParseOp(strings.TrimPrefix(key, prefix))
		if err != nil {
			p.errs = append(p.errs, fmt.Errorf("%s: unknown operator", key))
			continue
		}
		if out == nil {
			out = map[Op]string{}
		}
		out[op] = vals[len(vals)-1]
	}
	return out
}

// String binds a string field.
func (p *Parser) String(field string) *StringFilter {
	params := p.params(field)
	if params == nil {
		return nil
	}
	f := &StringFilter{}
	for op, raw := range params {
		switch op {
		case OpContains:
			f.Contains = &raw
		case OpDoesNotContain:
			f.DoesNotContain = &raw
		default:
			if op.Ranged() {
				p.errs = append(p.errs, fmt.Errorf("%s.%s: not supported on text", field, op))
				continue
			}
			bindFilter(p, field, op, raw, &f.Filter, func(s string) (string, error) { return s, nil })
		}
	}
	return f
}

// Long binds an int64 field, including identities and references.
func (p *Parser) Long(field string) *LongFilter {
	return bindRange(p, field, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// Int binds an int field.
func (p *Parser) Int(field string) *IntegerFilter {
	return bindRange(p, field, strconv.Atoi)
}

// Instant binds a timestamp field given in RFC 3339.
func (p *Parser) Instant(field string) *InstantFilter {
	return bindRange(p, field, func(s string) (time.Time, error) {
		return time.Parse(time.RFC3339, s)
	})
}

func bindRange[T Rangeable](p *Parser, field string, parse func(string) (T, error)) *RangeFilter[T] {
	params := p.params(field)
	if params == nil {
		return nil
	}
	f := &RangeFilter[T]{}
	for op, raw := range params {
		if op.Textual() {
			p.errs = append(p.errs, fmt.Errorf("%s.%s: only supported on text", field, op))
			continue
		}
		if !op.Ranged() {
			bindFilter(p, field, op, raw, &f.Filter, parse)
			continue
		}
		v, err := parse(raw)
		if err != nil {
			p.errs = append(p.errs, fmt.Errorf("%s.%s: %w", field, op, err))
			continue
		}
		switch op {
		case OpGreaterThan:
			f.GreaterThan = &v
		case OpGreaterThanOrEqual:
			f.GreaterThanOrEqual = &v
		case OpLessThan:
			f.LessThan = &v
		case OpLessThanOrEqual:
			f.LessThanOrEqual = &v
		}
	}
	return f
}

func bindFilter[T any](p *Parser, field string, op Op, raw string, f *Filter[T], parse func(string) (T, error)) {
	if op == OpSpecified {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			p.errs = append(p.errs, fmt.Errorf("%s.%s: %w", field, op, err))
			return
		}
		f.Specified = &b
		return
	}

	if op.Multi() {
		var list []T
		for _, part := range strings.Split(raw, ",") {
			v, err := parse(strings.TrimSpace(part))
			if err != nil {
				p.errs = append(p.errs, fmt.Errorf("%s.%s: %w", field, op, err))
				return
			}
			list = append(list, v)
		}
		if op == OpIn {
			f.In = list
		} else {
			f.NotIn = list
		}
		return
	}

	v, err := parse(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s.%s: %w", field, op, err))
		return
	}
	switch op {
	case OpEquals:
		f.Equals = &v
	case OpNotEquals:
		f.NotEquals = &v
	}
}
