// Package criteria builds filter predicates from sparse criteria objects.
//
// Each queryable field of an entity is described by an optional filter
// (Filter, RangeFilter, StringFilter). A criteria object turns its non-nil
// filters into a Predicate, a conjunction of column conditions kept in field
// declaration order. The same Predicate is translated to SQL by the gorm
// store and evaluated directly by the in-memory store.
//
// # Query parameters
//
// Filters bind from query strings named <field>.<operator>=<value>:
//
//	name.contains=acme
//	level.greaterThanOrEqual=1
//	merchantTypeId.in=1,2,3
//	parentId.specified=false
//
// The legacy spellings greaterOrEqualThan and lessOrEqualThan are accepted.
package criteria
