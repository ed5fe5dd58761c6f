// Package memory provides an in-process primary store. It evaluates criteria
// predicates with criteria.Predicate.Match and sorts with criteria.Compare,
// so it answers the same queries as the GORM store.
package memory
