// Package gorm provides the PostgreSQL primary store on top of GORM.
//
// Repository implements store.Repository for any model of pkg/model.
// Criteria predicates become clause expressions (see Expression), so the
// filtered list and the count of one request run the same WHERE clause.
//
// The database handle should be opened with TranslateError enabled so that
// foreign key violations surface as store.ErrInvalidReference on writes and
// store.ErrReferenced on deletes.
package gorm
