// Package dto defines the transfer objects exposed by the API and the mappers
// between them and the database models.
//
// A transfer object flattens each reference of its model into a <ref>Id and a
// <ref>Name field. ToEntity never touches a store: references become
// identity-only stubs. ToDTO copies names only from loaded references.
package dto
