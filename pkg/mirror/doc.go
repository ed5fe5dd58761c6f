// Package mirror defines the secondary search index that receives a copy of
// every saved transfer object.
//
// Documents are searched with a free-text query: the query is split on
// whitespace and a document matches when every term occurs, ignoring case,
// in the concatenation of its field values. An empty query or "*" matches
// every document. Results are ordered by entity identity.
//
// Implementations live in mirror/memory and mirror/surreal. Nop drops writes.
package mirror
