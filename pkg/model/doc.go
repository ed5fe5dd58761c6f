// Package model defines the database models of the merchant domain.
//
// Every model maps to one table and references other models through a
// nullable <ref>_id column plus a pointer that is only populated when the
// reference is loaded. The FromID helpers build identity-only references.
//
// # Tables
//
//   - merchants: merchants, self-referencing through parent_id
//   - products: products sold by a merchant
//   - orders: orders of a product placed with a merchant
//   - merchant_types, merchant_statuses, product_types, product_statuses,
//     order_statuses: lookup tables sharing the Lookup shape
package model
