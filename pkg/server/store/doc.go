// Package store defines the primary store abstraction shared by every entity.
//
// Repository is generic over the entity type. Two implementations exist:
// store/gorm for PostgreSQL and store/memory for tests and database-less runs.
// Filtering uses criteria.Predicate so that both implementations agree on
// SQL NULL semantics.
//
// # Usage
//
//	repo := gorm.NewRepository[model.Merchant](db)
//	page, err := repo.FindBy(ctx, predicate, store.PageRequest{Page: 0, Size: 20})
//	if err != nil {
//	    return err
//	}
//	for _, m := range page.Content {
//	    ...
//	}
package store
