package service

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

// DefaultReindexBatch is the page size used to walk the primary store.
const DefaultReindexBatch = 500

// ReindexStats reports the outcome of a Reindex run.
type ReindexStats struct {
	Entity  string
	Indexed int
	Removed int
	Failed  int
}

// Reindexer is implemented by every EntityService.
type Reindexer interface {
	Name() string
	Reindex(ctx context.Context, batch int) (ReindexStats, error)
}

// Reindex copies every primary row into the mirror, then removes mirror
// documents whose identity is gone from the primary store. Individual mirror
// failures are counted and logged; primary store failures abort the run.
func (s *EntityService[E, D]) Reindex(ctx context.Context, batch int) (ReindexStats, error) {
	if batch <= 0 {
		batch = DefaultReindexBatch
	}
	stats := ReindexStats{Entity: s.name}
	live := map[int64]struct{}{}

	for page := 0; ; page++ {
		p, err := s.repo.FindAll(ctx, store.PageRequest{Page: page, Size: batch})
		if err != nil {
			return stats, fmt.Errorf("reading %s page %d: %w", s.name, page, err)
		}
		for _, e := range p.Content {
			id := e.GetID()
			live[id] = struct{}{}
			if err := s.index.Save(ctx, id, s.mapper.ToDTO(e)); err != nil {
				stats.Failed++
				s.log.Warn().Err(err).Int64("id", id).Str("op", "reindex").Msg("mirror write failed")
				continue
			}
			stats.Indexed++
		}
		if len(p.Content) < batch {
			break
		}
	}

	ids, err := s.index.IDs(ctx)
	if err != nil {
		return stats, fmt.Errorf("listing mirrored %s: %w", s.name, err)
	}
	for _, id := range ids {
		if _, ok := live[id]; ok {
			continue
		}
		if err := s.index.Delete(ctx, id); err != nil {
			stats.Failed++
			s.log.Warn().Err(err).Int64("id", id).Str("op", "reindex").Msg("mirror delete failed")
			continue
		}
		stats.Removed++
	}

	s.log.Info().Int("indexed", stats.Indexed).Int("removed", stats.Removed).Int("failed", stats.Failed).Msg("reindexed")
	return stats, nil
}
