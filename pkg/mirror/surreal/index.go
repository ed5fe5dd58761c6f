package surreal

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/mirror"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

// Index implements mirror.Index over one SurrealDB table.
type Index[D any] struct {
	client *Client
	table  string
}

// NewIndex creates an Index over table
func NewIndex[D any](client *Client, table string) *Index[D] {
	return &Index[D]{client: client, table: table}
}

type countRow struct {
	Total int64 `json:"total"`
}

func (ix *Index[D]) Save(ctx context.Context, id int64, doc D) error {
	text, err := mirror.Text(doc)
	if err != nil {
		return err
	}
	source, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	_, err = query[any](ctx, ix.client.db, "UPSERT type::thing($tb, $id) CONTENT $content", map[string]any{
		"tb": ix.table,
		"id": id,
		"content": map[string]any{
			"entity_id": id,
			"text":      text,
			"doc":       string(source),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %s:%d: %w", ix.table, id, err)
	}
	return nil
}

// Delete removes the record. Deleting a missing record is not an error in SurrealQL.
func (ix *Index[D]) Delete(ctx context.Context, id int64) error {
	_, err := query[any](ctx, ix.client.db, "DELETE type::thing($tb, $id)", ix.vars(id))
	if err != nil {
		return fmt.Errorf("failed to delete %s:%d: %w", ix.table, id, err)
	}
	return nil
}

func (ix *Index[D]) Exists(ctx context.Context, id int64) (bool, error) {
	ids, err := query[[]int64](ctx, ix.client.db, "SELECT VALUE entity_id FROM type::thing($tb, $id)", ix.vars(id))
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (ix *Index[D]) FindByID(ctx context.Context, id int64) (D, error) {
	var zero D
	sources, err := query[[]string](ctx, ix.client.db, "SELECT VALUE doc FROM type::thing($tb, $id)", ix.vars(id))
	if err != nil {
		return zero, err
	}
	if len(sources) == 0 {
		return zero, store.ErrNotFound
	}
	return decode[D](sources[0])
}

func (ix *Index[D]) Search(ctx context.Context, q string, page store.PageRequest) (store.Page[D], error) {
	where, vars := searchClause(mirror.Terms(q))
	vars["tb"] = ix.table

	counts, err := query[[]countRow](ctx, ix.client.db,
		"SELECT count() AS total FROM type::table($tb)"+where+" GROUP ALL", vars)
	if err != nil {
		return store.Page[D]{}, fmt.Errorf("failed to count %s: %w", ix.table, err)
	}
	var total int64
	if len(counts) > 0 {
		total = counts[0].Total
	}

	sql := "SELECT doc, entity_id FROM type::table($tb)" + where + " ORDER BY entity_id"
	if page.Paged() {
		sql += " LIMIT $limit START $start"
		vars["limit"] = page.Size
		vars["start"] = page.Offset()
	}
	rows, err := query[[]struct {
		Doc string `json:"doc"`
	}](ctx, ix.client.db, sql, vars)
	if err != nil {
		return store.Page[D]{}, fmt.Errorf("failed to search %s: %w", ix.table, err)
	}

	content := make([]D, 0, len(rows))
	for _, row := range rows {
		d, err := decode[D](row.Doc)
		if err != nil {
			return store.Page[D]{}, err
		}
		content = append(content, d)
	}
	return store.NewPage(content, total, page), nil
}

func (ix *Index[D]) IDs(ctx context.Context) ([]int64, error) {
	ids, err := query[[]int64](ctx, ix.client.db, "SELECT VALUE entity_id FROM type::table($tb)", map[string]any{"tb": ix.table})
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return ids, nil
}

func (ix *Index[D]) Ping(ctx context.Context) error {
	return ix.client.Ping(ctx)
}

func (ix *Index[D]) vars(id int64) map[string]any {
	return map[string]any{"tb": ix.table, "id": id}
}

// searchClause returns a WHERE clause requiring every term, with one bound
// variable per term.
func searchClause(terms []string) (string, map[string]any) {
	vars := map[string]any{}
	if len(terms) == 0 {
		return "", vars
	}
	tests := make([]string, len(terms))
	for i, t := range terms {
		name := fmt.Sprintf("t%d", i)
		vars[name] = t
		tests[i] = "string::contains(text, $" + name + ")"
	}
	return " WHERE " + strings.Join(tests, " AND "), vars
}

func decode[D any](source string) (D, error) {
	var d D
	if err := json.Unmarshal([]byte(source), &d); err != nil {
		return d, fmt.Errorf("decoding document: %w", err)
	}
	return d, nil
}
