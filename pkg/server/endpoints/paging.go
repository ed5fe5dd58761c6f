package endpoints

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
)

// parsePageRequest reads page, size and sort=field[,asc|desc] (repeatable).
// Sort fields are the DTO field names listed in columns.
func parsePageRequest(q url.Values, columns map[string]string, cfg *config.MerchantConfig) (store.PageRequest, error) {
	var req store.PageRequest

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return req, fmt.Errorf("%w: page must be a non-negative integer", criteria.ErrInvalidCriteria)
		}
		req.Page = page
	}

	size := 0
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return req, fmt.Errorf("%w: size must be a non-negative integer", criteria.ErrInvalidCriteria)
		}
		size = n
	}
	req.Size = cfg.PageSize(size)
	if req.Size > 0 && req.Page > math.MaxInt/req.Size {
		return req, fmt.Errorf("%w: page %d is out of range", criteria.ErrInvalidCriteria, req.Page)
	}

	for _, s := range q["sort"] {
		field, dir, _ := strings.Cut(s, ",")
		column, ok := columns[field]
		if !ok {
			return req, fmt.Errorf("%w: cannot sort by %q", criteria.ErrInvalidCriteria, field)
		}
		order := store.Order{Column: column}
		switch strings.ToLower(dir) {
		case "", "asc":
		case "desc":
			order.Descending = true
		default:
			return req, fmt.Errorf("%w: sort direction %q", criteria.ErrInvalidCriteria, dir)
		}
		req.Sort = append(req.Sort, order)
	}
	return req, nil
}

// writePageHeaders sets X-Total-Count and an RFC 5988 Link header with
// first, prev, next and last relations.
func writePageHeaders[T any](w http.ResponseWriter, r *http.Request, p store.Page[T]) {
	w.Header().Set("X-Total-Count", strconv.FormatInt(p.Total, 10))

	last := p.TotalPages() - 1
	if last < 0 {
		last = 0
	}
	var links []string
	link := func(page int, rel string) {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("size", strconv.Itoa(p.Size))
		links = append(links, fmt.Sprintf(`<%s?%s>; rel="%s"`, r.URL.Path, q.Encode(), rel))
	}
	if p.Number < last {
		link(p.Number+1, "next")
	}
	if p.Number > 0 {
		link(p.Number-1, "prev")
	}
	link(last, "last")
	link(0, "first")
	w.Header().Set("Link", strings.Join(links, ","))
}
