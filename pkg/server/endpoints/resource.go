package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/service"
)

// CountResponse is returned by the count endpoints
type CountResponse struct {
	Count int64 `json:"count"`
}

// RegisterResource registers the CRUD, count and search endpoints of one
// entity type under /api/<path> and /api/_search/<path>.
func RegisterResource[E store.Entity[E], D service.DTO[D], C service.Criteria](s *server.Server, res *service.Resource[E, D, C]) {
	r := s.Router
	base := "/api/" + res.Path
	item := base + "/{id:[0-9]+}"

	r.HandleFunc(base, handleCreate(res)).Methods("POST")
	r.HandleFunc(base, handleList(res, s.Config)).Methods("GET")
	r.HandleFunc(base+"/count", handleCount(res)).Methods("GET")
	r.HandleFunc(item, handleGet(res)).Methods("GET")
	r.HandleFunc(item, handleUpdate(res)).Methods("PUT")
	r.HandleFunc(item, handleDelete(res)).Methods("DELETE")
	r.HandleFunc("/api/_search/"+res.Path, handleSearch(res, s.Config)).Methods("GET")
}

func handleCreate[E store.Entity[E], D service.DTO[D], C service.Criteria](res *service.Resource[E, D, C]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body D
		if err := decodeBody(r, &body); err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		saved, err := res.Entities.Create(r.Context(), body)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/%s/%d", res.Path, *saved.GetID()))
		respondWithJSON(w, http.StatusCreated, saved)
	}
}

func handleUpdate[E store.Entity[E], D service.DTO[D], C service.Criteria](res *service.Resource[E, D, C]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		var body D
		if err := decodeBody(r, &body); err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		saved, err := res.Entities.Update(r.Context(), id, body)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, saved)
	}
}

func handleList[E store.Entity[E], D service.DTO[D], C service.Criteria](res *service.Resource[E, D, C], cfg *config.MerchantConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		c, err := res.ParseCriteria(q)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		page, err := parsePageRequest(q, res.SortColumns, cfg)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		p, err := res.Queries.FindPageByCriteria(r.Context(), c, page)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		writePageHeaders(w, r, p)
		respondWithJSON(w, http.StatusOK, p.Content)
	}
}

func handleCount[E store.Entity[E], D service.DTO[D], C service.Criteria](res *service.Resource[E, D, C]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := res.ParseCriteria(r.URL.Query())
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		n, err := res.Queries.CountByCriteria(r.Context(), c)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, CountResponse{Count: n})
	}
}

func handleGet[E store.Entity[E], D service.DTO[D], C service.Criteria](res *service.Resource[E, D, C]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		d, err := res.Entities.FindOne(r.Context(), id)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, d)
	}
}

func handleDelete[E store.Entity[E], D service.DTO[D], C service.Criteria](res *service.Resource[E, D, C]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		if err := res.Entities.Delete(r.Context(), id); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSearch[E store.Entity[E], D service.DTO[D], C service.Criteria](res *service.Resource[E, D, C], cfg *config.MerchantConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, err := parsePageRequest(q, nil, cfg)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		p, err := res.Entities.Search(r.Context(), q.Get("query"), page)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		writePageHeaders(w, r, p)
		respondWithJSON(w, http.StatusOK, p.Content)
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", service.ErrInvalidID, err)
	}
	return id, nil
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}
