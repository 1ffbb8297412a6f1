// Package api exposes the catalog as the website's HTTP surface: public
// read endpoints under /api and admin mutations under /admin/api. The
// admin routes rely on the caller wrapping the handler with the session
// realm's Protect; mounting them under the protected prefix is what puts
// them behind the gate.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/amaralab/sitekeeper/catalog"
	"github.com/amaralab/sitekeeper/internal/logutil"
	authapi "github.com/amaralab/sitekeeper/session/api"
	"github.com/julienschmidt/httprouter"
)

type messageBody struct {
	Message string `json:"message"`
}

// AsHandler builds the full site router: record endpoints for each of the
// six kinds plus the realm's login/logout/session endpoints. The returned
// handler must still be wrapped with realm.Protect before serving.
func AsHandler(ctx context.Context, c *catalog.Store, realm *authapi.Realm) (http.Handler, error) {
	cache, err := newListCache(ctx)
	if err != nil {
		return nil, err
	}
	router := httprouter.New()

	router.HandlerFunc("GET", authapi.LoginPath, realm.LoginPageHandler())
	router.HandlerFunc("POST", authapi.LoginPath, realm.LoginHandler())
	router.HandlerFunc("POST", authapi.LogoutPath, realm.LogoutHandler())
	router.HandlerFunc("GET", "/admin/api/session", realm.SessionInfoHandler())

	mountEvents(router, c, cache)
	mountPosts(router, c, cache)
	mountProjects(router, c, cache)
	mountPublications(router, c, cache)
	mountResearch(router, c, cache)
	mountTeam(router, c, cache)
	return router, nil
}

func pathID(r *http.Request) (int64, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody{Message: "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps catalog errors to HTTP status codes. Anything that is
// not a known catalog error is an operational failure: it gets logged in
// full and answered with a generic body so internals never leak to the
// public site.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalid  catalog.InvalidRecord
		notFound catalog.RecordNotFound
		dup      catalog.DuplicateRecord
	)
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, messageBody{Message: invalid.Reason})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, messageBody{Message: notFound.Error()})
	case errors.As(err, &dup):
		writeJSON(w, http.StatusConflict, messageBody{Message: dup.Error()})
	default:
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Catalog operation failed")
		writeJSON(w, http.StatusInternalServerError, messageBody{Message: "unable to process request"})
	}
}

// listHandler serves a cached collection response with an ETag derived
// from the body, honoring If-None-Match.
func listHandler(kind string, cache *listCache, fetch func(context.Context) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := cache.get(kind)
		if !ok {
			records, err := fetch(r.Context())
			if err != nil {
				writeError(w, r, err)
				return
			}
			body, err = json.Marshal(records)
			if err != nil {
				writeError(w, r, err)
				return
			}
			cache.put(kind, body)
		}
		etag := etagFor(body)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

// getHandler serves a single record by path id.
func getHandler(fetch func(context.Context, int64) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "invalid record id"})
			return
		}
		record, err := fetch(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// deleteHandler removes a record by path id and drops the list cache for
// its kind.
func deleteHandler(kind string, cache *listCache, remove func(context.Context, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "invalid record id"})
			return
		}
		if err := remove(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		w.WriteHeader(http.StatusNoContent)
	}
}
