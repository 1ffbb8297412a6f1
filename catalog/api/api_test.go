package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amaralab/sitekeeper/catalog"
	"github.com/amaralab/sitekeeper/internal/testutil"
	"github.com/amaralab/sitekeeper/session"
	authapi "github.com/amaralab/sitekeeper/session/api"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

type site struct {
	store   *catalog.Store
	tokens  *session.Tokens
	handler http.Handler
}

func newSite(ctx context.Context, t *testing.T) (*site, func()) {
	t.Helper()
	store, cleanup := testutil.AcquireWritableCatalog(ctx, t)
	if err := store.RegisterAdmin(ctx, "admin", "admin"); err != nil {
		t.Fatal(err)
	}
	tokens := session.NewTokens(session.Secret("api-test-secret"), time.Hour)
	realm := authapi.NewRealm(store, tokens, true)
	handler, err := AsHandler(ctx, store, realm)
	if err != nil {
		t.Fatal(err)
	}
	return &site{
		store:   store,
		tokens:  tokens,
		handler: realm.Protect(handler),
	}, cleanup
}

func (s *site) sessionCookie(t *testing.T) (string, string) {
	t.Helper()
	raw, err := s.tokens.Issue(1, "admin")
	if err != nil {
		t.Fatal(err)
	}
	return authapi.CookieName, raw
}

func TestPublicListing(t *testing.T) {
	ctx := context.Background()
	s, cleanup := newSite(ctx, t)
	defer cleanup()

	_, err := s.store.CreateEvent(ctx, catalog.Event{
		Title: "Lab seminar", Description: "Weekly", Date: "2024-06-01", Time: "14:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	apitest.Handler(s.handler).
		Get("/api/events").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$[0].title`, "Lab seminar")).
		End()
}

func TestListETagRevalidation(t *testing.T) {
	ctx := context.Background()
	s, cleanup := newSite(ctx, t)
	defer cleanup()

	_, err := s.store.CreateResearchArea(ctx, catalog.ResearchArea{Title: "Robotics", Description: "d"})
	if err != nil {
		t.Fatal(err)
	}

	var etag string
	apitest.Handler(s.handler).
		Get("/api/research").
		Expect(t).
		Status(http.StatusOK).
		Assert(func(res *http.Response, _ *http.Request) error {
			etag = res.Header.Get("ETag")
			if etag == "" {
				t.Fatal("collection response is missing an ETag")
			}
			return nil
		}).
		End()

	apitest.Handler(s.handler).
		Get("/api/research").
		Header("If-None-Match", etag).
		Expect(t).
		Status(http.StatusNotModified).
		End()
}

func TestAdminMutationRequiresSession(t *testing.T) {
	ctx := context.Background()
	s, cleanup := newSite(ctx, t)
	defer cleanup()

	apitest.Handler(s.handler).
		Post("/admin/api/events").
		JSON(`{"title":"x","description":"y","date":"2024-06-01","time":"10:00"}`).
		Expect(t).
		Status(http.StatusFound).
		Header("Location", authapi.LoginPath).
		End()

	events, err := s.store.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Fatal("unauthenticated mutation reached the store")
	}
}

func TestLogoutWorksWithoutSession(t *testing.T) {
	ctx := context.Background()
	s, cleanup := newSite(ctx, t)
	defer cleanup()

	apitest.Handler(s.handler).
		Post(authapi.LogoutPath).
		Expect(t).
		Status(http.StatusOK).
		Assert(func(res *http.Response, _ *http.Request) error {
			for _, c := range res.Cookies() {
				if c.Name == authapi.CookieName && c.Value == "" {
					return nil
				}
			}
			t.Fatal("logout did not set a clearing cookie")
			return nil
		}).
		End()
}

func TestAdminEventCrud(t *testing.T) {
	ctx := context.Background()
	s, cleanup := newSite(ctx, t)
	defer cleanup()
	name, value := s.sessionCookie(t)

	apitest.Handler(s.handler).
		Post("/admin/api/events").
		Cookies(apitest.NewCookie(name).Value(value)).
		JSON(`{"title":"Open day","description":"Visit the lab","date":"2024-09-01","time":"09:00"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.id`, float64(1))).
		End()

	apitest.Handler(s.handler).
		Put("/admin/api/events/1").
		Cookies(apitest.NewCookie(name).Value(value)).
		JSON(`{"title":"Open day","description":"Visit the lab","date":"2024-09-01","time":"10:00","location":"Building B"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.location`, "Building B")).
		End()

	// the public listing must reflect the mutation, not a stale cache entry
	apitest.Handler(s.handler).
		Get("/api/events").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$[0].time`, "10:00")).
		End()

	apitest.Handler(s.handler).
		Delete("/admin/api/events/1").
		Cookies(apitest.NewCookie(name).Value(value)).
		Expect(t).
		Status(http.StatusNoContent).
		End()

	apitest.Handler(s.handler).
		Get("/api/events/1").
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestCacheDroppedOnCreate(t *testing.T) {
	ctx := context.Background()
	s, cleanup := newSite(ctx, t)
	defer cleanup()
	name, value := s.sessionCookie(t)

	// prime the cache with an empty listing
	apitest.Handler(s.handler).
		Get("/api/team").
		Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()

	apitest.Handler(s.handler).
		Post("/admin/api/team").
		Cookies(apitest.NewCookie(name).Value(value)).
		JSON(`{"name":"Ana","specialization":"Optics"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.Handler(s.handler).
		Get("/api/team").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$[0].name`, "Ana")).
		End()
}

func TestDuplicateResearchAreaConflict(t *testing.T) {
	ctx := context.Background()
	s, cleanup := newSite(ctx, t)
	defer cleanup()
	name, value := s.sessionCookie(t)

	apitest.Handler(s.handler).
		Post("/admin/api/research").
		Cookies(apitest.NewCookie(name).Value(value)).
		JSON(`{"title":"Robotics","description":"d"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.Handler(s.handler).
		Post("/admin/api/research").
		Cookies(apitest.NewCookie(name).Value(value)).
		JSON(`{"title":"Robotics","description":"again"}`).
		Expect(t).
		Status(http.StatusConflict).
		End()
}

func TestInvalidRecordRejected(t *testing.T) {
	ctx := context.Background()
	s, cleanup := newSite(ctx, t)
	defer cleanup()
	name, value := s.sessionCookie(t)

	apitest.Handler(s.handler).
		Post("/admin/api/events").
		Cookies(apitest.NewCookie(name).Value(value)).
		JSON(`{"title":"x","description":"y","date":"01/06/2024","time":"10:00"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

// Full login flow against the real store: authenticate, reuse the cookie,
// read the session identity back.
func TestLoginFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	s, cleanup := newSite(ctx, t)
	defer cleanup()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, authapi.LoginPath,
		strings.NewReader(`{"username":"admin","password":"admin"}`))
	s.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %v: %v", rec.Code, rec.Body.String())
	}
	res := rec.Result()
	var cookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == authapi.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login did not set the session cookie")
	}

	apitest.Handler(s.handler).
		Get("/admin/api/session").
		Cookies(apitest.NewCookie(cookie.Name).Value(cookie.Value)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.username`, "admin")).
		End()
}
