package api

import (
	"context"
	"net/http"

	"github.com/amaralab/sitekeeper/catalog"
	"github.com/julienschmidt/httprouter"
)

func mountEvents(router *httprouter.Router, c *catalog.Store, cache *listCache) {
	const kind = "events"
	router.HandlerFunc("GET", "/api/events", listHandler(kind, cache, func(ctx context.Context) (interface{}, error) {
		return c.ListEvents(ctx)
	}))
	router.HandlerFunc("GET", "/api/events/:id", getHandler(func(ctx context.Context, id int64) (interface{}, error) {
		return c.Event(ctx, id)
	}))
	router.HandlerFunc("POST", "/admin/api/events", func(w http.ResponseWriter, r *http.Request) {
		var e catalog.Event
		if !decode(w, r, &e) {
			return
		}
		out, err := c.CreateEvent(r.Context(), e)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusCreated, out)
	})
	router.HandlerFunc("PUT", "/admin/api/events/:id", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "invalid record id"})
			return
		}
		var e catalog.Event
		if !decode(w, r, &e) {
			return
		}
		out, err := c.UpdateEvent(r.Context(), id, e)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusOK, out)
	})
	router.HandlerFunc("DELETE", "/admin/api/events/:id", deleteHandler(kind, cache, c.DeleteEvent))
}

func mountPosts(router *httprouter.Router, c *catalog.Store, cache *listCache) {
	const kind = "posts"
	router.HandlerFunc("GET", "/api/posts", listHandler(kind, cache, func(ctx context.Context) (interface{}, error) {
		return c.ListPosts(ctx)
	}))
	router.HandlerFunc("GET", "/api/posts/:id", getHandler(func(ctx context.Context, id int64) (interface{}, error) {
		return c.Post(ctx, id)
	}))
	router.HandlerFunc("POST", "/admin/api/posts", func(w http.ResponseWriter, r *http.Request) {
		var p catalog.Post
		if !decode(w, r, &p) {
			return
		}
		out, err := c.CreatePost(r.Context(), p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusCreated, out)
	})
	router.HandlerFunc("PUT", "/admin/api/posts/:id", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "invalid record id"})
			return
		}
		var p catalog.Post
		if !decode(w, r, &p) {
			return
		}
		out, err := c.UpdatePost(r.Context(), id, p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusOK, out)
	})
	router.HandlerFunc("DELETE", "/admin/api/posts/:id", deleteHandler(kind, cache, c.DeletePost))
}

func mountProjects(router *httprouter.Router, c *catalog.Store, cache *listCache) {
	const kind = "projects"
	router.HandlerFunc("GET", "/api/projects", listHandler(kind, cache, func(ctx context.Context) (interface{}, error) {
		return c.ListProjects(ctx)
	}))
	router.HandlerFunc("GET", "/api/projects/:id", getHandler(func(ctx context.Context, id int64) (interface{}, error) {
		return c.Project(ctx, id)
	}))
	router.HandlerFunc("POST", "/admin/api/projects", func(w http.ResponseWriter, r *http.Request) {
		var p catalog.Project
		if !decode(w, r, &p) {
			return
		}
		out, err := c.CreateProject(r.Context(), p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusCreated, out)
	})
	router.HandlerFunc("PUT", "/admin/api/projects/:id", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "invalid record id"})
			return
		}
		var p catalog.Project
		if !decode(w, r, &p) {
			return
		}
		out, err := c.UpdateProject(r.Context(), id, p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusOK, out)
	})
	router.HandlerFunc("DELETE", "/admin/api/projects/:id", deleteHandler(kind, cache, c.DeleteProject))
}

func mountPublications(router *httprouter.Router, c *catalog.Store, cache *listCache) {
	const kind = "publications"
	router.HandlerFunc("GET", "/api/publications", listHandler(kind, cache, func(ctx context.Context) (interface{}, error) {
		return c.ListPublications(ctx)
	}))
	router.HandlerFunc("GET", "/api/publications/:id", getHandler(func(ctx context.Context, id int64) (interface{}, error) {
		return c.Publication(ctx, id)
	}))
	router.HandlerFunc("POST", "/admin/api/publications", func(w http.ResponseWriter, r *http.Request) {
		var p catalog.Publication
		if !decode(w, r, &p) {
			return
		}
		out, err := c.CreatePublication(r.Context(), p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusCreated, out)
	})
	router.HandlerFunc("PUT", "/admin/api/publications/:id", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "invalid record id"})
			return
		}
		var p catalog.Publication
		if !decode(w, r, &p) {
			return
		}
		out, err := c.UpdatePublication(r.Context(), id, p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusOK, out)
	})
	router.HandlerFunc("DELETE", "/admin/api/publications/:id", deleteHandler(kind, cache, c.DeletePublication))
}

func mountResearch(router *httprouter.Router, c *catalog.Store, cache *listCache) {
	const kind = "research"
	router.HandlerFunc("GET", "/api/research", listHandler(kind, cache, func(ctx context.Context) (interface{}, error) {
		return c.ListResearchAreas(ctx)
	}))
	router.HandlerFunc("GET", "/api/research/:id", getHandler(func(ctx context.Context, id int64) (interface{}, error) {
		return c.ResearchArea(ctx, id)
	}))
	router.HandlerFunc("POST", "/admin/api/research", func(w http.ResponseWriter, r *http.Request) {
		var area catalog.ResearchArea
		if !decode(w, r, &area) {
			return
		}
		out, err := c.CreateResearchArea(r.Context(), area)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusCreated, out)
	})
	router.HandlerFunc("PUT", "/admin/api/research/:id", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "invalid record id"})
			return
		}
		var area catalog.ResearchArea
		if !decode(w, r, &area) {
			return
		}
		out, err := c.UpdateResearchArea(r.Context(), id, area)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusOK, out)
	})
	router.HandlerFunc("DELETE", "/admin/api/research/:id", deleteHandler(kind, cache, c.DeleteResearchArea))
}

func mountTeam(router *httprouter.Router, c *catalog.Store, cache *listCache) {
	const kind = "team"
	router.HandlerFunc("GET", "/api/team", listHandler(kind, cache, func(ctx context.Context) (interface{}, error) {
		return c.ListTeam(ctx)
	}))
	router.HandlerFunc("GET", "/api/team/:id", getHandler(func(ctx context.Context, id int64) (interface{}, error) {
		return c.TeamMember(ctx, id)
	}))
	router.HandlerFunc("POST", "/admin/api/team", func(w http.ResponseWriter, r *http.Request) {
		var m catalog.TeamMember
		if !decode(w, r, &m) {
			return
		}
		out, err := c.CreateTeamMember(r.Context(), m)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusCreated, out)
	})
	router.HandlerFunc("PUT", "/admin/api/team/:id", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "invalid record id"})
			return
		}
		var m catalog.TeamMember
		if !decode(w, r, &m) {
			return
		}
		out, err := c.UpdateTeamMember(r.Context(), id, m)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.drop(kind)
		writeJSON(w, http.StatusOK, out)
	})
	router.HandlerFunc("DELETE", "/admin/api/team/:id", deleteHandler(kind, cache, c.DeleteTeamMember))
}
