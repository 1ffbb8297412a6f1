package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/amaralab/sitekeeper/catalog"
	"github.com/amaralab/sitekeeper/internal/testutil"
	"github.com/amaralab/sitekeeper/session"
	"github.com/stretchr/testify/require"
)

func TestEventLifecycle(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireWritableCatalog(ctx, t)
	defer cleanup()

	created, err := store.CreateEvent(ctx, catalog.Event{
		Title:       "Lab seminar",
		Description: "Weekly seminar",
		Date:        "2024-06-01",
		Time:        "14:00",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	loaded, err := store.Event(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, loaded)

	created.Location = "Room 101"
	updated, err := store.UpdateEvent(ctx, created.ID, created)
	require.NoError(t, err)
	require.Equal(t, "Room 101", updated.Location)

	require.NoError(t, store.DeleteEvent(ctx, created.ID))
	_, err = store.Event(ctx, created.ID)
	require.ErrorAs(t, err, &catalog.RecordNotFound{})
}

func TestEventValidation(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireWritableCatalog(ctx, t)
	defer cleanup()

	cases := []catalog.Event{
		{Description: "no title", Date: "2024-06-01", Time: "14:00"},
		{Title: "bad date", Description: "x", Date: "01/06/2024", Time: "14:00"},
		{Title: "bad time", Description: "x", Date: "2024-06-01", Time: "2pm"},
	}
	for _, e := range cases {
		_, err := store.CreateEvent(ctx, e)
		require.ErrorAs(t, err, &catalog.InvalidRecord{}, "event %+v", e)
	}
}

func TestEventsOrderedByDate(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireWritableCatalog(ctx, t)
	defer cleanup()

	for _, date := range []string{"2024-07-01", "2024-05-01", "2024-06-01"} {
		_, err := store.CreateEvent(ctx, catalog.Event{
			Title: "event " + date, Description: "x", Date: date, Time: "10:00",
		})
		require.NoError(t, err)
	}
	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, "2024-05-01", events[0].Date)
	require.Equal(t, "2024-07-01", events[2].Date)
}

func TestPostValidation(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireWritableCatalog(ctx, t)
	defer cleanup()

	longTitle := make([]byte, 201)
	for i := range longTitle {
		longTitle[i] = 'a'
	}
	_, err := store.CreatePost(ctx, catalog.Post{
		Title: string(longTitle), Summary: "s", Content: "c", Author: "a", Date: "2024-06-01",
	})
	require.ErrorAs(t, err, &catalog.InvalidRecord{})

	post, err := store.CreatePost(ctx, catalog.Post{
		Title: "hello", Summary: "s", Content: "c", Author: "a", Date: "2024-06-01",
	})
	require.NoError(t, err)
	require.NotZero(t, post.ID)
}

func TestProjectStatusAndDates(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireWritableCatalog(ctx, t)
	defer cleanup()

	_, err := store.CreateProject(ctx, catalog.Project{
		Title: "p", Description: "d", Status: "abandoned", StartDate: "2024-01-01",
	})
	require.ErrorAs(t, err, &catalog.InvalidRecord{})

	_, err = store.CreateProject(ctx, catalog.Project{
		Title: "p", Description: "d", Status: catalog.ProjectOngoing,
		StartDate: "2024-01-01", EndDate: "2023-12-31",
	})
	require.ErrorAs(t, err, &catalog.InvalidRecord{})

	project, err := store.CreateProject(ctx, catalog.Project{
		Title: "p", Description: "d", Status: catalog.ProjectOngoing,
		StartDate: "2024-01-01", EndDate: "2024-12-31",
	})
	require.NoError(t, err)
	require.NotZero(t, project.ID)
}

func TestPublicationValidation(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireWritableCatalog(ctx, t)
	defer cleanup()

	_, err := store.CreatePublication(ctx, catalog.Publication{
		Title: "t", Authors: "a", Journal: "j", Year: 1800,
	})
	require.ErrorAs(t, err, &catalog.InvalidRecord{})

	_, err = store.CreatePublication(ctx, catalog.Publication{
		Title: "t", Authors: "a", Journal: "j", Year: time.Now().Year() + 2,
	})
	require.ErrorAs(t, err, &catalog.InvalidRecord{})

	_, err = store.CreatePublication(ctx, catalog.Publication{
		Title: "t", Authors: "a", Journal: "j", Year: 2024, DOI: "doi:not-valid",
	})
	require.ErrorAs(t, err, &catalog.InvalidRecord{})

	pub, err := store.CreatePublication(ctx, catalog.Publication{
		Title: "t", Authors: "a", Journal: "j", Year: 2024, DOI: "10.1234/example.paper",
	})
	require.NoError(t, err)
	require.NotZero(t, pub.ID)
}

func TestResearchAreaTitleUnique(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireWritableCatalog(ctx, t)
	defer cleanup()

	first, err := store.CreateResearchArea(ctx, catalog.ResearchArea{Title: "Robotics", Description: "d"})
	require.NoError(t, err)

	_, err = store.CreateResearchArea(ctx, catalog.ResearchArea{Title: "Robotics", Description: "other"})
	require.ErrorAs(t, err, &catalog.DuplicateRecord{})

	// updating an area with its own title must not trip the check
	_, err = store.UpdateResearchArea(ctx, first.ID, catalog.ResearchArea{Title: "Robotics", Description: "new"})
	require.NoError(t, err)
}

func TestTeamMemberRules(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireWritableCatalog(ctx, t)
	defer cleanup()

	_, err := store.CreateTeamMember(ctx, catalog.TeamMember{
		Name: "Ana", Specialization: "Optics", Linkedin: "https://example.com/ana",
	})
	require.ErrorAs(t, err, &catalog.InvalidRecord{})

	_, err = store.CreateTeamMember(ctx, catalog.TeamMember{
		Name: "Ana", Specialization: "Optics", Linkedin: "https://linkedin.com/in/ana",
	})
	require.NoError(t, err)

	_, err = store.CreateTeamMember(ctx, catalog.TeamMember{Name: "Ana", Specialization: "Other"})
	require.ErrorAs(t, err, &catalog.DuplicateRecord{})
}

func TestAdminCredentials(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireWritableCatalog(ctx, t)
	defer cleanup()

	require.NoError(t, store.RegisterAdmin(ctx, "admin", "admin"))

	cred, found, err := store.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, session.VerifyPassword("admin", cred.PasswordHash))
	require.False(t, session.VerifyPassword("wrong", cred.PasswordHash))

	_, found, err = store.FindByUsername(ctx, "ghost")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.RemoveAdmin(ctx, "admin"))
	_, found, err = store.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.False(t, found)
}

func TestReadOnlyCatalogRejectsWrites(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireReadOnlyCatalog(ctx, t, func(ctx context.Context, s *catalog.Store) error {
		_, err := s.CreateResearchArea(ctx, catalog.ResearchArea{Title: "Robotics", Description: "d"})
		return err
	})
	defer cleanup()

	areas, err := store.ListResearchAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 1)

	_, err = store.CreateResearchArea(ctx, catalog.ResearchArea{Title: "Optics", Description: "d"})
	require.ErrorAs(t, err, &catalog.ReadOnlyStore{})
}
