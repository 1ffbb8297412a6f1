package testutil

import (
	"context"
	"os"

	"github.com/amaralab/sitekeeper/catalog"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireWritableCatalog opens a throwaway catalog in a temp directory
// and returns it along with a cleanup function.
func AcquireWritableCatalog(ctx context.Context, t TestLog) (*catalog.Store, func()) {
	dir, err := os.MkdirTemp("", "sitekeeper-tests")
	if err != nil {
		t.Fatal(err)
	}
	store, err := catalog.Open(ctx, dir, true)
	if err != nil {
		t.Fatal(err)
	}
	return store, func() {
		if err := store.Close(); err != nil {
			t.Log("unable to close catalog", err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}

// AcquireReadOnlyCatalog populates a catalog via loader, then re-opens it
// read-only, the way the public serving path sees it.
func AcquireReadOnlyCatalog(ctx context.Context, t TestLog, loader func(context.Context, *catalog.Store) error) (*catalog.Store, func()) {
	dir, err := os.MkdirTemp("", "sitekeeper-tests")
	if err != nil {
		t.Fatal(err)
	}
	store, err := catalog.Open(ctx, dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if loader != nil {
		if err := loader(ctx, store); err != nil {
			t.Fatal(err)
		}
	}
	store.Close()
	store, err = catalog.Open(ctx, dir, false)
	if err != nil {
		t.Fatal(err)
	}
	return store, func() {
		if err := store.Close(); err != nil {
			t.Log("unable to close catalog", err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}
