package catalog

import "fmt"

type (
	// InvalidRecord rejects a record that failed validation before it
	// ever touched the database.
	InvalidRecord struct {
		Reason string
	}

	// RecordNotFound indicates the requested row does not exist.
	RecordNotFound struct {
		Kind string
		ID   int64
	}

	// DuplicateRecord indicates a uniqueness rule was violated.
	DuplicateRecord struct {
		Kind  string
		Field string
	}

	// ReadOnlyStore rejects mutations on a catalog opened read-only.
	ReadOnlyStore struct{}
)

func (i InvalidRecord) Error() string {
	return i.Reason
}

func (r RecordNotFound) Error() string {
	return fmt.Sprintf("%v %v not found", r.Kind, r.ID)
}

func (d DuplicateRecord) Error() string {
	return fmt.Sprintf("a %v with the same %v already exists", d.Kind, d.Field)
}

func (ReadOnlyStore) Error() string {
	return "catalog is open in read-only mode"
}
