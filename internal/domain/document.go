package domain

// Collection names in the remote document store.
const (
	CollectionScholarship = "scholarship"
	CollectionMentors     = "mentors"
	CollectionResources   = "resources"
)

// Document is a raw record from the remote store: a store-assigned
// identifier plus a loosely-typed body. Field values may be strings,
// numbers, booleans, string lists, or absent entirely.
type Document struct {
	ID     string
	Fields map[string]any
}
