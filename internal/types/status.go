package types

// Status is a type for the row status of a persisted resource in the database.
// This tracks the lifecycle of a row and decides if it is included in queries;
// it is independent of domain statuses like the contract lifecycle status.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
