package task

import (
	"time"

	"github.com/google/uuid"
)

// SortField names a sortable task column.
type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortUpdatedAt SortField = "updatedAt"
	SortTitle     SortField = "title"
)

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Predicate is one typed filter node. Storage implementations switch on the
// concrete variants; there is no dynamic field-name-to-value map, so a
// predicate can never reference a column the storage does not know.
type Predicate interface {
	isPredicate()
}

// OwnerIs restricts rows to a single owner. Present in every query the
// service builds.
type OwnerIs struct {
	ID uuid.UUID
}

// CompletedIs restricts rows by completion state.
type CompletedIs struct {
	Value bool
}

// MatchesSearch restricts rows to those whose title or description contains
// the term, case-insensitively.
type MatchesSearch struct {
	Term string
}

// CursorBefore keeps rows strictly before the value on a timestamp field.
// Used when paging in descending order.
type CursorBefore struct {
	Field SortField
	Value time.Time
}

// CursorAfter keeps rows strictly after the value on a timestamp field.
// Used when paging in ascending order.
type CursorAfter struct {
	Field SortField
	Value time.Time
}

func (OwnerIs) isPredicate()       {}
func (CompletedIs) isPredicate()   {}
func (MatchesSearch) isPredicate() {}
func (CursorBefore) isPredicate()  {}
func (CursorAfter) isPredicate()   {}
