package javadex

import (
	"context"
	"time"
)

// Index represents a stored member-search index.
type Index struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SourceURL   string    `json:"sourceUrl"` // Documentation root that page paths resolve against
	ContentHash string    `json:"contentHash"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`

	// Layout of the imported script, reused when the index is written back.
	Layout ScriptLayout `json:"layout"`
}

// ScriptLayout records how a member-search-index.js file was written so it
// can be reproduced byte for byte. The zero value means the index was not
// imported from a script.
type ScriptLayout struct {
	Var      string `json:"var,omitempty"`      // Global variable name
	Declared bool   `json:"declared,omitempty"` // Assignment starts with "var "
	URLKey   string `json:"urlKey,omitempty"`   // "url" or "u"
	Trailer  string `json:"trailer,omitempty"`  // Statement after the array
}

// Validate returns an error if the index contains invalid fields.
func (i *Index) Validate() error {
	if i.Name == "" {
		return Errorf(EINVALID, "index name required")
	}
	return nil
}

// IndexService represents a service for managing stored indexes.
type IndexService interface {
	// CreateIndex stores an index together with its members.
	// Returns ECONFLICT if an index with the same name exists.
	CreateIndex(ctx context.Context, idx *Index, members []*Member) error

	// ReplaceIndex deletes the index with the given id and stores idx in its
	// place in one transaction. On error the old index is left untouched.
	// Returns ENOTFOUND if id does not exist.
	ReplaceIndex(ctx context.Context, id string, idx *Index, members []*Member) error

	// FindIndexByID retrieves an index by ID.
	// Returns ENOTFOUND if index does not exist.
	FindIndexByID(ctx context.Context, id string) (*Index, error)

	// FindIndexByName retrieves an index by name.
	// Returns ENOTFOUND if index does not exist.
	FindIndexByName(ctx context.Context, name string) (*Index, error)

	// FindIndexes retrieves indexes matching the filter, newest first.
	FindIndexes(ctx context.Context, filter IndexFilter) ([]*Index, error)

	// DeleteIndex permanently removes an index and all of its members.
	// Returns ENOTFOUND if index does not exist.
	DeleteIndex(ctx context.Context, id string) error
}

// IndexFilter represents a filter for FindIndexes.
type IndexFilter struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
