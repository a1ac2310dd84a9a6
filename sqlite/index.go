package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/javadex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ javadex.IndexService = (*IndexService)(nil)

// IndexService implements javadex.IndexService using SQLite.
type IndexService struct {
	db *DB
}

// NewIndexService creates a new IndexService.
func NewIndexService(db *DB) *IndexService {
	return &IndexService{db: db}
}

// CreateIndex stores an index and its members in a single transaction.
func (s *IndexService) CreateIndex(ctx context.Context, idx *javadex.Index, members []*javadex.Member) error {
	if err := validateIndex(idx, members); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertIndex(ctx, tx, idx, members); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceIndex deletes the index with the given id and stores idx in the
// same transaction, so a failed insert keeps the old index.
func (s *IndexService) ReplaceIndex(ctx context.Context, id string, idx *javadex.Index, members []*javadex.Member) error {
	if err := validateIndex(idx, members); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, "DELETE FROM indexes WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return javadex.Errorf(javadex.ENOTFOUND, "index not found")
	}

	if err := insertIndex(ctx, tx, idx, members); err != nil {
		return err
	}
	return tx.Commit()
}

func validateIndex(idx *javadex.Index, members []*javadex.Member) error {
	if err := idx.Validate(); err != nil {
		return err
	}
	for i, m := range members {
		if err := m.Validate(); err != nil {
			return javadex.Errorf(javadex.EINVALID, "member #%d: %s", i, javadex.ErrorMessage(err))
		}
	}
	return nil
}

// insertIndex writes idx and its members inside tx, filling in the ID,
// timestamp, hash and count.
func insertIndex(ctx context.Context, tx *sql.Tx, idx *javadex.Index, members []*javadex.Member) error {
	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM indexes WHERE name = ?", idx.Name).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return javadex.Errorf(javadex.ECONFLICT, "index %q already exists", idx.Name)
	}

	idx.ID = uuid.New().String()
	idx.CreatedAt = time.Now().UTC()
	idx.ContentHash = HashMembers(members)
	idx.MemberCount = len(members)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO indexes (id, name, source_url, content_hash, member_count, created_at,
			script_var, script_declared, url_key, trailer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, idx.ID, idx.Name, idx.SourceURL, idx.ContentHash, idx.MemberCount,
		idx.CreatedAt.Format(time.RFC3339),
		idx.Layout.Var, idx.Layout.Declared, idx.Layout.URLKey, idx.Layout.Trailer); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO members (index_id, position, module, package, class, label, url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range members {
		if _, err := stmt.ExecContext(ctx, idx.ID, i, m.Module, m.Package, m.Class, m.Label, m.URL); err != nil {
			return err
		}
	}
	return nil
}

const selectIndex = `SELECT id, name, source_url, content_hash, member_count, created_at,
	script_var, script_declared, url_key, trailer FROM indexes`

type scanner interface {
	Scan(dest ...any) error
}

func scanIndex(row scanner) (*javadex.Index, error) {
	var idx javadex.Index
	var createdAt string
	if err := row.Scan(&idx.ID, &idx.Name, &idx.SourceURL, &idx.ContentHash, &idx.MemberCount, &createdAt,
		&idx.Layout.Var, &idx.Layout.Declared, &idx.Layout.URLKey, &idx.Layout.Trailer); err != nil {
		return nil, err
	}

	var err error
	idx.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &idx, nil
}

// FindIndexByID retrieves an index by ID.
func (s *IndexService) FindIndexByID(ctx context.Context, id string) (*javadex.Index, error) {
	return s.findOne(ctx, selectIndex+" WHERE id = ?", id)
}

// FindIndexByName retrieves an index by name.
func (s *IndexService) FindIndexByName(ctx context.Context, name string) (*javadex.Index, error) {
	idx, err := s.findOne(ctx, selectIndex+" WHERE name = ?", name)
	if javadex.ErrorCode(err) == javadex.ENOTFOUND {
		return nil, javadex.Errorf(javadex.ENOTFOUND, "index %q not found", name)
	}
	return idx, err
}

func (s *IndexService) findOne(ctx context.Context, query string, arg string) (*javadex.Index, error) {
	idx, err := scanIndex(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, javadex.Errorf(javadex.ENOTFOUND, "index not found")
	}
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// FindIndexes retrieves indexes matching the filter.
func (s *IndexService) FindIndexes(ctx context.Context, filter javadex.IndexFilter) ([]*javadex.Index, error) {
	var query strings.Builder
	var args []any

	query.WriteString(selectIndex + " WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	indexes := []*javadex.Index{}
	for rows.Next() {
		idx, err := scanIndex(rows)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}

	return indexes, rows.Err()
}

// DeleteIndex permanently removes an index. Members are removed by cascade.
func (s *IndexService) DeleteIndex(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM indexes WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return javadex.Errorf(javadex.ENOTFOUND, "index not found")
	}

	return nil
}
