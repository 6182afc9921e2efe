package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/todo-server/internal/dbx"
	"github.com/dtroode/todo-server/internal/model"
)

type scanner interface {
	Scan(dest ...any) error
}

// Table maps an entity type onto a table with a BIGSERIAL "id" primary key.
type Table[T any] struct {
	Name string
	// Columns are written by INSERT and UPDATE, in the order Values returns them.
	Columns []string
	// Returning are read back by every statement, in the order Scan expects them.
	Returning []string
	// Touched are set to NOW() by an UPDATE that changes any of Columns.
	Touched []string
	// Constraints maps constraint names to the field they guard.
	Constraints map[string]string

	ID     func(entity *T) *int64
	Values func(entity *T) []any
	Scan   func(row scanner, entity *T) error
}

// CRUD implements model.Store for any entity described by a Table.
type CRUD[T any] struct {
	db    dbx.DBTX
	table Table[T]

	insertQuery string
	updateQuery string
	deleteQuery string
	selectQuery string
}

func NewCRUD[T any](db dbx.DBTX, table Table[T]) *CRUD[T] {
	c := &CRUD[T]{db: db, table: table}

	returning := strings.Join(table.Returning, ", ")
	placeholders := make([]string, len(table.Columns))
	assignments := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	if len(table.Touched) > 0 {
		changed := fmt.Sprintf("(%s) IS DISTINCT FROM (%s)",
			strings.Join(table.Columns, ", "), strings.Join(placeholders, ", "))
		for _, col := range table.Touched {
			assignments = append(assignments,
				fmt.Sprintf("%s = CASE WHEN %s THEN NOW() ELSE %s END", col, changed, col))
		}
	}

	c.insertQuery = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table.Name, strings.Join(table.Columns, ", "), strings.Join(placeholders, ", "), returning)
	c.updateQuery = fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table.Name, strings.Join(assignments, ", "), len(table.Columns)+1, returning)
	c.deleteQuery = fmt.Sprintf("DELETE FROM %s WHERE id = $1", table.Name)
	c.selectQuery = fmt.Sprintf("SELECT %s FROM %s", returning, table.Name)

	return c
}

// WithTx returns a copy bound to tx. Writes through the copy become durable
// when tx commits.
func (c *CRUD[T]) WithTx(tx dbx.DBTX) *CRUD[T] {
	clone := *c
	clone.db = tx
	return &clone
}

func (c *CRUD[T]) Create(ctx context.Context, entity T) (T, error) {
	var created T
	row := c.db.QueryRowContext(ctx, c.insertQuery, c.table.Values(&entity)...)
	if err := c.table.Scan(row, &created); err != nil {
		var zero T
		return zero, c.wrap("create", err)
	}

	return created, nil
}

// Save inserts entity when it has no identifier yet and overwrites the
// stored row otherwise. entity is refreshed from the row on success.
func (c *CRUD[T]) Save(ctx context.Context, entity *T) error {
	id := *c.table.ID(entity)
	if id == 0 {
		created, err := c.Create(ctx, *entity)
		if err != nil {
			return err
		}
		*entity = created
		return nil
	}

	args := append(c.table.Values(entity), id)
	var saved T
	if err := c.table.Scan(c.db.QueryRowContext(ctx, c.updateQuery, args...), &saved); err != nil {
		return c.wrap("save", err)
	}
	*entity = saved

	return nil
}

// Update validates and applies patch to entity. With commit the patched
// copy is saved first and entity only changes once the save succeeds.
func (c *CRUD[T]) Update(ctx context.Context, entity *T, patch model.Patch[T], commit bool) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	if !commit {
		patch.Apply(entity)
		return nil
	}

	updated := *entity
	patch.Apply(&updated)
	if err := c.Save(ctx, &updated); err != nil {
		return err
	}
	*entity = updated

	return nil
}

func (c *CRUD[T]) Delete(ctx context.Context, id int64) error {
	res, err := c.db.ExecContext(ctx, c.deleteQuery, id)
	if err != nil {
		return c.wrap("delete", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", c.table.Name, err)
	}
	if n == 0 {
		return model.ErrNotFound
	}

	return nil
}

// GetByID accepts any identifier model.ParseID understands. Malformed
// identifiers are reported as model.ErrNotFound.
func (c *CRUD[T]) GetByID(ctx context.Context, id any) (T, error) {
	var entity T
	pk, ok := model.ParseID(id)
	if !ok {
		return entity, model.ErrNotFound
	}

	row := c.db.QueryRowContext(ctx, c.selectQuery+" WHERE id = $1", pk)
	if err := c.table.Scan(row, &entity); err != nil {
		var zero T
		return zero, c.wrap("get", err)
	}

	return entity, nil
}

// FindBy returns entities whose columns equal every value in filter, ordered by id.
func (c *CRUD[T]) FindBy(ctx context.Context, filter model.Filter) ([]T, error) {
	query, args, err := c.buildSelect(filter, 0)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, c.wrap("find", err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		var entity T
		if err := c.table.Scan(rows, &entity); err != nil {
			return nil, c.wrap("scan", err)
		}
		result = append(result, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, c.wrap("find", err)
	}

	return result, nil
}

// FirstBy returns the lowest-id entity matching filter.
func (c *CRUD[T]) FirstBy(ctx context.Context, filter model.Filter) (T, error) {
	var entity T
	query, args, err := c.buildSelect(filter, 1)
	if err != nil {
		return entity, err
	}

	if err := c.table.Scan(c.db.QueryRowContext(ctx, query, args...), &entity); err != nil {
		var zero T
		return zero, c.wrap("find", err)
	}

	return entity, nil
}

func (c *CRUD[T]) buildSelect(filter model.Filter, limit int) (string, []any, error) {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		if !slices.Contains(c.table.Returning, k) {
			return "", nil, model.NewValidationError(k, "unknown field")
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.selectQuery)
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		fmt.Fprintf(&b, "%s = $%d", k, i+1)
		args = append(args, filter[k])
	}
	b.WriteString(" ORDER BY id")
	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}

	return b.String(), args, nil
}

func (c *CRUD[T]) wrap(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	if verr := translateError(c.table.Constraints, err); verr != nil {
		return verr
	}
	return fmt.Errorf("failed to %s %s: %w", op, c.table.Name, err)
}

// Postgres error codes reported as caller errors.
const (
	codeUniqueViolation     = "23505"
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeStringTooLong       = "22001"
)

// translateError turns a constraint violation into a *model.ValidationError.
// It returns nil for anything else.
func translateError(constraints map[string]string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	field := constraints[pgErr.ConstraintName]
	if field == "" {
		field = pgErr.ColumnName
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return model.NewValidationError(field, "already exists")
	case codeNotNullViolation:
		return model.NewValidationError(field, "is required")
	case codeForeignKeyViolation:
		return model.NewValidationError(field, "references a missing record")
	case codeCheckViolation:
		return model.NewValidationError(field, "is invalid")
	case codeStringTooLong:
		return model.NewValidationError(field, "is too long")
	}

	return nil
}
