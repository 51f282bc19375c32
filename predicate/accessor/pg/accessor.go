package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/krew-solutions/predicate-go/predicate/accessor"
)

// Accessor resolves path components against Row instances by querying
// the database through a pgxpool. Components registered in the schema
// resolve as relations (each related row becomes a new Row, so deeper
// path components keep resolving through the database); everything else
// resolves as a column of the row. Non-Row instances fall through to
// the reflection accessor, so mixed graphs work.
//
// Every Eval call may issue queries; the accessor holds no cache. The
// context passed to New bounds all of them.
type Accessor struct {
	ctx    context.Context
	pool   *pgxpool.Pool
	schema *Schema
	direct accessor.Accessor
}

func New(ctx context.Context, pool *pgxpool.Pool, schema *Schema) *Accessor {
	return &Accessor{
		ctx:    ctx,
		pool:   pool,
		schema: schema,
		direct: accessor.Reflect{},
	}
}

// Root fetches one row by primary key, as a starting instance for
// evaluation.
func (a *Accessor) Root(table string, id any) (Row, error) {
	data, err := a.queryOne("SELECT * FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return Row{}, errors.Wrapf(err, "load root row %v from %s", id, table)
	}
	if data == nil {
		return Row{}, errors.Errorf("no row %v in %s", id, table)
	}
	return Row{Table: table, Data: data}, nil
}

func (a *Accessor) Resolve(instance any, field string) ([]any, error) {
	row, ok := instance.(Row)
	if !ok {
		return a.direct.Resolve(instance, field)
	}

	rel, ok := a.schema.relation(row.Table, field)
	if !ok {
		v, ok := row.Data[field]
		if !ok {
			return []any{nil}, nil
		}
		return []any{normalize(v)}, nil
	}

	switch rel.kind {
	case belongsTo:
		return a.resolveBelongsTo(row, rel)
	default:
		return a.resolveHasMany(row, rel)
	}
}

func (a *Accessor) resolveBelongsTo(row Row, rel relation) ([]any, error) {
	fk, ok := row.Data[rel.foreignKey]
	if !ok || fk == nil {
		return []any{nil}, nil
	}
	data, err := a.queryOne("SELECT * FROM "+rel.table+" WHERE id = $1", fk)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s.%s", row.Table, rel.table)
	}
	if data == nil {
		return []any{nil}, nil
	}
	return []any{Row{Table: rel.table, Data: data}}, nil
}

func (a *Accessor) resolveHasMany(row Row, rel relation) ([]any, error) {
	id, ok := row.Data["id"]
	if !ok || id == nil {
		return []any{nil}, nil
	}
	rows, err := a.pool.Query(a.ctx, "SELECT * FROM "+rel.table+" WHERE "+rel.foreignKey+" = $1", id)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s.%s", row.Table, rel.table)
	}
	defer rows.Close()

	// Zero related rows yield an empty sequence, which empties the
	// cartesian product: "no related objects" is not "null field".
	out := []any{}
	for rows.Next() {
		data, err := scanRow(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s.%s", row.Table, rel.table)
		}
		out = append(out, Row{Table: rel.table, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "resolve %s.%s", row.Table, rel.table)
	}
	return out, nil
}

// queryOne returns the first row's columns, or nil when there is no
// row.
func (a *Accessor) queryOne(sql string, args ...any) (map[string]any, error) {
	rows, err := a.pool.Query(a.ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, nil
	}
	return scanRow(rows)
}

func scanRow(rows pgx.Rows) (map[string]any, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}
	fields := rows.FieldDescriptions()
	data := make(map[string]any, len(fields))
	for i, fd := range fields {
		data[string(fd.Name)] = values[i]
	}
	return data, nil
}

// normalize maps driver types onto the values the operator evaluator
// compares: pgtype scalars already come back as Go natives from
// Values(), so only a couple of cases need help.
func normalize(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x
	case int32:
		return int(x)
	case int64:
		return x
	}
	return v
}
