// Package pg resolves predicate path components against PostgreSQL
// rows, loading related rows lazily as the fan-out engine traverses
// them. It lets one predicate expression evaluate against a row fetched
// from the database the same way it evaluates against an in-memory
// struct.
package pg

import "github.com/jinzhu/inflection"

// Row is one fetched database row together with the table it came
// from; the table name is what the schema keys relations on.
type Row struct {
	Table string
	Data  map[string]any
}

type relationKind int

const (
	hasMany relationKind = iota
	belongsTo
)

type relation struct {
	kind       relationKind
	table      string
	foreignKey string
}

// RelationOption overrides the naming conventions of a registered
// relation.
type RelationOption func(*relation)

// WithTable sets the related table explicitly instead of deriving it
// from the field name.
func WithTable(table string) RelationOption {
	return func(r *relation) { r.table = table }
}

// WithForeignKey sets the foreign key column explicitly. For a has-many
// relation the column lives on the related table, for a belongs-to
// relation on the parent.
func WithForeignKey(column string) RelationOption {
	return func(r *relation) { r.foreignKey = column }
}

// Schema declares which path components are relations rather than plain
// columns. Conventions follow typical relational naming: the related
// table is the pluralized field name and foreign keys are the
// singularized owner table plus "_id". Registration is builder-style:
//
//	schema := pg.NewSchema().
//		RegisterHasMany("users", "orders").
//		RegisterBelongsTo("orders", "user")
type Schema struct {
	relations map[string]map[string]relation
}

func NewSchema() *Schema {
	return &Schema{relations: make(map[string]map[string]relation)}
}

// RegisterHasMany declares field on parentTable as a to-many relation.
// Defaults: related table inflection.Plural(field), foreign key on the
// related table named inflection.Singular(parentTable) + "_id".
func (s *Schema) RegisterHasMany(parentTable, field string, opts ...RelationOption) *Schema {
	r := relation{
		kind:       hasMany,
		table:      inflection.Plural(field),
		foreignKey: inflection.Singular(parentTable) + "_id",
	}
	return s.register(parentTable, field, r, opts)
}

// RegisterBelongsTo declares field on parentTable as a to-one relation.
// Defaults: related table inflection.Plural(field), foreign key on the
// parent named field + "_id".
func (s *Schema) RegisterBelongsTo(parentTable, field string, opts ...RelationOption) *Schema {
	r := relation{
		kind:       belongsTo,
		table:      inflection.Plural(field),
		foreignKey: field + "_id",
	}
	return s.register(parentTable, field, r, opts)
}

func (s *Schema) register(parentTable, field string, r relation, opts []RelationOption) *Schema {
	for _, opt := range opts {
		opt(&r)
	}
	fields, ok := s.relations[parentTable]
	if !ok {
		fields = make(map[string]relation)
		s.relations[parentTable] = fields
	}
	fields[field] = r
	return s
}

func (s *Schema) relation(parentTable, field string) (relation, bool) {
	r, ok := s.relations[parentTable][field]
	return r, ok
}
