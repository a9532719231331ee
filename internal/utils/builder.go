package querybuilder

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// QueryBuilder wraps squirrel with postgres placeholders and an optional schema
type QueryBuilder struct {
	sq.StatementBuilderType
	schema string
}

func NewQueryBuilder(schema string) QueryBuilder {
	return QueryBuilder{
		StatementBuilderType: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		schema:               schema,
	}
}

// Table qualifies name with the schema, if any
func (q QueryBuilder) Table(name string) string {
	if q.schema == "" {
		return name
	}
	return q.schema + "." + name
}

// OnConflictUpdate renders an upsert suffix overwriting cols from EXCLUDED
func OnConflictUpdate(conflict []string, cols ...string) string {
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(conflict, ", "),
		strings.Join(sets, ", "))
}

// OnConflictDoNothing renders an insert-if-absent suffix
func OnConflictDoNothing(conflict ...string) string {
	return fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", strings.Join(conflict, ", "))
}
