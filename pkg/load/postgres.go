package load

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements Store against Postgres with multi-row INSERT
// statements. With the default batch size and the widest dataset (~40
// columns) a slice stays well under the 65535 bind-parameter limit.
type PgStore struct {
	pool  *pgxpool.Pool
	touch map[string]string
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool, touch: make(map[string]string)}
}

// TouchOnReplace registers a timestamp column of table that the Replace
// policy bumps to now(), so replaced rows record when they last changed.
func (s *PgStore) TouchOnReplace(table, column string) *PgStore {
	s.touch[table] = column
	return s
}

func (s *PgStore) Upsert(ctx context.Context, table string, cols []string, rows [][]any, conflict []string, policy ConflictPolicy) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	sql := insertSQL(table, cols, len(rows)) + conflictClause(cols, conflict, policy, s.touch[table])
	tag, err := s.pool.Exec(ctx, sql, flatten(rows)...)
	if err != nil {
		return 0, fmt.Errorf("upsert %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

func (s *PgStore) Insert(ctx context.Context, table string, cols []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, insertSQL(table, cols, len(rows)), flatten(rows)...)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

func insertSQL(table string, cols []string, nrows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(")\nVALUES ")
	arg := 1
	for r := 0; r < nrows; r++ {
		if r > 0 {
			b.WriteString(",\n       ")
		}
		b.WriteByte('(')
		for c := range cols {
			if c > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "$%d", arg)
			arg++
		}
		b.WriteByte(')')
	}
	return b.String()
}

func conflictClause(cols, conflict []string, policy ConflictPolicy, touch string) string {
	clause := "\nON CONFLICT (" + strings.Join(conflict, ", ") + ")"
	if policy == Skip {
		return clause + " DO NOTHING"
	}
	target := make(map[string]bool, len(conflict))
	for _, c := range conflict {
		target[c] = true
	}
	updates := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		if !target[c] {
			updates = append(updates, c+" = EXCLUDED."+c)
		}
	}
	if len(updates) == 0 {
		return clause + " DO NOTHING"
	}
	if touch != "" {
		updates = append(updates, touch+" = now()")
	}
	return clause + " DO UPDATE SET " + strings.Join(updates, ", ")
}

func flatten(rows [][]any) []any {
	if len(rows) == 0 {
		return nil
	}
	args := make([]any, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		args = append(args, row...)
	}
	return args
}
