package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jacobbishopxy/fabrix/df"
)

func TestCompileEmptyFilter(t *testing.T) {
	for _, d := range []string{"mysql", "postgres", "sqlite"} {
		cond, err := New(d).Compile(nil, 1)
		require.NoError(t, err)
		assert.True(t, cond.Empty())
		assert.Empty(t, cond.Args)
	}
}

func TestCompileSingleSimple(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		cond, err := New("sqlite").Compile([]Expression{
			Simple{Column: "name", Op: OpEq, Values: []df.Value{df.Str("Jacob")}},
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, `"name" = ?`, cond.Pred)
		assert.Equal(t, []any{"Jacob"}, cond.Args)
	})

	t.Run("postgres_numbering", func(t *testing.T) {
		cond, err := New("postgres").Compile([]Expression{
			Simple{Column: "age", Op: OpGte, Values: []df.Value{df.I32(18)}},
		}, 3)
		require.NoError(t, err)
		assert.Equal(t, `"age" >= $3`, cond.Pred)
		assert.Equal(t, []any{int64(18)}, cond.Args)
	})

	t.Run("mysql_backticks", func(t *testing.T) {
		cond, err := New("mysql").Compile([]Expression{
			Simple{Column: "name", Op: OpLike, Values: []df.Value{df.Str("Ja%")}},
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, "`name` LIKE ?", cond.Pred)
	})
}

func TestCompileConjGroups(t *testing.T) {
	// A Conj opens a new group with its own combinator; groups join with
	// a plain AND.
	cond, err := New("sqlite").Compile([]Expression{
		Simple{Column: "a", Op: OpEq, Values: []df.Value{df.I32(1)}},
		Conj{Op: Or},
		Simple{Column: "b", Op: OpEq, Values: []df.Value{df.I32(2)}},
		Simple{Column: "c", Op: OpEq, Values: []df.Value{df.I32(3)}},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, `"a" = ? AND ("b" = ? OR "c" = ?)`, cond.Pred)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, cond.Args)
}

func TestCompileDefaultAndFold(t *testing.T) {
	cond, err := New("sqlite").Compile([]Expression{
		Simple{Column: "a", Op: OpGt, Values: []df.Value{df.I32(1)}},
		Simple{Column: "b", Op: OpLt, Values: []df.Value{df.I32(9)}},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, `("a" > ? AND "b" < ?)`, cond.Pred)
}

func TestCompileNest(t *testing.T) {
	cond, err := New("postgres").Compile([]Expression{
		Simple{Column: "kind", Op: OpEq, Values: []df.Value{df.Str("x")}},
		Nest{
			Simple{Column: "a", Op: OpEq, Values: []df.Value{df.I32(1)}},
			Conj{Op: Or},
			Simple{Column: "b", Op: OpEq, Values: []df.Value{df.I32(2)}},
			Simple{Column: "c", Op: OpEq, Values: []df.Value{df.I32(3)}},
		},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, `("kind" = $1 AND ("a" = $2 AND ("b" = $3 OR "c" = $4)))`, cond.Pred)
	assert.Len(t, cond.Args, 4)

	t.Run("empty_nest_is_dropped", func(t *testing.T) {
		cond, err := New("sqlite").Compile([]Expression{
			Simple{Column: "a", Op: OpEq, Values: []df.Value{df.I32(1)}},
			Nest{},
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, `"a" = ?`, cond.Pred)
	})
}

func TestCompileMultiValueOperators(t *testing.T) {
	t.Run("in", func(t *testing.T) {
		cond, err := New("postgres").Compile([]Expression{
			Simple{Column: "id", Op: OpIn, Values: []df.Value{df.I64(1), df.I64(2), df.I64(3)}},
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, `"id" IN ($1, $2, $3)`, cond.Pred)
		assert.Equal(t, []any{int64(1), int64(2), int64(3)}, cond.Args)
	})

	t.Run("in_empty", func(t *testing.T) {
		_, err := New("sqlite").Compile([]Expression{
			Simple{Column: "id", Op: OpIn},
		}, 1)
		assert.Error(t, err)
	})

	t.Run("between", func(t *testing.T) {
		cond, err := New("sqlite").Compile([]Expression{
			Simple{Column: "age", Op: OpBetween, Values: []df.Value{df.I32(18), df.I32(30)}},
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, `"age" BETWEEN ? AND ?`, cond.Pred)
		assert.Equal(t, []any{int64(18), int64(30)}, cond.Args)
	})

	t.Run("between_short", func(t *testing.T) {
		_, err := New("sqlite").Compile([]Expression{
			Simple{Column: "age", Op: OpBetween, Values: []df.Value{df.I32(18)}},
		}, 1)
		assert.Error(t, err)
	})

	t.Run("surplus_values_rejected", func(t *testing.T) {
		// A scalar operator with extra literals is a caller mistake, not
		// something to truncate silently.
		for _, e := range []Simple{
			{Column: "age", Op: OpEq, Values: []df.Value{df.I32(18), df.I32(19)}},
			{Column: "age", Op: OpBetween, Values: []df.Value{df.I32(18), df.I32(19), df.I32(20)}},
		} {
			_, err := New("sqlite").Compile([]Expression{e}, 1)
			assert.Error(t, err)
		}
	})
}

func TestCompileRejectsBadIdentifier(t *testing.T) {
	_, err := New("sqlite").Compile([]Expression{
		Simple{Column: "a; DROP TABLE users", Op: OpEq, Values: []df.Value{df.I32(1)}},
	}, 1)
	assert.Error(t, err)
}
