package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeoblyv/spider/pkg/i18n"
)

func TestTable(t *testing.T) {
	t.Parallel()

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()
		tbl := i18n.NewTable("en", nil)
		tbl.Set("greeting", "hi")

		v, ok := tbl.Get("greeting")
		assert.True(t, ok)
		assert.Equal(t, "hi", v)
	})

	t.Run("absent differs from empty", func(t *testing.T) {
		t.Parallel()
		tbl := i18n.NewTable("en", map[string]string{"blank": ""})

		v, ok := tbl.Get("blank")
		assert.True(t, ok)
		assert.Empty(t, v)

		_, ok = tbl.Get("missing")
		assert.False(t, ok)
	})

	t.Run("copies input", func(t *testing.T) {
		t.Parallel()
		src := map[string]string{"a": "1"}
		tbl := i18n.NewTable("en", src)
		tbl.Set("a", "2")
		assert.Equal(t, "1", src["a"])

		clone := tbl.Clone()
		clone.Set("a", "3")
		v, _ := tbl.Get("a")
		assert.Equal(t, "2", v)
	})

	t.Run("metadata", func(t *testing.T) {
		t.Parallel()
		tbl := i18n.NewTable("fr", map[string]string{"b": "2", "a": "1"})
		assert.Equal(t, "fr", tbl.Lang())
		assert.Equal(t, 2, tbl.Len())
		assert.Equal(t, []string{"a", "b"}, tbl.Keys())
	})

	t.Run("nil table", func(t *testing.T) {
		t.Parallel()
		var tbl *i18n.Table
		_, ok := tbl.Get("x")
		assert.False(t, ok)
		assert.Zero(t, tbl.Len())
		assert.Empty(t, tbl.Lang())
	})
}
