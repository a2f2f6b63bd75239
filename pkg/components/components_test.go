package components_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeoblyv/spider/pkg/components"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := components.New(
		components.Component{Name: "spider", Version: "1.0.0"},
		components.Component{Name: "mimetype", Version: "1.0.0"},
	)
	r.Register("i18n", "1.1.0")
	r.Register("mimetype", "1.0.1")

	assert.Equal(t, []components.Component{
		{Name: "spider", Version: "1.0.0"},
		{Name: "mimetype", Version: "1.0.1"},
		{Name: "i18n", Version: "1.1.0"},
	}, r.Components())

	v, ok := r.Version("i18n")
	assert.True(t, ok)
	assert.Equal(t, "1.1.0", v)
	_, ok = r.Version("absent")
	assert.False(t, ok)

	got := r.Components()
	got[0].Version = "mutated"
	v, _ = r.Version("spider")
	assert.Equal(t, "1.0.0", v)
}

func TestRegistry_CoreHash(t *testing.T) {
	t.Parallel()

	r := components.New(
		components.Component{Name: "a", Version: "1.0.0"},
		components.Component{Name: "b", Version: "2.0.0"},
	)
	sum := sha256.Sum256([]byte("1.0.02.0.0"))
	full := hex.EncodeToString(sum[:])

	assert.Equal(t, full[:8], r.CoreHash(0))
	assert.Equal(t, full[:12], r.CoreHash(12))
	assert.Equal(t, full, r.CoreHash(1000))

	empty := sha256.Sum256(nil)
	assert.Equal(t, hex.EncodeToString(empty[:])[:8], components.New().CoreHash(8))
}
