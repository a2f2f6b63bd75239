//go:build property

package resolver_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/yeoblyv/spider/pkg/resolver"
)

func TestResolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4242)
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	r, err := resolver.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	root := r.Root()
	inside := func(p string) bool {
		return strings.HasPrefix(p, root+string(filepath.Separator))
	}

	segment := gen.OneConstOf("a", "b.css", "docs", "..", ".", "", "%2e%2e", `..\x`, "index.lua", "img.png")

	properties.Property("resolved paths never leave the public root", prop.ForAll(
		func(segs []string) bool {
			res, err := r.Resolve("/" + strings.Join(segs, "/"))
			if err != nil {
				return res.Path == ""
			}
			return inside(res.Path)
		},
		gen.SliceOfN(6, segment),
	))

	properties.Property("paths without traversal resolve inside the root", prop.ForAll(
		func(name string) bool {
			res, err := r.Resolve("/" + name)
			return err == nil && inside(res.Path)
		},
		gen.Identifier(),
	))

	properties.Property("resolution is idempotent", prop.ForAll(
		func(segs []string) bool {
			p := "/" + strings.Join(segs, "/")
			a, errA := r.Resolve(p)
			b, errB := r.Resolve(p)
			return a == b && (errA == nil) == (errB == nil)
		},
		gen.SliceOfN(4, segment),
	))

	properties.TestingRun(t)
}
