// Package ocrcache collapses concurrent calls into a single external OCR
// pass. A Session's public operations are already serialized under its own
// mutex (§5), but nothing stops two callers — the step loop and an
// introspection/status caller racing to "peek" at the live screen — from
// both wanting a fresh Describe at once; without collapsing, that doubles
// the cost of an external OCR call for no benefit, since both callers want
// the same answer.
package ocrcache

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/corvid-labs/skillwalk/pkg/boundary"
)

// Dedup wraps a boundary.ScreenDescriber so that concurrent Describe calls
// share a single in-flight OCR pass.
type Dedup struct {
	inner boundary.ScreenDescriber
	group singleflight.Group
}

// Wrap returns a Dedup-wrapped ScreenDescriber around inner.
func Wrap(inner boundary.ScreenDescriber) *Dedup {
	return &Dedup{inner: inner}
}

func (d *Dedup) Describe(ctx context.Context) (boundary.Description, error) {
	v, err, _ := d.group.Do("describe", func() (any, error) {
		return d.inner.Describe(ctx)
	})
	if err != nil {
		return boundary.Description{}, err
	}
	return v.(boundary.Description), nil
}
