package views

import (
	"context"

	"github.com/urban-transit-lab/transit-explorer/engine"
)

// Builder produces view models from engine query results. Timezone is the
// agency's IANA zone; it is required for any absolute-timestamp delay math.
// When LocalFallback is set and the agency zone is unusable, cosmetic-only
// time renderings fall back to the process-local zone — delays are never
// computed against the fallback.
type Builder struct {
	Engine        engine.Engine
	Timezone      string
	LocalFallback bool
}

// NewBuilder wires a builder to an engine.
func NewBuilder(eng engine.Engine, timezone string) *Builder {
	return &Builder{Engine: eng, Timezone: timezone}
}

// ResolveAgencyTimezone fills Timezone from the first agency when the
// configuration left it empty.
func (b *Builder) ResolveAgencyTimezone(ctx context.Context) error {
	if b.Timezone != "" {
		return nil
	}
	agencies, err := b.Engine.Agencies(ctx)
	if err != nil {
		return err
	}
	if len(agencies) > 0 {
		b.Timezone = agencies[0].Timezone
	}
	return nil
}
