package apctx

import (
	"context"

	"github.com/google/uuid"
)

const (
	uuidGeneratorKey contextKey = "uuidGenerator"
)

// UuidGenerator is an interface to an object that will provide UUIDs. The default implementation
// delegates to uuid.New(). Tests use WithFixedUuidGenerator or a sequence to get deterministic ids.
type UuidGenerator interface {
	New() uuid.UUID
}

type realUuidGenerator struct{}

func (g *realUuidGenerator) New() uuid.UUID {
	return uuid.New()
}

var realUuidGeneratorVal UuidGenerator = &realUuidGenerator{}

// GetUuidGenerator retrieves a UUID generator from the context if one has been set. If not, it returns the real
// generator.
func GetUuidGenerator(ctx context.Context) UuidGenerator {
	val := ctx.Value(uuidGeneratorKey)
	if val == nil {
		return realUuidGeneratorVal
	}

	return val.(UuidGenerator)
}

// WithUuidGenerator sets a UUID generator on the context.
func WithUuidGenerator(ctx context.Context, generator UuidGenerator) context.Context {
	return context.WithValue(ctx, uuidGeneratorKey, generator)
}

type fixedUuidGenerator struct {
	u uuid.UUID
}

func (g *fixedUuidGenerator) New() uuid.UUID {
	return g.u
}

// WithFixedUuidGenerator sets a generator on the context that always returns the same UUID.
func WithFixedUuidGenerator(ctx context.Context, u uuid.UUID) context.Context {
	return WithUuidGenerator(ctx, &fixedUuidGenerator{u: u})
}

type sequenceUuidGenerator struct {
	ids  []uuid.UUID
	next int
}

func (g *sequenceUuidGenerator) New() uuid.UUID {
	if g.next >= len(g.ids) {
		return uuid.New()
	}

	u := g.ids[g.next]
	g.next++
	return u
}

// WithUuidSequence sets a generator that returns the given UUIDs in order, then falls back to random UUIDs.
func WithUuidSequence(ctx context.Context, ids ...uuid.UUID) context.Context {
	return WithUuidGenerator(ctx, &sequenceUuidGenerator{ids: ids})
}
