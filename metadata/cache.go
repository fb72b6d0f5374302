package metadata

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KOMKZ/go-yogan-codec/enum"
	"github.com/KOMKZ/go-yogan-codec/logger"
	"github.com/KOMKZ/go-yogan-codec/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Cache lazily builds and keeps one TypeMetadata per enum type.
//
// Concurrent first requests for the same type share a single build, and every
// caller observes the same table afterwards. Failed builds are not cached.
type Cache struct {
	types  *enum.Registry
	policy DuplicatePolicy
	log    *logger.CtxZapLogger

	mu      sync.RWMutex
	entries map[reflect.Type]*TypeMetadata
	group   singleflight.Group

	metricsEnabled bool
	metrics        atomic.Pointer[telemetry.LazyCacheMetrics]
}

// Option configures a Cache
type Option func(*Cache)

// WithLogger sets the logger
func WithLogger(log *logger.CtxZapLogger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDuplicatePolicy sets how display-name collisions are handled
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(c *Cache) {
		c.policy = p
	}
}

// WithMetrics switches metric recording on once RegisterMetrics has been called
func WithMetrics(enabled bool) Option {
	return func(c *Cache) {
		c.metricsEnabled = enabled
	}
}

// NewCache creates an empty cache over the declarations of types
func NewCache(types *enum.Registry, opts ...Option) *Cache {
	c := &Cache{
		types:   types,
		policy:  DuplicateReject,
		log:     logger.Nop(),
		entries: make(map[reflect.Type]*TypeMetadata),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the duplicate policy in effect
func (c *Cache) Policy() DuplicatePolicy {
	return c.policy
}

// Get returns the table for rt, building it on first use.
// rt must be a declared enum type; anything else yields enum.ErrNotEnum.
func (c *Cache) Get(rt reflect.Type) (*TypeMetadata, error) {
	ctx := context.Background()

	if md, ok := c.cached(rt); ok {
		if m := c.recorder(); m != nil {
			m.RecordHit(ctx, typeAttr(rt))
		}
		return md, nil
	}

	typ, err := c.types.Get(rt)
	if err != nil {
		return nil, err
	}

	v, err, _ := c.group.Do(typeKey(rt), func() (any, error) {
		if md, ok := c.cached(rt); ok {
			return md, nil
		}
		return c.build(ctx, typ)
	})
	if err != nil {
		return nil, err
	}
	return v.(*TypeMetadata), nil
}

func (c *Cache) build(ctx context.Context, typ *enum.Type) (*TypeMetadata, error) {
	start := time.Now()
	md, err := Build(typ, c.types, c.policy)
	if m := c.recorder(); m != nil {
		m.RecordBuild(ctx, time.Since(start).Seconds(), err, typeAttr(typ.ReflectType()))
	}
	if err != nil {
		c.log.ErrorCtx(ctx, "metadata build failed",
			zap.String("type", typ.Name()),
			zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.entries[typ.ReflectType()] = md
	c.mu.Unlock()

	c.log.DebugCtx(ctx, "metadata built",
		zap.String("type", typ.Name()),
		zap.Int("names", md.Len()),
		zap.String("policy", string(c.policy)))
	return md, nil
}

func (c *Cache) cached(rt reflect.Type) (*TypeMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	md, ok := c.entries[rt]
	return md, ok
}

// Warm builds the tables of the given types in parallel, or of every declared type when none are given.
// Stops at the first failure.
func (c *Cache) Warm(ctx context.Context, types ...reflect.Type) error {
	if len(types) == 0 {
		for _, t := range c.types.Types() {
			types = append(types, t.ReflectType())
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, rt := range types {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := c.Get(rt)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.log.InfoCtx(ctx, "metadata cache warmed", zap.Int("types", len(types)))
	return nil
}

// Len number of cached tables
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every cached table. Aliases bound afterwards take effect on the next build.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[reflect.Type]*TypeMetadata)
	c.mu.Unlock()
}

// MetricsName implements component.MetricsProvider
func (c *Cache) MetricsName() string {
	return "metadata"
}

// IsMetricsEnabled implements component.MetricsProvider
func (c *Cache) IsMetricsEnabled() bool {
	return c.metricsEnabled
}

// RegisterMetrics implements component.MetricsProvider
func (c *Cache) RegisterMetrics(meter metric.Meter) error {
	if !c.metricsEnabled || c.metrics.Load() != nil {
		return nil
	}
	m, err := telemetry.NewMetricsBuilder(meter, "codec").NewLazyCacheMetrics(c.MetricsName())
	if err != nil {
		return err
	}
	c.metrics.CompareAndSwap(nil, m)
	return nil
}

func (c *Cache) recorder() *telemetry.LazyCacheMetrics {
	if !c.metricsEnabled {
		return nil
	}
	return c.metrics.Load()
}

// typeKey must be unique per named type: reflect.Type.String only carries the package name.
func typeKey(rt reflect.Type) string {
	return rt.PkgPath() + "." + rt.Name()
}

func typeAttr(rt reflect.Type) attribute.KeyValue {
	return attribute.String("type", rt.String())
}
