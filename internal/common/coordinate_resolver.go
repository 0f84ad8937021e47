package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"openpilotlog/nightlog/internal/calc"
	"openpilotlog/nightlog/internal/constants"
	"openpilotlog/nightlog/internal/metrics"

	"golang.org/x/sync/singleflight"
)

// AirportLookup resolves an airport identifier against the reference table
type AirportLookup interface {
	Resolve(ctx context.Context, ident string) (calc.GeoCoordinate, error)
}

// CoordinateResolver caches airport coordinates in front of an AirportLookup.
// Concurrent misses for the same identifier share one database query.
// Failed lookups are not cached.
type CoordinateResolver struct {
	lookup  AirportLookup
	cache   CacheInterface
	ttl     time.Duration
	metrics *metrics.MetricsRegistry
	group   singleflight.Group
}

func NewCoordinateResolver(lookup AirportLookup, cache CacheInterface, ttl time.Duration, m *metrics.MetricsRegistry) *CoordinateResolver {
	return &CoordinateResolver{
		lookup:  lookup,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
	}
}

// Resolve returns the coordinates of an ICAO or IATA identifier
func (r *CoordinateResolver) Resolve(ctx context.Context, ident string) (calc.GeoCoordinate, error) {
	ident = strings.ToUpper(strings.TrimSpace(ident))
	key := string(constants.CachePrefixAirportCoordinates) + ident

	if val, found := r.cache.Get(key); found {
		if coord, ok := coordinateFromCache(val); ok {
			r.observe(true)
			return coord, nil
		}
		// unreadable entry, load it again
		r.cache.Delete(key)
	}
	r.observe(false)

	// shared by every caller waiting on key
	loadCtx := context.WithoutCancel(ctx)
	val, err, _ := r.group.Do(key, func() (interface{}, error) {
		return r.cache.GetOrSet(key, r.ttl, func() (any, error) {
			return r.lookup.Resolve(loadCtx, ident)
		})
	})
	if err != nil {
		return calc.GeoCoordinate{}, err
	}
	if err := ctx.Err(); err != nil {
		return calc.GeoCoordinate{}, err
	}

	coord, ok := coordinateFromCache(val)
	if !ok {
		return calc.GeoCoordinate{}, fmt.Errorf("unexpected cached value for %s: %T", ident, val)
	}
	return coord, nil
}

// Invalidate drops every cached coordinate, used after the airport table is reloaded
func (r *CoordinateResolver) Invalidate() {
	r.cache.DeletePrefix(string(constants.CachePrefixAirportCoordinates))
}

func (r *CoordinateResolver) observe(hit bool) {
	if r.metrics == nil {
		return
	}
	pattern := string(constants.CachePrefixAirportCoordinates)
	if hit {
		r.metrics.CacheHitsTotal.WithLabelValues(pattern).Inc()
	} else {
		r.metrics.CacheMissesTotal.WithLabelValues(pattern).Inc()
	}
}

// coordinateFromCache accepts both the in-memory value and the decoded JSON
// object the redis cache hands back.
func coordinateFromCache(val interface{}) (calc.GeoCoordinate, bool) {
	switch v := val.(type) {
	case calc.GeoCoordinate:
		return v, true
	case *calc.GeoCoordinate:
		if v == nil {
			return calc.GeoCoordinate{}, false
		}
		return *v, true
	case map[string]interface{}:
		lat, latOK := v["lat"].(float64)
		lon, lonOK := v["lon"].(float64)
		if !latOK || !lonOK {
			return calc.GeoCoordinate{}, false
		}
		return calc.GeoCoordinate{Latitude: lat, Longitude: lon}, true
	default:
		return calc.GeoCoordinate{}, false
	}
}
