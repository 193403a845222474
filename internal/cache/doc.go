// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
Package cache provides thread-safe in-memory caching with TTL support.

API handlers use it to shield DuckDB from repeated reads of slow-moving
data: dataset statistics, coverage descriptions, and float trajectories.
Each cache instance carries a name that labels it in Prometheus metrics,
so hit rates per cache are visible on the /metrics endpoint.

# Usage

	c := cache.New("stats", 5*time.Minute)

	key := cache.GenerateKey("trajectory", map[string]string{"float_id": id})
	if v, ok := c.Get(key); ok {
	    return v.(*models.TrajectoryResponse), nil
	}
	// miss: query DuckDB, then c.Set(key, resp)

Expiration is lazy on Get plus a background sweep every 5 minutes. Clear
drops everything at once and is called after the profile store is
reseeded.

# Recommended TTLs

	Dataset statistics:    5 minutes (config cache.stats_ttl)
	Coverage descriptions: 10 minutes (config cache.coverage_ttl)
	Float trajectories:    5 minutes

The cache is unbounded and in-memory only. The dataset behind it is small
(one stats row, ~1,800 floats), so bounded eviction buys nothing here.
*/
package cache
