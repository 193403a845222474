// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package vector

import (
	"context"
	"testing"
)

func TestDisabled(t *testing.T) {
	var store Store = Disabled{}

	hits, err := store.Search(context.Background(), "temperature near the equator", 10)
	if err != nil {
		t.Fatalf("Disabled search errored: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Disabled search returned hits: %v", hits)
	}

	if !store.Healthy(context.Background()) {
		t.Error("Disabled store must not fail readiness")
	}
}
