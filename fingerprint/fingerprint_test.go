//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfKeyOrderStability(t *testing.T) {
	a, err := Of(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	b, err := Of(map[string]any{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, Length)
}

func TestOfDistinguishesContent(t *testing.T) {
	a, err := Of(map[string]any{"a": 1})
	require.NoError(t, err)
	b, err := Of(map[string]any{"a": 2})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOfStructAndMapAgree(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}
	a, err := Of(payload{Title: "x", Count: 3})
	require.NoError(t, err)
	b, err := Of(map[string]any{"count": 3, "title": "x"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestUIDUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := UID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate uid %s", id)
		seen[id] = struct{}{}
	}
}
