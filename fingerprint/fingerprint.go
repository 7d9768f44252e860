//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

// Package fingerprint produces stable content fingerprints for JSON-like
// values. Fingerprints key the answer cache, the single-shot worker guard
// and the sequential engine state.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Length is the number of hex characters of the truncated digest.
const Length = 32

// Of canonicalises v by a JSON round trip (object keys serialise sorted)
// and returns a truncated lowercase hex SHA-256 of the result. Values
// with equal canonical content always produce equal fingerprints.
func Of(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint: marshal: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("fingerprint: canonicalise: %w", err)
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("fingerprint: canonicalise: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])[:Length], nil
}

// MustOf is Of for values known to be JSON-serialisable; it panics
// otherwise.
func MustOf(v any) string {
	fp, err := Of(v)
	if err != nil {
		panic(err)
	}
	return fp
}

// UID returns a fresh globally-unique opaque string.
func UID() string {
	return uuid.NewString()
}
