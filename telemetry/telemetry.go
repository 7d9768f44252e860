//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry holds the module's OpenTelemetry tracer and the
// attribute keys shared by its spans. Exporter setup is the caller's
// concern; without one the spans are no-ops.
package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentName identifies this library to the tracer provider.
const InstrumentName = "trpc.group/trpc-go/trpc-haio-go"

// Tracer is the tracer used by the session façade and the request
// router.
var Tracer trace.Tracer = otel.Tracer(InstrumentName)

// Span attribute keys.
var (
	// KeyWorkerKind is the worker kind serving a request.
	KeyWorkerKind = attribute.Key("haio.worker.kind")
	// KeyMethod is the execution policy of a batch.
	KeyMethod = attribute.Key("haio.method")
	// KeyBatchSize is the number of asks in a batch.
	KeyBatchSize = attribute.Key("haio.batch.size")
	// KeyCacheHit marks a request served from the answer cache.
	KeyCacheHit = attribute.Key("haio.cache.hit")
)
