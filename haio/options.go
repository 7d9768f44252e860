//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package haio

import (
	"math/rand"
	"time"

	"trpc.group/trpc-go/trpc-haio-go/cache"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// options contains configuration options for creating a Client.
type options struct {
	aiWorkers    []worker.Worker
	cacheDir     string
	pollInterval time.Duration
	randSource   rand.Source
}

func defaultOptions() options {
	return options{
		cacheDir:     cache.DefaultDir(),
		pollInterval: worker.DefaultPollInterval,
		randSource:   rand.NewSource(time.Now().UnixNano()),
	}
}

// Option is a function that configures a Client.
type Option func(*options)

// WithAIWorker registers an AI worker. Registration order is the order
// the engines consult the workers in.
func WithAIWorker(w worker.Worker) Option {
	return func(o *options) { o.aiWorkers = append(o.aiWorkers, w) }
}

// WithCacheDir sets the answer-cache directory.
func WithCacheDir(dir string) Option {
	return func(o *options) { o.cacheDir = dir }
}

// WithPollInterval sets the delay between is-done polls on the human
// worker. Tests drive it to zero.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithRandSource seeds the engines' random sampling.
func WithRandSource(src rand.Source) Option {
	return func(o *options) { o.randSource = src }
}
