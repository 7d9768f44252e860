//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package openai

import (
	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"

	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// options contains configuration options for creating a Worker.
type options struct {
	// API key for the OpenAI client; the client falls back to
	// OPENAI_API_KEY when empty.
	apiKey string
	// Base URL for the OpenAI client. It is optional for
	// OpenAI-compatible APIs.
	baseURL string
	// Worker kind this instance is registered under.
	kind worker.Kind
	// Model name.
	model string
	// Extra options for the OpenAI client.
	openaiOptions []openaiopt.RequestOption
}

var defaultOptions = options{
	kind:  worker.OpenAI,
	model: openai.ChatModelGPT4oMini,
}

// Option is a function that configures a Worker.
type Option func(*options)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithBaseURL sets the base URL for OpenAI-compatible endpoints.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithKind registers the worker under a different kind, e.g.
// worker.Llama or worker.Claude when pointing at a compatible endpoint.
func WithKind(kind worker.Kind) Option {
	return func(o *options) { o.kind = kind }
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// WithOpenAIOptions appends extra request options for the underlying
// client.
func WithOpenAIOptions(opts ...openaiopt.RequestOption) Option {
	return func(o *options) { o.openaiOptions = append(o.openaiOptions, opts...) }
}
