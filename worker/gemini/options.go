//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package gemini

import (
	"net/http"

	"google.golang.org/genai"
)

// options contains configuration options for creating a Worker.
type options struct {
	// model is the Gemini model name.
	model string
	// clientConfig for building the genai client.
	clientConfig *genai.ClientConfig
	// httpClient fetches image sources.
	httpClient *http.Client
	// generate overrides the API call; used by tests.
	generate generateFunc
}

var defaultOptions = options{
	model:      defaultModel,
	httpClient: http.DefaultClient,
}

// Option is a function that configures a Worker.
type Option func(*options)

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// WithClientConfig sets the genai client config.
func WithClientConfig(cfg *genai.ClientConfig) Option {
	return func(o *options) { o.clientConfig = cfg }
}

// WithHTTPClient sets the client used to fetch image sources.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// withGenerate stubs the API call in tests.
func withGenerate(fn generateFunc) Option {
	return func(o *options) { o.generate = fn }
}
