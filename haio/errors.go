//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package haio

import "errors"

var (
	// ErrInvalidClient indicates the configured worker kind is not
	// registered with the session.
	ErrInvalidClient = errors.New("the client is invalid")

	// ErrInvalidMethod indicates an unknown execution method.
	ErrInvalidMethod = errors.New("the method is invalid")

	// ErrInvalidParameter indicates an execution parameter outside its
	// legal range, or a question whose answer type does not fit the
	// method.
	ErrInvalidParameter = errors.New("the parameter is invalid")

	// ErrMixedTemplates indicates a batch whose asks do not all share
	// one question template.
	ErrMixedTemplates = errors.New("all asked questions must have the same question template")
)
