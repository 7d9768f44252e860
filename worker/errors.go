//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package worker

import "errors"

var (
	// ErrAlreadyAsking reports a duplicate Submit to a single-shot worker
	// while a prior submission with the same fingerprint is outstanding.
	ErrAlreadyAsking = errors.New("already asking")
	// ErrNeverAsked reports an IsDone or Take with an unknown handle.
	ErrNeverAsked = errors.New("never asked")
	// ErrEmptyResponse reports a worker that returned no content.
	ErrEmptyResponse = errors.New("the worker returned an empty response")
	// ErrMissingAnswer reports a delivery that parsed but carried no
	// answer field.
	ErrMissingAnswer = errors.New("the answer was not found")
)
