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
	"fmt"

	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// Method selects the execution policy of a batch.
type Method string

// Execution methods.
const (
	MethodSimple         Method = "simple"
	MethodCTA            Method = "cta"
	MethodGTA            Method = "gta"
	MethodSequentialCTA1 Method = "sequential_cta_1"
	MethodSequentialCTA2 Method = "sequential_cta_2"
	MethodSequentialCTA3 Method = "sequential_cta_3"
)

// Defaults applied to zero-valued statistical parameters.
const (
	DefaultSignificanceLevel = 0.05
	DefaultIteration         = 1000
)

// Config is the execution configuration of one Wait call.
type Config struct {
	// Method is the execution policy; empty means simple.
	Method Method
	// Client is the worker kind queried by the simple method.
	Client worker.Kind
	// QualityRequirement is the minimum per-cluster agreement
	// probability q in [0, 1].
	QualityRequirement float64
	// SignificanceLevel is the tolerated false-approval probability in
	// [0, 1]; zero means DefaultSignificanceLevel.
	SignificanceLevel float64
	// Iteration is the Monte-Carlo sample count of gta; zero means
	// DefaultIteration.
	Iteration int
	// SampleSize is the fixed test size of sequential_cta_2.
	SampleSize int
}

// method returns the effective method, defaulting to simple.
func (cfg Config) method() Method {
	if cfg.Method == "" {
		return MethodSimple
	}
	return cfg.Method
}

// significanceLevel returns alpha with its default applied.
func (cfg Config) significanceLevel() float64 {
	if cfg.SignificanceLevel == 0 {
		return DefaultSignificanceLevel
	}
	return cfg.SignificanceLevel
}

// iteration returns the Monte-Carlo iteration count with its default
// applied.
func (cfg Config) iteration() int {
	if cfg.Iteration == 0 {
		return DefaultIteration
	}
	return cfg.Iteration
}

// validateStatistical checks the shared parameters of the statistical
// methods against t.
func (cfg Config) validateStatistical(t question.Template) error {
	if cfg.QualityRequirement < 0 || cfg.QualityRequirement > 1 {
		return fmt.Errorf("%w: quality requirement %v outside [0, 1]",
			ErrInvalidParameter, cfg.QualityRequirement)
	}
	if alpha := cfg.significanceLevel(); alpha < 0 || alpha > 1 {
		return fmt.Errorf("%w: significance level %v outside [0, 1]",
			ErrInvalidParameter, alpha)
	}
	if t.Answer.Type != question.AnswerSelect {
		return fmt.Errorf("%w: method %s requires a select answer, got %q",
			ErrInvalidParameter, cfg.method(), t.Answer.Type)
	}
	return nil
}
