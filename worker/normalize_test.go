//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-haio-go/question"
)

func TestNormalizeSelect(t *testing.T) {
	spec := question.AnswerSpec{
		Type:    question.AnswerSelect,
		Options: []string{"positive", "negative"},
	}
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"exact", "positive", "positive"},
		{"case insensitive", "Positive", "positive"},
		{"close match", "negativ", "negative"},
		{"no match falls back to first option", "zzzzzzzzzz", "positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeNumber(t *testing.T) {
	spec := question.AnswerSpec{Type: question.AnswerNumber}

	got, err := Normalize("42", spec)
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	got, err = Normalize("3.50", spec)
	require.NoError(t, err)
	assert.Equal(t, "3.5", got)

	_, err = Normalize("not a number", spec)
	assert.Error(t, err)

	_, err = Normalize("Inf", spec)
	assert.Error(t, err)
}

func TestNormalizeText(t *testing.T) {
	spec := question.AnswerSpec{Type: question.AnswerText}
	got, err := Normalize("  verbatim  ", spec)
	require.NoError(t, err)
	assert.Equal(t, "  verbatim  ", got)
}

func TestNormalizeEmpty(t *testing.T) {
	_, err := Normalize("", question.AnswerSpec{Type: question.AnswerText})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestSingleShotGuard(t *testing.T) {
	var s SingleShot

	require.NoError(t, s.Begin("fp"))
	s.Complete("fp", "answer")

	// A second submission for the same fingerprint is rejected until the
	// pending answer is taken.
	assert.ErrorIs(t, s.Begin("fp"), ErrAlreadyAsking)

	done, err := s.Done("fp")
	require.NoError(t, err)
	assert.True(t, done)

	got, err := s.Take("fp")
	require.NoError(t, err)
	assert.Equal(t, "answer", got)

	_, err = s.Take("fp")
	assert.ErrorIs(t, err, ErrNeverAsked)
	_, err = s.Done("fp")
	assert.ErrorIs(t, err, ErrNeverAsked)

	// After Take the fingerprint is free again.
	assert.NoError(t, s.Begin("fp"))
}
