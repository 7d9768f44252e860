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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

func TestAnswerConfig(t *testing.T) {
	format, cfg, err := answerConfig(question.AnswerSpec{
		Type:    question.AnswerSelect,
		Options: []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "select from [a, b]", format)
	assert.Equal(t, "text/x.enum", cfg.ResponseMIMEType)
	assert.Equal(t, []string{"a", "b"}, cfg.ResponseSchema.Enum)

	format, cfg, err = answerConfig(question.AnswerSpec{Type: question.AnswerNumber})
	require.NoError(t, err)
	assert.Equal(t, "number", format)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.Equal(t, genai.TypeNumber, cfg.ResponseSchema.Type)

	_, _, err = answerConfig(question.AnswerSpec{Type: "date"})
	assert.ErrorIs(t, err, question.ErrInvalidQuestion)
}

func TestDecodeAnswer(t *testing.T) {
	got, err := decodeAnswer("3.50", question.AnswerSpec{Type: question.AnswerNumber})
	require.NoError(t, err)
	assert.Equal(t, "3.5", got)

	got, err = decodeAnswer(`"hello"`, question.AnswerSpec{Type: question.AnswerText})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = decodeAnswer("positive", question.AnswerSpec{
		Type: question.AnswerSelect, Options: []string{"positive"},
	})
	require.NoError(t, err)
	assert.Equal(t, "positive", got)

	_, err = decodeAnswer("nope", question.AnswerSpec{Type: question.AnswerNumber})
	assert.Error(t, err)
}

func TestSubmitNormalizesAndGuards(t *testing.T) {
	w, err := New(context.Background(), withGenerate(func(
		_ context.Context,
		_ string,
		_ []*genai.Content,
		_ *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error) {
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "negativ"}}},
			}},
		}, nil
	}))
	require.NoError(t, err)

	qc, err := question.InsertData(question.Template{
		Title:    "t",
		Question: []question.Node{question.Paragraph(question.Slot(0))},
		Answer: question.AnswerSpec{
			Type:    question.AnswerSelect,
			Options: []string{"positive", "negative"},
		},
	}, question.DataList{"It broke."})
	require.NoError(t, err)

	handle, err := w.Submit(context.Background(), qc)
	require.NoError(t, err)

	_, err = w.Submit(context.Background(), qc)
	assert.ErrorIs(t, err, worker.ErrAlreadyAsking)

	done, err := w.IsDone(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, done)

	got, err := w.Take(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, "negative", got)
}
