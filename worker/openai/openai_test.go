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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

func TestAnswerFormat(t *testing.T) {
	tests := []struct {
		name       string
		spec       question.AnswerSpec
		wantFormat string
		wantType   string
	}{
		{
			name:       "number",
			spec:       question.AnswerSpec{Type: question.AnswerNumber},
			wantFormat: "{answer: number}",
			wantType:   "number",
		},
		{
			name:       "text",
			spec:       question.AnswerSpec{Type: question.AnswerText},
			wantFormat: "{answer: string}",
			wantType:   "string",
		},
		{
			name:       "select",
			spec:       question.AnswerSpec{Type: question.AnswerSelect, Options: []string{"a", "b"}},
			wantFormat: "{answer: select from [a, b]}",
			wantType:   "string",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, schema, err := answerFormat(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantType, schema["type"])
		})
	}

	_, _, err := answerFormat(question.AnswerSpec{Type: "date"})
	assert.ErrorIs(t, err, question.ErrInvalidQuestion)
}

func TestDecodeAnswer(t *testing.T) {
	got, err := decodeAnswer(`{"answer": "positive"}`)
	require.NoError(t, err)
	assert.Equal(t, "positive", got)

	got, err = decodeAnswer(`{"answer": 3.5}`)
	require.NoError(t, err)
	assert.Equal(t, "3.5", got)

	_, err = decodeAnswer(`{"other": 1}`)
	assert.ErrorIs(t, err, worker.ErrMissingAnswer)

	_, err = decodeAnswer(`not json`)
	assert.Error(t, err)
}

func TestBuildChatRequest(t *testing.T) {
	w := New(WithModel("gpt-4o-mini"))
	qc, err := question.InsertData(question.Template{
		Title: "t",
		Question: []question.Node{
			question.Paragraph(question.Slot(0)),
			question.Image(question.String("http://img/x.png")),
		},
		Answer: question.AnswerSpec{Type: question.AnswerSelect, Options: []string{"yes", "no"}},
	}, question.DataList{"Is this fine?"})
	require.NoError(t, err)

	req, err := w.buildChatRequest(qc)
	require.NoError(t, err)
	require.Len(t, req.Messages, 2)
	require.NotNil(t, req.ResponseFormat.OfJSONSchema)
	assert.Equal(t, "answer", req.ResponseFormat.OfJSONSchema.JSONSchema.Name)

	user := req.Messages[1].OfUser
	require.NotNil(t, user)
	parts := user.Content.OfArrayOfContentParts
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].OfText.Text, "Is this fine?")
	assert.Equal(t, "http://img/x.png", parts[1].OfImageURL.ImageURL.URL)
}

func TestWithKind(t *testing.T) {
	assert.Equal(t, worker.OpenAI, New().Kind())
	assert.Equal(t, worker.Llama, New(WithKind(worker.Llama)).Kind())
}
