//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

// Package openai implements the AI worker backed by the OpenAI chat
// completions API. Answers are forced into a strict JSON schema so the
// model output is always {"answer": ...}. The same worker serves
// OpenAI-compatible endpoints under other kinds (llama, claude) via
// WithKind and WithBaseURL.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"trpc.group/trpc-go/trpc-haio-go/fingerprint"
	"trpc.group/trpc-go/trpc-haio-go/log"
	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// Worker answers questions through a chat-completions endpoint. It is
// single-shot: Submit completes the query synchronously and the handle
// is the question fingerprint.
type Worker struct {
	worker.SingleShot

	client openai.Client
	kind   worker.Kind
	model  string
}

var _ worker.Worker = (*Worker)(nil)

// New creates an OpenAI worker.
func New(opts ...Option) *Worker {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	var clientOpts []openaiopt.RequestOption
	if o.apiKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.apiKey))
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.baseURL))
	}
	clientOpts = append(clientOpts, o.openaiOptions...)
	return &Worker{
		client: openai.NewClient(clientOpts...),
		kind:   o.kind,
		model:  o.model,
	}
}

// Kind implements worker.Worker.
func (w *Worker) Kind() worker.Kind { return w.kind }

// Submit dispatches the question and returns its fingerprint as the
// handle. A second Submit for the same fingerprint before Take fails
// with worker.ErrAlreadyAsking.
func (w *Worker) Submit(ctx context.Context, qc *question.Config) (string, error) {
	if err := qc.Validate(); err != nil {
		return "", err
	}
	fp, err := fingerprint.Of(qc)
	if err != nil {
		return "", err
	}
	if err := w.Begin(fp); err != nil {
		return "", err
	}
	chatRequest, err := w.buildChatRequest(qc)
	if err != nil {
		return "", err
	}
	completion, err := w.client.Chat.Completions.New(ctx, chatRequest)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", worker.ErrEmptyResponse
	}
	answer, err := decodeAnswer(completion.Choices[0].Message.Content)
	if err != nil {
		return "", err
	}
	normalized, err := worker.Normalize(answer, qc.Answer)
	if err != nil {
		return "", err
	}
	log.Debugf("openai worker %s answered question %s", w.kind, fp)
	w.Complete(fp, normalized)
	return fp, nil
}

// IsDone implements worker.Worker; always true for a known handle.
func (w *Worker) IsDone(_ context.Context, handle string) (bool, error) {
	return w.Done(handle)
}

// Take implements worker.Worker.
func (w *Worker) Take(_ context.Context, handle string) (string, error) {
	return w.SingleShot.Take(handle)
}

// buildChatRequest assembles system/user messages and the structured
// response format for the question.
func (w *Worker) buildChatRequest(qc *question.Config) (openai.ChatCompletionNewParams, error) {
	body, images, err := qc.Markdown()
	if err != nil {
		return openai.ChatCompletionNewParams{}, err
	}
	format, answerSchema, err := answerFormat(qc.Answer)
	if err != nil {
		return openai.ChatCompletionNewParams{}, err
	}
	return openai.ChatCompletionNewParams{
		Model: shared.ChatModel(w.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(worker.Instruction(format)),
			userMessage(body, images),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "answer",
					Strict: openai.Bool(true),
					Schema: map[string]any{
						"type":                 "object",
						"properties":           map[string]any{"answer": answerSchema},
						"required":             []string{"answer"},
						"additionalProperties": false,
					},
				},
			},
		},
	}, nil
}

// userMessage packs the markdown body and any image URLs into one user
// message.
func userMessage(body string, images []string) openai.ChatCompletionMessageParamUnion {
	if len(images) == 0 {
		return openai.UserMessage(body)
	}
	parts := []openai.ChatCompletionContentPartUnionParam{
		{OfText: &openai.ChatCompletionContentPartTextParam{Text: body}},
	}
	for _, src := range images {
		parts = append(parts, openai.ChatCompletionContentPartUnionParam{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{URL: src},
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: parts,
			},
		},
	}
}

// answerFormat maps an answer spec to the prompt's format description
// and the JSON schema of the "answer" property.
func answerFormat(spec question.AnswerSpec) (string, map[string]any, error) {
	switch spec.Type {
	case question.AnswerNumber:
		return "{answer: number}", map[string]any{"type": "number"}, nil
	case question.AnswerText:
		return "{answer: string}", map[string]any{"type": "string"}, nil
	case question.AnswerSelect:
		return "{answer: " + worker.SelectFormat(spec.Options) + "}",
			map[string]any{"type": "string", "enum": spec.Options}, nil
	default:
		return "", nil, fmt.Errorf("%w: unknown answer type %q", question.ErrInvalidQuestion, spec.Type)
	}
}

// decodeAnswer extracts the answer field from the model's JSON output.
// Numbers are transported as decimal strings.
func decodeAnswer(content string) (string, error) {
	var parsed struct {
		Answer any `json:"answer"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return "", fmt.Errorf("openai: decode answer %q: %w", content, err)
	}
	switch v := parsed.Answer.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case nil:
		return "", worker.ErrMissingAnswer
	default:
		return fmt.Sprint(v), nil
	}
}
