//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package question

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTemplate() Template {
	return Template{
		Title:       "t",
		Description: "d",
		Question: []Node{
			Heading(2, Slot(0)),
			Paragraph(String("static")),
			Image(Slot(1)),
		},
		Answer: AnswerSpec{Type: AnswerText},
	}
}

func TestInsertDataResolvesSlots(t *testing.T) {
	tmpl := sampleTemplate()
	qc, err := InsertData(tmpl, DataList{"Hi", "http://example.com/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "Hi", qc.Question[0].Value.Literal())
	assert.Equal(t, "static", qc.Question[1].Value.Literal())
	assert.Equal(t, "http://example.com/a.png", qc.Question[2].Src.Literal())
}

func TestInsertDataDoesNotMutateTemplate(t *testing.T) {
	tmpl := sampleTemplate()
	before, err := json.Marshal(tmpl)
	require.NoError(t, err)
	_, err = InsertData(tmpl, DataList{"Hi", "src"})
	require.NoError(t, err)
	after, err := json.Marshal(tmpl)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestInsertDataSlotOutOfRange(t *testing.T) {
	tmpl := sampleTemplate()
	_, err := InsertData(tmpl, DataList{"only one"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestNodeJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"heading slot", Heading(2, Slot(0)), `{"tag":"h2","value":0}`},
		{"paragraph literal", Paragraph(String("hi")), `{"tag":"p","value":"hi"}`},
		{"image", Image(String("u")), `{"tag":"img","src":"u"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.node)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))

			var back Node
			require.NoError(t, json.Unmarshal(raw, &back))
			assert.Equal(t, tt.node.Tag, back.Tag)
			assert.Equal(t, tt.node.Value, back.Value)
			assert.Equal(t, tt.node.Src, back.Src)
		})
	}
}

func TestTemplateValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Template)
		wantErr bool
	}{
		{"valid", func(*Template) {}, false},
		{"unknown tag", func(tm *Template) { tm.Question[0].Tag = "h9" }, true},
		{"missing value", func(tm *Template) { tm.Question[1].Value = Value{} }, true},
		{"unknown answer type", func(tm *Template) { tm.Answer.Type = "date" }, true},
		{"empty select options", func(tm *Template) {
			tm.Answer = AnswerSpec{Type: AnswerSelect}
		}, true},
		{"duplicate select options", func(tm *Template) {
			tm.Answer = AnswerSpec{Type: AnswerSelect, Options: []string{"a", "a"}}
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := sampleTemplate()
			tt.mutate(&tmpl)
			err := tmpl.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuestion)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigValidateRejectsUnresolvedSlots(t *testing.T) {
	cfg := Config{
		Title:    "t",
		Question: []Node{Paragraph(Slot(0))},
		Answer:   AnswerSpec{Type: AnswerText},
	}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidQuestion)
}

func TestMarkdownRendering(t *testing.T) {
	qc, err := InsertData(sampleTemplate(), DataList{"Hello", "http://img"})
	require.NoError(t, err)
	body, images, err := qc.Markdown()
	require.NoError(t, err)
	assert.Contains(t, body, "## Hello")
	assert.Contains(t, body, "static")
	assert.Equal(t, []string{"http://img"}, images)
}
