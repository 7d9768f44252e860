//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-haio-go/fingerprint"
	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

func testTemplate() question.Template {
	return question.Template{
		Title:    "t",
		Question: []question.Node{question.Paragraph(question.Slot(0))},
		Answer:   question.AnswerSpec{Type: question.AnswerText},
	}
}

func TestPutAccumulatesRecords(t *testing.T) {
	store := NewStore(t.TempDir())
	tmpl := testTemplate()
	d := question.DataList{"x"}

	require.NoError(t, store.Put(tmpl, d, worker.OpenAI, "id-1", "a"))
	require.NoError(t, store.Put(tmpl, d, worker.OpenAI, "id-2", "b"))

	recs, err := store.Records(tmpl, d, worker.OpenAI)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "a", recs["id-1"].Answer)
	assert.Equal(t, "b", recs["id-2"].Answer)
}

func TestFindUnusedConsumption(t *testing.T) {
	store := NewStore(t.TempDir())
	tmpl := testTemplate()
	d := question.DataList{"x"}

	require.NoError(t, store.Put(tmpl, d, worker.OpenAI, "id-1", "a"))
	require.NoError(t, store.Put(tmpl, d, worker.OpenAI, "id-2", "b"))

	reserved := map[string]struct{}{}
	id1, rec1, err := store.FindUnused(tmpl, d, worker.OpenAI, reserved)
	require.NoError(t, err)
	require.NotNil(t, rec1)
	reserved[id1] = struct{}{}

	id2, rec2, err := store.FindUnused(tmpl, d, worker.OpenAI, reserved)
	require.NoError(t, err)
	require.NotNil(t, rec2)
	assert.NotEqual(t, id1, id2)
	reserved[id2] = struct{}{}

	_, rec3, err := store.FindUnused(tmpl, d, worker.OpenAI, reserved)
	require.NoError(t, err)
	assert.Nil(t, rec3)
}

func TestFindUnusedFiltersByKind(t *testing.T) {
	store := NewStore(t.TempDir())
	tmpl := testTemplate()
	d := question.DataList{"x"}

	require.NoError(t, store.Put(tmpl, d, worker.Human, "id-h", "human answer"))

	_, rec, err := store.FindUnused(tmpl, d, worker.OpenAI, map[string]struct{}{})
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, rec, err = store.FindUnused(tmpl, d, worker.Human, map[string]struct{}{})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "human answer", rec.Answer)
}

func TestFileLayout(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	tmpl := testTemplate()
	d := question.DataList{"x"}
	require.NoError(t, store.Put(tmpl, d, worker.OpenAI, "id-1", "a"))

	tfp, err := fingerprint.Of(tmpl)
	require.NoError(t, err)
	raw, err := os.ReadFile(filepath.Join(dir, tfp))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "question_template")
	assert.Contains(t, decoded, "data_lists")

	dfp, err := fingerprint.Of(d)
	require.NoError(t, err)
	var lists map[string]struct {
		DataList   question.DataList `json:"data_list"`
		AnswerList map[string]Record `json:"answer_list"`
	}
	require.NoError(t, json.Unmarshal(decoded["data_lists"], &lists))
	require.Contains(t, lists, dfp)
	assert.Equal(t, d, lists[dfp].DataList)
	assert.Equal(t, Record{Client: worker.OpenAI, Answer: "a"}, lists[dfp].AnswerList["id-1"])
}

func TestGetUnknownRecord(t *testing.T) {
	store := NewStore(t.TempDir())
	tmpl := testTemplate()
	d := question.DataList{"x"}
	require.NoError(t, store.EnsureDataEntry(tmpl, d))

	_, err := store.Get(tmpl, d, "missing")
	assert.Error(t, err)
}
