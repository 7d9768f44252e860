//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

// Package cache persists every answer ever produced for a question, one
// JSON file per template fingerprint. Repeated asks accumulate records;
// entries are never deleted or mutated in place. The session layer keeps
// the reservation set that turns accumulation into consumption.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"trpc.group/trpc-go/trpc-haio-go/fingerprint"
	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// DirName is the cache directory created beside the invoking program.
const DirName = "haio_cache"

// Record is one cached answer.
type Record struct {
	Client worker.Kind `json:"client"`
	Answer string      `json:"answer"`
}

// dataListEntry holds every answer recorded for one data list.
type dataListEntry struct {
	DataList   question.DataList `json:"data_list"`
	AnswerList map[string]Record `json:"answer_list"`
}

// templateFile is the on-disk layout of one cache file.
type templateFile struct {
	QuestionTemplate question.Template         `json:"question_template"`
	DataLists        map[string]*dataListEntry `json:"data_lists"`
}

// Store is an answer cache rooted at a directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the haio_cache directory beside the invoking
// program.
func DefaultDir() string {
	exe := os.Args[0]
	if p, err := os.Executable(); err == nil {
		exe = p
	}
	return filepath.Join(filepath.Dir(exe), DirName)
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// filePath returns the cache file path for t, creating the directory and
// a skeleton file on first use.
func (s *Store) filePath(t question.Template) (string, error) {
	tfp, err := fingerprint.Of(t)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("cache: create dir: %w", err)
	}
	path := filepath.Join(s.dir, tfp)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		skeleton := templateFile{
			QuestionTemplate: t,
			DataLists:        map[string]*dataListEntry{},
		}
		if err := s.write(path, &skeleton); err != nil {
			return "", err
		}
	} else if err != nil {
		return "", fmt.Errorf("cache: stat %s: %w", path, err)
	}
	return path, nil
}

// load reads the cache file for t, creating it on demand.
func (s *Store) load(t question.Template) (*templateFile, string, error) {
	path, err := s.filePath(t)
	if err != nil {
		return nil, "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("cache: read %s: %w", path, err)
	}
	var tf templateFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return nil, "", fmt.Errorf("cache: decode %s: %w", path, err)
	}
	if tf.DataLists == nil {
		tf.DataLists = map[string]*dataListEntry{}
	}
	return &tf, path, nil
}

// write serialises tf to path. Last write wins; external sessions are
// tolerated because every mutation re-reads first.
func (s *Store) write(path string, tf *templateFile) error {
	raw, err := json.Marshal(tf)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("cache: write %s: %w", path, err)
	}
	return nil
}

// EnsureDataEntry makes sure the answer-list container for (t, d)
// exists.
func (s *Store) EnsureDataEntry(t question.Template, d question.DataList) error {
	tf, path, err := s.load(t)
	if err != nil {
		return err
	}
	dfp, err := fingerprint.Of(d)
	if err != nil {
		return err
	}
	if _, ok := tf.DataLists[dfp]; ok {
		return nil
	}
	tf.DataLists[dfp] = &dataListEntry{
		DataList:   append(question.DataList(nil), d...),
		AnswerList: map[string]Record{},
	}
	return s.write(path, tf)
}

// FindUnused returns the first record for (t, d) produced by kind whose
// id is not in reserved. Records are scanned in sorted-id order so the
// choice is stable for a given file.
func (s *Store) FindUnused(
	t question.Template,
	d question.DataList,
	kind worker.Kind,
	reserved map[string]struct{},
) (string, *Record, error) {
	if err := s.EnsureDataEntry(t, d); err != nil {
		return "", nil, err
	}
	tf, _, err := s.load(t)
	if err != nil {
		return "", nil, err
	}
	dfp, err := fingerprint.Of(d)
	if err != nil {
		return "", nil, err
	}
	entry := tf.DataLists[dfp]
	ids := make([]string, 0, len(entry.AnswerList))
	for id := range entry.AnswerList {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, used := reserved[id]; used {
			continue
		}
		if rec := entry.AnswerList[id]; rec.Client == kind {
			return id, &rec, nil
		}
	}
	return "", nil, nil
}

// Get returns the answer stored under id for (t, d).
func (s *Store) Get(t question.Template, d question.DataList, id string) (string, error) {
	tf, _, err := s.load(t)
	if err != nil {
		return "", err
	}
	dfp, err := fingerprint.Of(d)
	if err != nil {
		return "", err
	}
	entry, ok := tf.DataLists[dfp]
	if !ok {
		return "", fmt.Errorf("cache: no entry for data list %s", dfp)
	}
	rec, ok := entry.AnswerList[id]
	if !ok {
		return "", fmt.Errorf("cache: no record %s for data list %s", id, dfp)
	}
	return rec.Answer, nil
}

// Put persists a newly produced answer under id. The file is re-read
// before writing so concurrent external sessions lose at most their own
// last write.
func (s *Store) Put(t question.Template, d question.DataList, kind worker.Kind, id, answer string) error {
	if err := s.EnsureDataEntry(t, d); err != nil {
		return err
	}
	tf, path, err := s.load(t)
	if err != nil {
		return err
	}
	dfp, err := fingerprint.Of(d)
	if err != nil {
		return err
	}
	entry, ok := tf.DataLists[dfp]
	if !ok {
		entry = &dataListEntry{
			DataList:   append(question.DataList(nil), d...),
			AnswerList: map[string]Record{},
		}
		tf.DataLists[dfp] = entry
	}
	entry.AnswerList[id] = Record{Client: kind, Answer: answer}
	return s.write(path, tf)
}

// Records returns all records for (t, d) of the given kind, keyed by id.
// It exists for tests and diagnostics.
func (s *Store) Records(t question.Template, d question.DataList, kind worker.Kind) (map[string]Record, error) {
	tf, _, err := s.load(t)
	if err != nil {
		return nil, err
	}
	dfp, err := fingerprint.Of(d)
	if err != nil {
		return nil, err
	}
	out := map[string]Record{}
	if entry, ok := tf.DataLists[dfp]; ok {
		for id, rec := range entry.AnswerList {
			if rec.Client == kind {
				out[id] = rec
			}
		}
	}
	return out, nil
}
