package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/facetdex/internal/db"
)

// getBatch bounds the GETs pipelined in one DoMulti round-trip.
const getBatch = 100

// Put writes the document with SET ... GET; a nil previous value means it was created.
func (s *Store) Put(ctx context.Context, doc *db.Document) (bool, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return false, &db.Error{Op: db.OpEncode, Err: err}
	}
	cmd := s.b().Set().Key(s.key(doc.Type, doc.ID)).Value(string(data)).Get().Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return true, nil
		}
		return false, &db.Error{Op: db.OpSet, Err: err}
	}
	return false, nil
}

// Get loads one document.
func (s *Store) Get(ctx context.Context, docType, id string) (*db.Document, error) {
	cmd := s.b().Get().Key(s.key(docType, id)).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return decode(data)
}

// Delete removes one document.
func (s *Store) Delete(ctx context.Context, docType, id string) error {
	cmd := s.b().Del().Key(s.key(docType, id)).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if n == 0 {
		return db.ErrKeyNotFound
	}
	return nil
}

// scan iterates keys matching a pattern.
func (s *Store) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := s.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// load fetches every document of a type. Keys deleted between SCAN and GET are skipped.
func (s *Store) load(ctx context.Context, docType string) ([]*db.Document, error) {
	keys, err := s.scan(ctx, s.pattern(docType))
	if err != nil {
		return nil, err
	}

	docs := make([]*db.Document, 0, len(keys))
	for start := 0; start < len(keys); start += getBatch {
		end := min(start+getBatch, len(keys))
		cmds := make(rueidis.Commands, 0, end-start)
		for _, k := range keys[start:end] {
			cmds = append(cmds, s.b().Get().Key(k).Build())
		}

		for i, res := range s.client.DoMulti(ctx, cmds...) {
			data, err := res.AsBytes()
			if err != nil {
				if rueidis.IsRedisNil(err) {
					continue
				}
				return nil, &db.Error{Op: db.OpGet, Err: fmt.Errorf("key %s: %w", keys[start+i], err)}
			}
			d, err := decode(data)
			if err != nil {
				return nil, err
			}
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func decode(data []byte) (*db.Document, error) {
	var d db.Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, &db.Error{Op: db.OpDecode, Err: err}
	}
	return &d, nil
}
