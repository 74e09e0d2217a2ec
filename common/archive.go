package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"doccompare/types"
)

// ErrNotArchived is returned by Load when no archived result has the id.
var ErrNotArchived = errors.New("comparison not archived")

// Archive persists comparison results as JSON objects, one per result id
type Archive struct {
	store  ObjectStore
	bucket string
	prefix string
}

// NewArchive stores results under bucket/prefix/<id>.json
func NewArchive(store ObjectStore, bucket, prefix string) *Archive {
	if prefix == "" {
		prefix = "comparisons"
	}
	return &Archive{store: store, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (a *Archive) key(id string) string {
	return path.Join(a.prefix, id+".json")
}

// Save uploads res and returns its object key
func (a *Archive) Save(ctx context.Context, res *types.ComparisonResult) (string, error) {
	if res == nil || res.ID == "" {
		return "", errors.New("archive: result has no id")
	}
	data, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("archive: encode %s: %w", res.ID, err)
	}
	key := a.key(res.ID)
	if err := a.store.Put(ctx, a.bucket, key, bytes.NewReader(data), "application/json"); err != nil {
		return "", fmt.Errorf("archive: put %s: %w", key, err)
	}
	return key, nil
}

// Load fetches an archived result by id
func (a *Archive) Load(ctx context.Context, id string) (*types.ComparisonResult, error) {
	if id == "" || strings.ContainsAny(id, "/\\") {
		return nil, fmt.Errorf("%w: %q", ErrNotArchived, id)
	}
	key := a.key(id)
	ok, err := a.store.Exists(ctx, a.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("archive: head %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotArchived, id)
	}

	body, err := a.store.Get(ctx, a.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("archive: get %s: %w", key, err)
	}
	defer body.Close()

	var res types.ComparisonResult
	if err := json.NewDecoder(body).Decode(&res); err != nil {
		return nil, fmt.Errorf("archive: decode %s: %w", key, err)
	}
	return &res, nil
}
