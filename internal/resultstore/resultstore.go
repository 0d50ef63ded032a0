// Package resultstore persists enhanced feature bundles as JSON objects
// in a blob storage bucket, addressed by sample identity.
package resultstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// Sample identifies the executable file a feature bundle was extracted
// from. SHA256 is the hex digest of the file contents; Name is a
// human-readable label (usually the original filename) and may be empty.
type Sample struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256"`
}

// ResultStore writes results to a gocloud.dev blob bucket, identified by
// URL (file://, gs:// or s3:// schemes are registered).
type ResultStore struct {
	bucket        string
	basePath      string
	constructPath bool
}

type (
	Option interface{ set(*ResultStore) }
	option func(*ResultStore) // option implements Option.
)

func (o option) set(rs *ResultStore) { o(rs) }

// ConstructPath will cause Save() to append a suffix to the base path
// derived from the sample's SHA256, sharding objects by digest prefix.
func ConstructPath() Option {
	return option(func(rs *ResultStore) { rs.constructPath = true })
}

// BasePath sets the base path used while saving files to storage.
func BasePath(base string) Option {
	return option(func(rs *ResultStore) { rs.basePath = base })
}

func New(bucket string, options ...Option) *ResultStore {
	rs := &ResultStore{
		bucket: bucket,
	}
	for _, o := range options {
		o.set(rs)
	}
	return rs
}

func (rs *ResultStore) String() string {
	s := rs.bucket + "/" + rs.basePath
	if rs.constructPath {
		s += "+"
	}
	return s
}

func (rs *ResultStore) openBucket(ctx context.Context) (*blob.Bucket, error) {
	return blob.OpenBucket(ctx, rs.bucket)
}

func (rs *ResultStore) generatePath(s Sample) string {
	p := rs.basePath
	if !rs.constructPath {
		return p
	}
	if len(s.SHA256) >= 2 {
		return path.Join(p, s.SHA256[:2], s.SHA256)
	}
	return path.Join(p, s.Name)
}

// envelope is the stored JSON document: sample identity, creation time
// and the feature payload.
type envelope struct {
	Sample           Sample `json:"sample"`
	CreatedTimestamp int64  `json:"created_timestamp"`
	Features         any    `json:"features"`
}

// SaveWithFilename saves features to the bucket with the given filename.
func (rs *ResultStore) SaveWithFilename(ctx context.Context, s Sample, filename string, features any) error {
	if filename == "" {
		return errors.New("filename cannot be empty")
	}

	doc := &envelope{
		Sample:           s,
		CreatedTimestamp: time.Now().UTC().Unix(),
		Features:         features,
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	bkt, err := rs.openBucket(ctx)
	if err != nil {
		return err
	}
	defer bkt.Close()

	uploadPath := path.Join(rs.generatePath(s), filename)
	slog.InfoContext(ctx, "Uploading enhanced features",
		"bucket", rs.bucket,
		"path", uploadPath)

	w, err := bkt.NewWriter(ctx, uploadPath, nil)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	return w.Close()
}

// MakeFilename returns the default filename used for saving enhanced
// features, with an optional label. The sample name is used as the base
// name when present; the label, when nonempty, is prepended.
func MakeFilename(s Sample, label string) string {
	prefix := "features"
	if s.Name != "" {
		prefix = s.Name
	}
	if label != "" {
		prefix = label + "-" + prefix
	}
	return prefix + ".json"
}

// Save saves the features with the default filename.
func (rs *ResultStore) Save(ctx context.Context, s Sample, features any) error {
	return rs.SaveWithFilename(ctx, s, MakeFilename(s, ""), features)
}
