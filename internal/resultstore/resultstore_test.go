package resultstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileBucket(t *testing.T) {
	tmpDir := t.TempDir()

	testBucketURL := "file://" + tmpDir

	testKeys := []string{
		"test1.txt",
		"testdir/test2.txt",
	}

	ctx := context.Background()

	rs := New(testBucketURL)
	if rs == nil {
		t.Fatalf("failed to create resultstore with URL %s (invalid url)", testBucketURL)
	}

	bucket, err := rs.openBucket(ctx)
	if err != nil {
		t.Fatalf("failed to open bucket: %v", err)
	}

	for _, key := range testKeys {
		t.Run(key, func(t *testing.T) {
			writer, err := bucket.NewWriter(ctx, key, nil)
			if err != nil {
				t.Errorf("failed to create writer: %v", err)
			}

			if _, err := writer.Write([]byte("test bytes")); err != nil {
				t.Errorf("failed to write to file: %v", err)
			}

			if err := writer.Close(); err != nil {
				t.Errorf("failed to close writer: %v", err)
			}
		})
	}

	if err := bucket.Close(); err != nil {
		t.Errorf("failed to close bucket: %v", err)
	}
}

func TestSaveWritesJSONEnvelope(t *testing.T) {
	tmpDir := t.TempDir()

	sample := Sample{
		Name:   "dropper.exe",
		SHA256: "ab56b4d92b40713acc5af89985d4b786a1b5e6f9c17d2f7c3526e7bc0e53113b",
	}

	rs := New("file://"+tmpDir, ConstructPath())
	payload := map[string]float64{"derived_overallComplexity": 0.5}

	if err := rs.Save(context.Background(), sample, payload); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	savedPath := filepath.Join(tmpDir, "ab", sample.SHA256, "dropper.exe.json")
	data, err := os.ReadFile(savedPath)
	if err != nil {
		t.Fatalf("could not read saved result: %v", err)
	}

	var doc envelope
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved result is not valid JSON: %v", err)
	}
	if doc.Sample != sample {
		t.Errorf("saved sample = %+v; want %+v", doc.Sample, sample)
	}
	if doc.CreatedTimestamp == 0 {
		t.Errorf("saved envelope has no created timestamp")
	}
	features, ok := doc.Features.(map[string]any)
	if !ok {
		t.Fatalf("saved features have unexpected type %T", doc.Features)
	}
	if features["derived_overallComplexity"] != 0.5 {
		t.Errorf("saved features = %v; want %v", features, payload)
	}
}

func TestMakeFilename(t *testing.T) {
	tests := []struct {
		name     string
		sample   Sample
		label    string
		expected string
	}{
		{name: "name only", sample: Sample{Name: "a.exe"}, expected: "a.exe.json"},
		{name: "no name", sample: Sample{}, expected: "features.json"},
		{name: "label and name", sample: Sample{Name: "a.exe"}, label: "static", expected: "static-a.exe.json"},
		{name: "label only", sample: Sample{}, label: "static", expected: "static-features.json"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := MakeFilename(test.sample, test.label)
			if actual != test.expected {
				t.Errorf("MakeFilename(%+v, %q) = %q; want %q", test.sample, test.label, actual, test.expected)
			}
		})
	}
}
