package fsxs3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/fsx"
)

// fakeS3 answers path-style object requests from memory
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   []string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.TrimPrefix(req.URL.Path, "/")
	f.calls = append(f.calls, req.Method+" "+key)
	header := http.Header{}
	switch req.Method {
	case http.MethodPut:
		f.objects[key] = []byte("stored")
		return &http.Response{StatusCode: http.StatusOK, Header: header, Body: io.NopCloser(bytes.NewReader(nil))}, nil
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			header.Set("Content-Type", "application/xml")
			payload := "<?xml version=\"1.0\"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>"
			return &http.Response{StatusCode: http.StatusNotFound, Header: header, Body: io.NopCloser(strings.NewReader(payload))}, nil
		}
		return &http.Response{StatusCode: http.StatusOK, Header: header, ContentLength: int64(len(body)), Body: io.NopCloser(bytes.NewReader(body))}, nil
	case http.MethodDelete:
		delete(f.objects, key)
		return &http.Response{StatusCode: http.StatusNoContent, Header: header, Body: io.NopCloser(bytes.NewReader(nil))}, nil
	}
	return &http.Response{StatusCode: http.StatusMethodNotAllowed, Header: header, Body: io.NopCloser(bytes.NewReader(nil))}, nil
}

func newTestFS(t *testing.T) (*S3FileSystem, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: make(map[string][]byte)}
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://s3.test.local")
	})
	return NewS3FileSystem(client, "board", "/exports/"), fake
}

func TestWriteUsesPrefixedKey(t *testing.T) {
	fs, fake := newTestFS(t)
	if err := fs.WriteFile(context.Background(), fs.Join("jobs", "all.csv"), []byte("id\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := fake.objects["board/exports/jobs/all.csv"]; !ok {
		t.Fatalf("object not stored under prefixed key, calls=%v", fake.calls)
	}
}

func TestReadAndDelete(t *testing.T) {
	fs, fake := newTestFS(t)
	fake.objects["board/exports/a.csv"] = []byte("x,y\n")

	data, err := fs.ReadFile(context.Background(), "a.csv")
	if err != nil || string(data) != "x,y\n" {
		t.Fatalf("read: %q, %v", data, err)
	}
	if err := fs.DeleteFile(context.Background(), "a.csv"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := fake.objects["board/exports/a.csv"]; ok {
		t.Fatal("object still present")
	}
}

func TestReadMissingIsNotFound(t *testing.T) {
	fs, _ := newTestFS(t)
	if _, err := fs.ReadFile(context.Background(), "missing.csv"); !errx.IsCode(err, fsx.CodeFileNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
