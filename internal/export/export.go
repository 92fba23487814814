package export

import (
	"bytes"
	"context"
	"html"
	"strings"

	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/dom"
)

// ContentType is the content type of exported pages.
const ContentType = "text/html; charset=utf-8"

// Sink stores exported documents.
type Sink interface {
	// Put stores body under key and returns where it was written.
	Put(ctx context.Context, key string, body []byte) (location string, err error)
}

// Target is a parsed export destination.
type Target struct {
	// Bucket is set for s3:// targets.
	Bucket string

	// Key is the object key for S3 targets or the file path otherwise.
	Key string
}

// IsS3 reports whether the target is an S3 object.
func (t Target) IsS3() bool {
	return t.Bucket != ""
}

// String returns the target in the form ParseTarget accepts.
func (t Target) String() string {
	if t.IsS3() {
		return "s3://" + t.Bucket + "/" + t.Key
	}
	return t.Key
}

// ParseTarget parses a filesystem path or an s3://bucket/key URL.
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Target{}, errors.New("W151").WithDetail("The export target is empty.")
	}
	rest, ok := strings.CutPrefix(s, "s3://")
	if !ok {
		if strings.Contains(s, "://") {
			return Target{}, errors.New("W151").
				WithDetail("Unsupported scheme in " + s + ".").
				WithSuggestion("Use a file path or s3://bucket/key")
		}
		return Target{Key: s}, nil
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Target{}, errors.New("W151").
			WithDetail("S3 targets need a bucket and an object key: " + s).
			WithExample("s3://snapshots/weave/counter.html")
	}
	return Target{Bucket: bucket, Key: key}, nil
}

// Options configures Open.
type Options struct {
	// Region is the AWS region for S3 targets. Empty uses the SDK default chain.
	Region string

	// Putter overrides the S3 client. Tests use it to avoid AWS.
	Putter ObjectPutter
}

// Open returns a sink for target and the key to Put under.
func Open(ctx context.Context, target string, opts Options) (Sink, string, error) {
	t, err := ParseTarget(target)
	if err != nil {
		return nil, "", err
	}
	if !t.IsS3() {
		return NewFileSink(""), t.Key, nil
	}
	putter := opts.Putter
	if putter == nil {
		client, err := NewS3Client(ctx, opts.Region)
		if err != nil {
			return nil, "", err
		}
		putter = client
	}
	return NewS3Sink(putter, t.Bucket, ""), t.Key, nil
}

// Page wraps the children of root in a standalone HTML document.
func Page(title string, root *dom.Node, pretty bool) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString(`<meta charset="utf-8">` + "\n")
	buf.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	buf.WriteString("</head>\n<body>\n")
	buf.WriteString(root.InnerHTML(dom.RenderOptions{Pretty: pretty}))
	if !pretty {
		buf.WriteByte('\n')
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
