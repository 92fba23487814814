package export

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/dom"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{in: "dist/index.html", want: Target{Key: "dist/index.html"}},
		{in: "  /tmp/out.html ", want: Target{Key: "/tmp/out.html"}},
		{in: "s3://snapshots/weave/counter.html", want: Target{Bucket: "snapshots", Key: "weave/counter.html"}},
		{in: "", wantErr: true},
		{in: "s3://", wantErr: true},
		{in: "s3://bucket", wantErr: true},
		{in: "s3://bucket/", wantErr: true},
		{in: "s3://bucket/dir/", wantErr: true},
		{in: "gs://bucket/key", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		if tt.wantErr {
			if !errors.Is(err, "W151") {
				t.Errorf("ParseTarget(%q) error = %v, want W151", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTarget(%q) error = %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseTarget(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestTargetString(t *testing.T) {
	for _, s := range []string{"out.html", "s3://b/k.html"} {
		target, err := ParseTarget(s)
		if err != nil {
			t.Fatalf("ParseTarget(%q) error = %v", s, err)
		}
		if got := target.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir)

	location, err := sink.Put(context.Background(), "nested/page.html", []byte("<p>hi</p>"))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if want := filepath.Join(dir, "nested", "page.html"); location != want {
		t.Errorf("location = %q, want %q", location, want)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "<p>hi</p>" {
		t.Errorf("content = %q", data)
	}
}

func TestFileSinkRejectsEscapingKeys(t *testing.T) {
	sink := NewFileSink(t.TempDir())
	for _, key := range []string{"../out.html", "a/../../out.html", ""} {
		if _, err := sink.Put(context.Background(), key, nil); !errors.Is(err, "W151") {
			t.Errorf("Put(%q) error = %v, want W151", key, err)
		}
	}
}

func TestFileSinkCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileSink(t.TempDir()).Put(ctx, "x.html", nil)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("Put() error = %v, want context.Canceled", err)
	}
}

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink(t *testing.T) {
	putter := &fakePutter{}
	sink := NewS3Sink(putter, "snapshots", "weave/")
	sink.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	location, err := sink.Put(context.Background(), "counter.html", []byte("<h1>1</h1>"))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if location != "s3://snapshots/weave/counter.html" {
		t.Errorf("location = %q", location)
	}
	if len(putter.inputs) != 1 {
		t.Fatalf("PutObject calls = %d, want 1", len(putter.inputs))
	}
	in := putter.inputs[0]
	if *in.Bucket != "snapshots" || *in.Key != "weave/counter.html" {
		t.Errorf("bucket/key = %s/%s", *in.Bucket, *in.Key)
	}
	if *in.ContentType != ContentType {
		t.Errorf("ContentType = %q, want %q", *in.ContentType, ContentType)
	}
	if got := in.Metadata["rendered-at"]; got != "2026-03-04T05:06:07Z" {
		t.Errorf("rendered-at = %q", got)
	}
	if putter.bodies[0] != "<h1>1</h1>" {
		t.Errorf("body = %q", putter.bodies[0])
	}
}

func TestS3SinkFailure(t *testing.T) {
	cause := stderrors.New("access denied")
	sink := NewS3Sink(&fakePutter{err: cause}, "b", "")

	_, err := sink.Put(context.Background(), "k.html", nil)
	if !errors.Is(err, "W150") {
		t.Errorf("Put() error = %v, want W150", err)
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("Put() error does not wrap cause: %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	sink, key, err := Open(ctx, "out/page.html", Options{})
	if err != nil {
		t.Fatalf("Open(file) error = %v", err)
	}
	if _, ok := sink.(*FileSink); !ok || key != "out/page.html" {
		t.Errorf("Open(file) = %T, %q", sink, key)
	}

	putter := &fakePutter{}
	sink, key, err = Open(ctx, "s3://b/dir/page.html", Options{Putter: putter})
	if err != nil {
		t.Fatalf("Open(s3) error = %v", err)
	}
	location, err := sink.Put(ctx, key, []byte("x"))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if location != "s3://b/dir/page.html" {
		t.Errorf("location = %q", location)
	}

	if _, _, err := Open(ctx, "ftp://x/y", Options{}); !errors.Is(err, "W151") {
		t.Errorf("Open(ftp) error = %v, want W151", err)
	}
}

func TestPage(t *testing.T) {
	doc := dom.New()
	root := doc.Container("main")
	p, _ := doc.CreateNode("p")
	txt, _ := doc.CreateTextNode("a < b")
	if err := doc.AppendChild(p, txt); err != nil {
		t.Fatal(err)
	}
	if err := doc.AppendChild(root, p); err != nil {
		t.Fatal(err)
	}

	got := string(Page("Tom & Jerry", root, false))
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Tom &amp; Jerry</title>",
		"<body>\n<p>a &lt; b</p>\n</body>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Page() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "data-nid") {
		t.Error("Page() contains node IDs")
	}
}
