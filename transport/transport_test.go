package transport

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs/billy"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

type closeCounter struct {
	closed int
}

func (c *closeCounter) Upload(context.Context, *File, uploadtypes.Listener) (*Result, error) {
	return &Result{}, nil
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestFile_Description(t *testing.T) {
	f := &File{Bucket: "b", Key: "k/a.txt"}
	assert.Equal(t, "Uploading to b/k/a.txt", f.Description())
}

func TestStatic_DoesNotCloseSharedTransport(t *testing.T) {
	inner := &closeCounter{}
	factory := Static(inner)

	tr, err := factory.Open(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	assert.Equal(t, 0, inner.closed)
}

func TestFactoryFunc_PassesEnvironment(t *testing.T) {
	var got uploadtypes.Environment
	factory := FactoryFunc(func(_ context.Context, env uploadtypes.Environment) (Transport, error) {
		got = env
		return &closeCounter{}, nil
	})

	_, err := factory.Open(context.Background(), uploadtypes.Environment{"AWS_REGION": "eu-west-1"})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", got["AWS_REGION"])
}

func TestEmitter(t *testing.T) {
	var (
		mu     sync.Mutex
		events []uploadtypes.Event
	)
	l := uploadtypes.ListenerFunc(func(e uploadtypes.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})

	f := &File{ItemID: "id-1", Bucket: "b", Key: "k", Size: 10}
	e := NewEmitter(f, l)
	e.Started()
	e.Progress(4)
	e.Completed(10)

	require.Len(t, events, 3)
	assert.Equal(t, uploadtypes.EventStarted, events[0].Type)
	assert.Equal(t, uploadtypes.EventProgress, events[1].Type)
	assert.Equal(t, int64(4), events[1].BytesTransferred)
	assert.Equal(t, uploadtypes.EventCompleted, events[2].Type)
	for _, ev := range events {
		assert.Equal(t, "id-1", ev.ItemID)
		assert.Equal(t, int64(10), ev.TotalBytes)
	}

	// nil listener must not panic
	NewEmitter(f, nil).Failed(0, assert.AnError)
}

func TestProgressReader(t *testing.T) {
	var totals []int64
	pr := NewProgressReader(strings.NewReader("hello world"), func(n int64) {
		totals = append(totals, n)
	})

	buf := make([]byte, 4)
	for {
		_, err := pr.Read(buf)
		if err != nil {
			break
		}
	}

	assert.Equal(t, int64(11), pr.BytesRead())
	assert.Equal(t, []int64{4, 8, 11}, totals)
}

func TestProgressHook(t *testing.T) {
	var last int64
	h := NewProgressHook(func(n int64) { last = n })

	n, err := h.Read(make([]byte, 7))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, _ = h.Read(make([]byte, 3))
	assert.Equal(t, int64(10), last)
	assert.Equal(t, int64(10), h.BytesRead())
}

func TestDetectContentType(t *testing.T) {
	fs := billy.NewInMemoryFS()
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	tests := []struct {
		name    string
		path    string
		content []byte
		want    string
	}{
		{"sniffed png", "/f/image.bin", png, "image/png"},
		{"sniffed text", "/f/notes", []byte("plain words"), "text/plain; charset=utf-8"},
		{"empty falls back to extension", "/f/page.html", nil, "text/html; charset=utf-8"},
		{"unknown binary unknown extension", "/f/blob.zzz", []byte{0x00, 0x01, 0x02, 0xff}, "application/octet-stream"},
		{"text with unknown extension keeps sniffed type", "/f/notes.zzz", []byte("plain words"), "text/plain; charset=utf-8"},
		{"stylesheet uses extension", "/f/site.css", []byte("body { margin: 0 }"), "text/css; charset=utf-8"},
		{"binary sniff loses to extension", "/f/page.html", []byte{0x00, 0x01}, "text/html; charset=utf-8"},
		{"specific sniff wins over extension", "/f/image.txt", png, "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, fs.WriteFile(tt.path, tt.content, 0o644))
			f, err := fs.Open(tt.path)
			require.NoError(t, err)
			defer func() { _ = f.Close() }()

			assert.Equal(t, tt.want, DetectContentType(f, tt.path))
		})
	}
}
