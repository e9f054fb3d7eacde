package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/transport"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// MockTransport is a mock implementation of transport.Transport.
// With no UploadFunc it reads the whole file, emits the usual events and succeeds.
type MockTransport struct {
	UploadFunc func(context.Context, *transport.File, uploadtypes.Listener) (*transport.Result, error)
	CloseFunc  func() error

	mu      sync.Mutex
	uploads []*transport.File
	bodies  map[string][]byte
	closed  int
}

// Upload records the call and delegates to UploadFunc when set.
func (m *MockTransport) Upload(
	ctx context.Context,
	f *transport.File,
	l uploadtypes.Listener,
) (*transport.Result, error) {
	m.mu.Lock()
	m.uploads = append(m.uploads, f)
	m.mu.Unlock()

	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, f, l)
	}
	return m.defaultUpload(f, l)
}

func (m *MockTransport) defaultUpload(f *transport.File, l uploadtypes.Listener) (*transport.Result, error) {
	events := transport.NewEmitter(f, l)

	file, err := f.Open()
	if err != nil {
		events.Failed(0, err)
		return nil, err
	}
	defer func() { _ = file.Close() }()

	events.Started()
	body, err := io.ReadAll(transport.NewProgressReader(file, events.Progress))
	if err != nil {
		events.Failed(0, err)
		return nil, err
	}

	m.mu.Lock()
	if m.bodies == nil {
		m.bodies = make(map[string][]byte)
	}
	m.bodies[f.Bucket+"/"+f.Key] = body
	m.mu.Unlock()

	events.Completed(int64(len(body)))
	return &transport.Result{ETag: "etag-" + f.Key, Size: int64(len(body))}, nil
}

// Close records the call and delegates to CloseFunc when set.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	m.closed++
	m.mu.Unlock()

	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Uploads returns the files handed to Upload, in call order.
func (m *MockTransport) Uploads() []*transport.File {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*transport.File, len(m.uploads))
	copy(out, m.uploads)
	return out
}

// Keys returns the destination keys handed to Upload.
func (m *MockTransport) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.uploads))
	for _, f := range m.uploads {
		keys = append(keys, f.Key)
	}
	return keys
}

// Body returns the bytes the default upload read for bucket/key.
func (m *MockTransport) Body(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bodies[name]
	return b, ok
}

// Closed returns how many times Close was called.
func (m *MockTransport) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockFactory hands out one transport and records how it was opened.
type MockFactory struct {
	Transport transport.Transport
	OpenErr   error

	mu    sync.Mutex
	opens int
	envs  []uploadtypes.Environment
}

// Open implements transport.Factory.
//
//nolint:ireturn // Factory.Open returns the Transport interface.
func (f *MockFactory) Open(_ context.Context, env uploadtypes.Environment) (transport.Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	f.envs = append(f.envs, env)
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return f.Transport, nil
}

// Opens returns how many times Open was called.
func (f *MockFactory) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

// Environments returns the environments Open received.
func (f *MockFactory) Environments() []uploadtypes.Environment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uploadtypes.Environment, len(f.envs))
	copy(out, f.envs)
	return out
}
