package transport

import (
	"io"
	"sync"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// Emitter sends events for one file to a listener. A nil listener is allowed.
type Emitter struct {
	file     *File
	listener uploadtypes.Listener
}

// NewEmitter creates an emitter for f.
func NewEmitter(f *File, l uploadtypes.Listener) *Emitter {
	return &Emitter{file: f, listener: l}
}

func (e *Emitter) emit(t uploadtypes.EventType, transferred int64, err error) {
	if e.listener == nil {
		return
	}
	e.listener.OnEvent(uploadtypes.Event{
		ItemID:           e.file.ItemID,
		Type:             t,
		Bucket:           e.file.Bucket,
		Key:              e.file.Key,
		BytesTransferred: transferred,
		TotalBytes:       e.file.Size,
		Err:              err,
	})
}

// Started emits EventStarted.
func (e *Emitter) Started() {
	e.emit(uploadtypes.EventStarted, 0, nil)
}

// Progress emits EventProgress with the running byte total.
func (e *Emitter) Progress(transferred int64) {
	e.emit(uploadtypes.EventProgress, transferred, nil)
}

// Completed emits EventCompleted.
func (e *Emitter) Completed(transferred int64) {
	e.emit(uploadtypes.EventCompleted, transferred, nil)
}

// Failed emits EventFailed.
func (e *Emitter) Failed(transferred int64, err error) {
	e.emit(uploadtypes.EventFailed, transferred, err)
}

// ProgressReader wraps an io.Reader to track upload progress.
type ProgressReader struct {
	reader     io.Reader
	bytesRead  int64
	onProgress func(bytesRead int64)
	mu         sync.Mutex
}

// NewProgressReader wraps r, calling onProgress with the running total after
// every read that returns data.
func NewProgressReader(r io.Reader, onProgress func(bytesRead int64)) *ProgressReader {
	return &ProgressReader{reader: r, onProgress: onProgress}
}

// Read implements io.Reader interface
func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)

	if n > 0 {
		pr.add(int64(n))
	}

	return n, err
}

// BytesRead returns the total bytes read so far
func (pr *ProgressReader) BytesRead() int64 {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.bytesRead
}

func (pr *ProgressReader) add(n int64) {
	pr.mu.Lock()
	pr.bytesRead += n
	bytesRead := pr.bytesRead
	pr.mu.Unlock()

	if pr.onProgress != nil {
		pr.onProgress(bytesRead)
	}
}

// ProgressHook is an io.Reader that consumes nothing: every Read reports
// len(p) bytes as transferred. Clients such as minio-go feed the bytes they
// have sent into a hook reader instead of wrapping the body.
type ProgressHook struct {
	ProgressReader
}

// NewProgressHook creates a hook calling onProgress with the running total.
func NewProgressHook(onProgress func(bytesRead int64)) *ProgressHook {
	return &ProgressHook{ProgressReader{onProgress: onProgress}}
}

// Read implements io.Reader interface
func (h *ProgressHook) Read(p []byte) (int, error) {
	if len(p) > 0 {
		h.add(int64(len(p)))
	}
	return len(p), nil
}
