package sim

import (
	"sync"

	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
)

type presentation struct {
	uid      whitelist.UID
	readFail bool
}

// TagReader is a queued tag reader. Each presented tag is reported once.
type TagReader struct {
	mu    sync.Mutex
	queue []presentation
	reads int
}

// NewTagReader creates an idle reader.
func NewTagReader() *TagReader {
	return &TagReader{}
}

// Present queues uid to be reported on the next poll.
func (r *TagReader) Present(uid whitelist.UID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, presentation{uid: uid})
}

// PresentUnreadable queues a tag whose serial read fails.
func (r *TagReader) PresentUnreadable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, presentation{readFail: true})
}

// Pending returns the number of queued tags.
func (r *TagReader) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Reads returns the number of successful serial reads.
func (r *TagReader) Reads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

// TagPresent reports whether a tag is queued.
func (r *TagReader) TagPresent() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue) > 0
}

// ReadSerial dequeues the next tag.
func (r *TagReader) ReadSerial() (whitelist.UID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) == 0 {
		return whitelist.UID{}, false
	}
	p := r.queue[0]
	r.queue = r.queue[1:]
	if p.readFail {
		return whitelist.UID{}, false
	}
	r.reads++
	return p.uid, true
}
