package service

import (
	"sync"

	"github.com/google/uuid"
)

// IndexNotifier lets the upload path block until the consumer finishes
// indexing a document. One waiter per document id.
type IndexNotifier struct {
	mu      sync.Mutex
	waiters map[uuid.UUID]chan error
}

func NewIndexNotifier() *IndexNotifier {
	return &IndexNotifier{
		waiters: make(map[uuid.UUID]chan error),
	}
}

// Register returns a channel that receives the indexing outcome exactly once.
func (n *IndexNotifier) Register(documentId uuid.UUID) <-chan error {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan error, 1)
	n.waiters[documentId] = ch
	return ch
}

// Notify delivers the outcome to the registered waiter, if any.
func (n *IndexNotifier) Notify(documentId uuid.UUID, err error) {
	n.mu.Lock()
	ch, ok := n.waiters[documentId]
	if ok {
		delete(n.waiters, documentId)
	}
	n.mu.Unlock()

	if ok {
		ch <- err
	}
}

// Forget drops a waiter without signalling, used when the uploader gave up.
func (n *IndexNotifier) Forget(documentId uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.waiters, documentId)
}
