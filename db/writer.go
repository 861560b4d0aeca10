package db

import (
	"context"
	"log"
)

// writeOp represents a mutating database operation awaiting execution
type writeOp struct {
	Execute func() error
	Result  chan error
}

// writeOpWithResult represents a mutating operation that returns a value
type writeOpWithResult struct {
	Execute func() (interface{}, error)
	Result  chan writeResult
}

// writeResult contains the result of an operation
type writeResult struct {
	Data  interface{}
	Error error
}

// Writer serializes mutating statements through a single worker
// goroutine. SQLite allows only one writer at a time; funneling writes
// here keeps concurrent requests from tripping over lock contention.
// Reads go straight to the pool.
type Writer struct {
	opQueue       chan writeOp
	resultOpQueue chan writeOpWithResult
	stopping      chan struct{}
}

// NewWriter creates a Writer and starts its worker goroutine
func NewWriter() *Writer {
	w := &Writer{
		opQueue:       make(chan writeOp, 100),
		resultOpQueue: make(chan writeOpWithResult, 100),
		stopping:      make(chan struct{}),
	}

	go w.worker()
	log.Println("Database write serializer started")

	return w
}

// worker processes operations one at a time
func (w *Writer) worker() {
	for {
		select {
		case op := <-w.opQueue:
			op.Result <- op.Execute()
		case op := <-w.resultOpQueue:
			data, err := op.Execute()
			op.Result <- writeResult{Data: data, Error: err}
		case <-w.stopping:
			return
		}
	}
}

// Do executes a mutating operation on the worker and waits for it
func (w *Writer) Do(execute func() error) error {
	resultChan := make(chan error, 1)
	w.opQueue <- writeOp{Execute: execute, Result: resultChan}
	return <-resultChan
}

// DoWithResult executes a mutating operation that returns a value
func (w *Writer) DoWithResult(execute func() (interface{}, error)) (interface{}, error) {
	resultChan := make(chan writeResult, 1)
	w.resultOpQueue <- writeOpWithResult{Execute: execute, Result: resultChan}
	result := <-resultChan
	return result.Data, result.Error
}

// Stop stops the worker goroutine
func (w *Writer) Stop() {
	close(w.stopping)
}

// Typed helpers for repository operations

// InsertTask serializes a task insert
func (w *Writer) InsertTask(repo TaskRepository, ctx context.Context, name string, priority int, ownerID int64) (int64, error) {
	result, err := w.DoWithResult(func() (interface{}, error) {
		return repo.Insert(ctx, name, priority, ownerID)
	})
	if err != nil {
		return 0, err
	}
	return result.(int64), nil
}

// UpdateTask serializes a task update
func (w *Writer) UpdateTask(repo TaskRepository, ctx context.Context, id, ownerID int64, name string, priority int) error {
	return w.Do(func() error {
		return repo.Update(ctx, id, ownerID, name, priority)
	})
}

// ToggleTask serializes a completion toggle
func (w *Writer) ToggleTask(repo TaskRepository, ctx context.Context, id, ownerID int64) error {
	return w.Do(func() error {
		return repo.ToggleCompleted(ctx, id, ownerID)
	})
}

// DeleteTask serializes a task delete
func (w *Writer) DeleteTask(repo TaskRepository, ctx context.Context, id, ownerID int64) error {
	return w.Do(func() error {
		return repo.Delete(ctx, id, ownerID)
	})
}

// CreateUser serializes a user insert
func (w *Writer) CreateUser(repo UserRepository, ctx context.Context, username, passwordHash string) (int64, error) {
	result, err := w.DoWithResult(func() (interface{}, error) {
		return repo.Create(ctx, username, passwordHash)
	})
	if err != nil {
		return 0, err
	}
	return result.(int64), nil
}
