// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import "sync"

// Opener opens documents for reading.
type Opener interface {
	Open(path string) (Document, error)
	Close() error
}

// Service is a document reader with one session open at a time. A Service
// is not shared between goroutines that process documents in parallel;
// each worker owns its own.
type Service struct {
	mu     sync.Mutex
	busy   bool
	closed bool
}

// NewService returns a ready service.
func NewService() *Service {
	return &Service{}
}

// Open starts a session on the document at path. The previous session must
// be closed first.
func (s *Service) Open(path string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrServiceClosed
	}
	if s.busy {
		return nil, ErrSessionOpen
	}

	f, err := read(path)
	if err != nil {
		return nil, err
	}
	s.busy = true
	f.release = s.release
	return f, nil
}

func (s *Service) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Close shuts the service down. Later calls to Open fail.
func (s *Service) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
