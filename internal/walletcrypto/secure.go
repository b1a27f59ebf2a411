package walletcrypto

import (
	"runtime"
	"sync"
)

// SecureBytes is a wrapper for sensitive byte slices that provides
// secure memory handling with mlock and explicit zeroing.
type SecureBytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// NewSecureBytes creates a new SecureBytes with the given size.
// The memory is locked if the system supports it.
func NewSecureBytes(size int) (*SecureBytes, error) {
	sb := &SecureBytes{data: make([]byte, size)}

	// Try to lock memory - don't fail if not possible
	sb.locked = mlock(sb.data)

	runtime.SetFinalizer(sb, func(s *SecureBytes) {
		s.Destroy()
	})

	return sb, nil
}

// SecureBytesFromSlice creates a SecureBytes from an existing slice.
// The data is copied into secure memory.
func SecureBytesFromSlice(data []byte) (*SecureBytes, error) {
	sb, err := NewSecureBytes(len(data))
	if err != nil {
		return nil, err
	}
	copy(sb.data, data)
	return sb, nil
}

// Bytes returns the underlying byte slice, or nil after Destroy.
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// IsLocked returns whether the memory is mlocked.
func (s *SecureBytes) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Destroy zeros the memory and unlocks it. Safe to call multiple times.
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return
	}

	Zero(s.data)

	if s.locked {
		munlock(s.data)
		s.locked = false
	}

	s.data = nil
	runtime.SetFinalizer(s, nil)
}

// Len returns the length of the data.
func (s *SecureBytes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
