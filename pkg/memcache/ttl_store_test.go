package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLStore_SetGet(t *testing.T) {
	s := NewTTLStore()
	s.Set("k", []byte("v"), time.Minute)

	got, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestTTLStore_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewTTLStore()
	s.now = func() time.Time { return now }

	s.Set("k", []byte("v"), time.Minute)
	now = now.Add(2 * time.Minute)

	_, ok := s.Get("k")
	assert.False(t, ok)
	assert.Empty(t, s.data)
}

func TestTTLStore_Delete(t *testing.T) {
	s := NewTTLStore()
	s.Set("k", []byte("v"), time.Minute)
	s.Delete("k")

	_, ok := s.Get("k")
	assert.False(t, ok)
}
