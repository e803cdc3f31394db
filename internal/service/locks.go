package service

import "sync"

// keyedMutex serializes work per key. Entries are never evicted; a combat
// id costs one mutex for the life of the process.
type keyedMutex struct {
	m sync.Map
}

func (k *keyedMutex) Lock(key string) func() {
	v, _ := k.m.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
