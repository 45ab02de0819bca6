// Package gfxlock provides the nestable graphics-context lock used by the
// bundled hosts.
//
// A Lock is held by one goroutine at a time. The holding goroutine may
// enter again; other goroutines block until the outermost Leave.
package gfxlock

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// Lock is a reentrant mutex keyed by goroutine.
// The zero value is an unlocked Lock.
type Lock struct {
	mu sync.Mutex

	state sync.Mutex // guards owner and depth
	owner uint64
	depth int
}

// Enter acquires the lock, or nests if the calling goroutine holds it.
func (l *Lock) Enter() {
	id := goid()

	l.state.Lock()
	if l.depth > 0 && l.owner == id {
		l.depth++
		l.state.Unlock()
		return
	}
	l.state.Unlock()

	l.mu.Lock()

	l.state.Lock()
	l.owner = id
	l.depth = 1
	l.state.Unlock()
}

// Leave releases one level. It reports false, and changes nothing, if the
// calling goroutine does not hold the lock.
func (l *Lock) Leave() bool {
	id := goid()

	l.state.Lock()
	if l.depth == 0 || l.owner != id {
		l.state.Unlock()
		return false
	}
	l.depth--
	release := l.depth == 0
	if release {
		l.owner = 0
	}
	l.state.Unlock()

	if release {
		l.mu.Unlock()
	}
	return true
}

// Held reports whether the calling goroutine holds the lock.
func (l *Lock) Held() bool {
	id := goid()
	l.state.Lock()
	defer l.state.Unlock()
	return l.depth > 0 && l.owner == id
}

// Depth returns the nesting depth of the current holder, or 0.
func (l *Lock) Depth() int {
	l.state.Lock()
	defer l.state.Unlock()
	return l.depth
}

var goroutinePrefix = []byte("goroutine ")

// goid returns the id of the calling goroutine from its stack header,
// "goroutine 18 [running]:".
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	id, _ := strconv.ParseUint(string(s), 10, 64)
	return id
}
