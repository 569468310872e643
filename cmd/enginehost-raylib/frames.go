package main

import (
	"image"
	"sync"
)

// frameBox hands the latest presented frame from the render loop to the
// window thread. Older frames are overwritten.
type frameBox struct {
	mu    sync.Mutex
	frame *image.RGBA
	seq   uint64
}

// Put copies frame into the box.
func (b *frameBox) Put(frame *image.RGBA) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frame == nil || b.frame.Rect != frame.Rect {
		b.frame = image.NewRGBA(frame.Rect)
	}
	copy(b.frame.Pix, frame.Pix)
	b.seq++
}

// Take calls fn with the latest frame when it is newer than seen and
// returns the sequence number fn saw.
func (b *frameBox) Take(seen uint64, fn func(*image.RGBA)) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frame == nil || b.seq == seen {
		return seen
	}
	fn(b.frame)
	return b.seq
}
