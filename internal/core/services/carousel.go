package services

import (
	"sync"
	"time"
)

// DefaultCarouselInterval is the auto-advance period used when none is configured.
const DefaultCarouselInterval = 5 * time.Second

// Carousel rotates an index over a fixed number of slides.
//
// While running, one goroutine advances the index every interval. Manual
// navigation moves the index and restarts the interval, so the timer and
// the user never advance the same slide twice in a row.
type Carousel struct {
	interval time.Duration

	mu    sync.Mutex
	count int
	index int
	stop  chan struct{}
	done  chan struct{}

	reset   chan struct{}
	changes chan int
}

// NewCarousel creates a stopped carousel over count slides.
func NewCarousel(count int, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultCarouselInterval
	}
	if count < 0 {
		count = 0
	}
	return &Carousel{
		interval: interval,
		count:    count,
		reset:    make(chan struct{}, 1),
		changes:  make(chan int, 1),
	}
}

// Changes delivers the index after every move. Only the latest index is
// kept when the receiver falls behind.
func (c *Carousel) Changes() <-chan int {
	return c.changes
}

// Start begins auto-advancing. Starting a running carousel does nothing.
func (c *Carousel) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(c.stop, c.done)
}

// Stop halts auto-advancing and waits for the timer goroutine to exit.
func (c *Carousel) Stop() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the carousel is auto-advancing.
func (c *Carousel) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Index returns the current slide.
func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Count returns the number of slides.
func (c *Carousel) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// SetCount replaces the number of slides, keeping the index in range.
func (c *Carousel) SetCount(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if count < 0 {
		count = 0
	}
	c.count = count
	if c.index >= count {
		c.index = 0
		c.publish()
	}
}

// Next moves to the following slide, wrapping at the end.
func (c *Carousel) Next() {
	c.move(func(i, n int) int { return (i + 1) % n })
}

// Prev moves to the preceding slide, wrapping at the start.
func (c *Carousel) Prev() {
	c.move(func(i, n int) int { return (i - 1 + n) % n })
}

// GoTo moves to slide i. Out-of-range values are ignored.
func (c *Carousel) GoTo(i int) {
	c.move(func(cur, n int) int {
		if i < 0 || i >= n {
			return cur
		}
		return i
	})
}

func (c *Carousel) move(next func(i, n int) int) {
	c.mu.Lock()
	if c.count == 0 {
		c.mu.Unlock()
		return
	}
	c.index = next(c.index, c.count)
	c.publish()
	c.mu.Unlock()

	select {
	case c.reset <- struct{}{}:
	default:
	}
}

// advance is the timer's move. It is skipped once stop is closed so a
// tick racing with Stop cannot move the index.
func (c *Carousel) advance(stop <-chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-stop:
		return
	default:
	}
	if c.count == 0 {
		return
	}
	c.index = (c.index + 1) % c.count
	c.publish()
}

// publish replaces any undelivered index with the current one.
// Callers hold mu.
func (c *Carousel) publish() {
	select {
	case <-c.changes:
	default:
	}
	select {
	case c.changes <- c.index:
	default:
	}
}

func (c *Carousel) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(c.interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-c.reset:
			timer.Reset(c.interval)
		case <-timer.C:
			c.advance(stop)
			timer.Reset(c.interval)
		}
	}
}
