// internal/app/system/mediaupload/progress.go
package mediaupload

import "sync"

// Progress aggregates per-file byte counts of a sequential batch into one
// overall percentage: (bytes of finished files + bytes sent of the current
// file) / total bytes. The reported value never decreases and is exactly
// 100 once Complete is called.
type Progress struct {
	mu       sync.Mutex
	total    int64
	finished int64
	current  int64
	percent  int
	onChange func(int)
}

// NewProgress tracks a batch of the given total size. onChange, when non-nil,
// is called each time the percentage increases.
func NewProgress(total int64, onChange func(int)) *Progress {
	return &Progress{total: total, onChange: onChange}
}

// Sent records the cumulative bytes sent for the file in flight.
func (p *Progress) Sent(n int64) {
	p.mu.Lock()
	p.current = n
	p.update(p.compute())
}

// FileDone moves the current file's size into the finished total.
func (p *Progress) FileDone(size int64) {
	p.mu.Lock()
	p.finished += size
	p.current = 0
	p.update(p.compute())
}

// Complete marks the batch as successfully finished.
func (p *Progress) Complete() {
	p.mu.Lock()
	p.update(100)
}

// Percent returns the current overall percentage.
func (p *Progress) Percent() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.percent
}

// compute must be called with mu held. Completion alone reports 100, so
// in-flight values cap at 99.
func (p *Progress) compute() int {
	if p.total <= 0 {
		return 0
	}
	done := p.finished + p.current
	if done > p.total {
		done = p.total
	}
	pct := int(done * 100 / p.total)
	return min(pct, 99)
}

// update releases mu.
func (p *Progress) update(pct int) {
	if pct <= p.percent {
		p.mu.Unlock()
		return
	}
	p.percent = pct
	cb := p.onChange
	p.mu.Unlock()
	if cb != nil {
		cb(pct)
	}
}
