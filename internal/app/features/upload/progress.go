// internal/app/features/upload/progress.go
package upload

import (
	"sync"

	"go.uber.org/zap"
)

// progressLog logs batch progress in 25 percent steps. The callback may fire
// from whichever goroutine is sending the file, so the last step is guarded.
type progressLog struct {
	log   *zap.Logger
	files int

	mu   sync.Mutex
	last int
}

func newProgressLog(log *zap.Logger, files int) *progressLog {
	return &progressLog{log: log, files: files}
}

func (p *progressLog) report(pct int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pct <= p.last || (pct < p.last+25 && pct != 100) {
		return
	}
	p.last = pct
	p.log.Debug("batch upload progress", zap.Int("percent", pct), zap.Int("files", p.files))
}
