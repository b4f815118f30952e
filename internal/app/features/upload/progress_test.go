package upload

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestProgressLog_Steps(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := newProgressLog(zap.New(core), 3)

	for _, pct := range []int{10, 25, 30, 49, 50, 60, 100, 100} {
		p.report(pct)
	}

	var got []int64
	for _, e := range logs.All() {
		got = append(got, e.ContextMap()["percent"].(int64))
	}
	want := []int64{25, 50, 100}
	if len(got) != len(want) {
		t.Fatalf("logged %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("logged %v, want %v", got, want)
			break
		}
	}
}

// Reports arriving from several goroutines must not race on the last step.
func TestProgressLog_ConcurrentReports(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := newProgressLog(zap.New(core), 30)

	var wg sync.WaitGroup
	for pct := 1; pct <= 100; pct++ {
		wg.Add(1)
		go func(pct int) {
			defer wg.Done()
			p.report(pct)
		}(pct)
	}
	wg.Wait()

	if p.last != 100 {
		t.Errorf("last = %d, want 100", p.last)
	}
	if n := logs.Len(); n < 1 || n > 4 {
		t.Errorf("logged %d steps, want between 1 and 4", n)
	}
}
