package engine

import "time"

// Ticker is a periodic schedule handle.
type Ticker interface {
	// C delivers one value per period.
	C() <-chan time.Time
	// Stop releases the handle; no value is delivered afterwards.
	Stop()
}

// Scheduler creates periodic schedule handles.
type Scheduler interface {
	Every(interval time.Duration) Ticker
}

// SystemScheduler implements Scheduler with time.Ticker.
type SystemScheduler struct{}

// Every starts a time.Ticker with the given period.
//
//nolint:ireturn // The engine only needs the handle behaviour.
func (SystemScheduler) Every(interval time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(interval)}
}

// systemTicker adapts time.Ticker to Ticker.
type systemTicker struct {
	ticker *time.Ticker
}

func (t *systemTicker) C() <-chan time.Time { return t.ticker.C }

func (t *systemTicker) Stop() { t.ticker.Stop() }

// channel returns the handle channel or nil, which blocks forever in a select.
func channel(t Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}

	return t.C()
}
