package utils

import "time"

// Pacer enforces the fixed politeness delays between requests. Every call
// blocks for the full duration; there is no jitter and no early wake-up.
type Pacer struct {
	logger *Logger
	sleep  func(time.Duration)
}

// NewPacer creates a Pacer. A nil sleep function means time.Sleep.
func NewPacer(logger *Logger, sleep func(time.Duration)) *Pacer {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Pacer{logger: logger, sleep: sleep}
}

// Wait blocks for d. reason is only used for debug output.
func (p *Pacer) Wait(reason string, d time.Duration) {
	if d <= 0 {
		return
	}
	p.logger.Debug("[pacer] %s: sleeping %v", reason, d)
	p.sleep(d)
}
