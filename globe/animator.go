package globe

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultFrameInterval targets 60 frames per second.
const DefaultFrameInterval = time.Second / 60

// Animator drives a Rotation from a ticker, one Advance per frame.
type Animator struct {
	rotation *Rotation
	interval time.Duration
	logger   *zap.Logger
	onFrame  func(angle float64)

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewAnimator(rotation *Rotation, interval time.Duration, logger *zap.Logger) *Animator {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Animator{
		rotation: rotation,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// OnFrame sets a hook called after every advance. Set it before Start.
func (a *Animator) OnFrame(fn func(angle float64)) {
	a.onFrame = fn
}

// Start runs the frame loop in its own goroutine.
func (a *Animator) Start() {
	a.ticker = time.NewTicker(a.interval)
	a.wg.Add(1)
	go a.loop()
	a.logger.Info("globe animator started", zap.Duration("frame_interval", a.interval))
}

func (a *Animator) loop() {
	defer a.wg.Done()
	for {
		select {
		case <-a.ticker.C:
			angle := a.rotation.Advance()
			if a.onFrame != nil {
				a.onFrame(angle)
			}
		case <-a.done:
			a.ticker.Stop()
			return
		}
	}
}

// Stop ends the frame loop and waits for it to exit. Safe to call twice.
func (a *Animator) Stop() {
	a.stopOnce.Do(func() {
		close(a.done)
	})
	a.wg.Wait()
	a.logger.Info("globe animator stopped", zap.Uint64("frames", a.rotation.Frames()))
}
