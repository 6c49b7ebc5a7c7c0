package texture

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// SurfaceState describes what the globe surface is painted with.
type SurfaceState string

const (
	SurfaceLoading  SurfaceState = "loading"
	SurfaceLoaded   SurfaceState = "loaded"
	SurfaceFallback SurfaceState = "fallback"
)

// Surface is the globe's current paint: a texture, or a flat colour.
type Surface struct {
	State   SurfaceState
	Texture *Texture
	Color   string
}

func LoadingSurface() Surface {
	return Surface{State: SurfaceLoading, Color: FallbackColor}
}

func FallbackSurface() Surface {
	return Surface{State: SurfaceFallback, Color: FallbackColor}
}

// Task is one in-flight texture load. Once cancelled its result is dropped.
type Task struct {
	mu        sync.Mutex
	cancelled bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// Cancel stops the task. After Cancel returns, apply is never called.
func (t *Task) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	t.mu.Unlock()
	t.cancel()
}

// Done is closed when the task goroutine has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// LoadAsync fetches the texture in the background and hands the resulting
// surface to apply: the texture on success, the fallback colour on failure.
// apply is skipped when the task was cancelled first.
func (l *Loader) LoadAsync(ctx context.Context, apply func(Surface)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer cancel()

		surface := FallbackSurface()
		tex, err := l.Fetch(ctx)
		if err != nil {
			l.logger.Warn("texture load failed, using fallback colour",
				zap.String("url", l.url),
				zap.Error(err))
		} else {
			surface = Surface{State: SurfaceLoaded, Texture: tex}
			l.logger.Info("texture loaded",
				zap.String("url", l.url),
				zap.Int("width", tex.Width),
				zap.Int("height", tex.Height))
		}

		t.mu.Lock()
		defer t.mu.Unlock()
		if t.cancelled || ctx.Err() != nil {
			return
		}
		apply(surface)
	}()

	return t
}
