package resource

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/loki-go/common"
)

// ErrLoaderReleased is returned by LoadTextures after Release.
var ErrLoaderReleased = errors.New("loader released")

type loaderImpl struct {
	mu       *sync.Mutex
	workers  int
	pool     worker.DynamicWorkerPool
	taskID   int
	released bool
}

// Loader decodes textures in parallel on a reusable worker pool.
type Loader interface {
	// LoadTextures reads and decodes every path concurrently. Results keep the order of paths.
	// If any texture fails, the error of the first failing path (in input order) is returned
	// alongside the textures that did load.
	//
	// Parameters:
	//   - paths: image files to load
	//
	// Returns:
	//   - []common.TextureStagingData: decoded textures, index-aligned with paths
	//   - error: the first error encountered, or nil
	LoadTextures(paths ...string) ([]common.TextureStagingData, error)

	// Workers returns the maximum number of concurrent decode workers.
	//
	// Returns:
	//   - int: the worker count
	Workers() int

	// Release stops the worker goroutines. Later LoadTextures calls return ErrLoaderReleased.
	// Safe to call more than once.
	Release()
}

var _ Loader = &loaderImpl{}

// NewLoader creates a Loader. Its workers stay parked between calls until Release.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the new loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loaderImpl{
		mu:      &sync.Mutex{},
		workers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(l)
	}

	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loaderImpl) Workers() int {
	return l.workers
}

func (l *loaderImpl) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return
	}
	l.released = true
	l.pool.Stop()
}

func (l *loaderImpl) LoadTextures(paths ...string) ([]common.TextureStagingData, error) {
	l.mu.Lock()
	released := l.released
	l.mu.Unlock()
	if released {
		return nil, ErrLoaderReleased
	}

	textures := make([]common.TextureStagingData, len(paths))
	errs := make([]error, len(paths))

	// A WaitGroup is the per-call barrier; the pool outlives the call.
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID: l.nextTaskID(),
			Do: func() (any, error) {
				defer wg.Done()
				textures[i], errs[i] = LoadTexture(path)
				return nil, errs[i]
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return textures, err
		}
	}
	return textures, nil
}

func (l *loaderImpl) nextTaskID() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.taskID++
	return l.taskID
}
