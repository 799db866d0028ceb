package resource

// LoaderBuilderOption is a functional option applied to a loader during construction via NewLoader.
type LoaderBuilderOption func(*loaderImpl)

// WithWorkers sets the number of concurrent decode workers. Values below 1 keep the default (NumCPU).
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that sets the worker count
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loaderImpl) {
		if n > 0 {
			l.workers = n
		}
	}
}
