// Package cache provides a small generic LRU cache.
//
// Filter primitives use it to memoize derived data that depends only on a
// configuration value, such as convolution kernels keyed by standard
// deviation.
//
//	kernels := cache.New[float64, []float32](64)
//	k := kernels.GetOrCreate(sigma, func() []float32 { return build(sigma) })
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
