package collections

import "golang.org/x/exp/constraints"

// Number covers the integer and float types.
type Number interface {
	constraints.Integer | constraints.Float
}

// Apply applies the applicator function to each item in the input slice.
func Apply[T, V any](items []T, applicator func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = applicator(item)
	}
	return result
}

// Filter returns the items for which keep reports true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

// Take returns at most n leading items. The result shares storage with items.
func Take[T any](items []T, n int) []T {
	if n <= 0 {
		return items[:0]
	}
	if n >= len(items) {
		return items
	}
	return items[:n]
}

// UniqueBy drops items whose key has already been seen, keeping the first.
func UniqueBy[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	result := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, item)
	}
	return result
}

// Clamp bounds v to [lo, hi].
func Clamp[N Number](v, lo, hi N) N {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mean returns the arithmetic mean of values, or zero for an empty slice.
func Mean[N Number](values []N) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}
