// Package controllers implements the per-screen state machines that sit
// between the UI surface and the data-access layer. Each screen owns its own
// state; nothing is shared across screens and nothing is cached beyond the
// lifetime of the screen.
package controllers

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusRefreshing
	StatusLoaded
	StatusFailed
)

// State is the tagged screen state: Idle, Loading, Refreshing (stale data
// still visible), Loaded with data, or Failed with an error. Invalid
// combinations like "loading and failed at once" are unrepresentable.
type State[T any] struct {
	status Status
	data   T
	err    error
}

func Idle[T any]() State[T] {
	return State[T]{status: StatusIdle}
}

func Loading[T any]() State[T] {
	return State[T]{status: StatusLoading}
}

// Refreshing keeps the previously loaded data visible while a reload is in
// flight (the pull-to-refresh variant).
func Refreshing[T any](stale T) State[T] {
	return State[T]{status: StatusRefreshing, data: stale}
}

func Loaded[T any](data T) State[T] {
	return State[T]{status: StatusLoaded, data: data}
}

func Failed[T any](err error) State[T] {
	return State[T]{status: StatusFailed, err: err}
}

func (s State[T]) Status() Status {
	return s.status
}

// Data returns the screen data and whether any is present (Loaded, or
// Refreshing with stale data).
func (s State[T]) Data() (T, bool) {
	return s.data, s.status == StatusLoaded || s.status == StatusRefreshing
}

func (s State[T]) Err() error {
	if s.status != StatusFailed {
		return nil
	}
	return s.err
}

func (s State[T]) InFlight() bool {
	return s.status == StatusLoading || s.status == StatusRefreshing
}
