// Package controllers models each screen of the repair client as a
// small explicit state machine over a tagged view state. Controllers
// own form and filter fields, call the API client, and never depend on
// each other; sharing happens through the client and its session.
package controllers

// Phase is the tag of a view state.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
	NotFound
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	case NotFound:
		return "not_found"
	}
	return "unknown"
}

// ViewState is the tagged union every screen exposes: Idle, Loading,
// Loaded(data) or Failed(message). Data is only meaningful in Loaded,
// Message only in Failed.
type ViewState[T any] struct {
	Phase   Phase
	Data    T
	Message string
}

func loaded[T any](data T) ViewState[T] {
	return ViewState[T]{Phase: Loaded, Data: data}
}

func failed[T any](message string) ViewState[T] {
	return ViewState[T]{Phase: Failed, Message: message}
}
