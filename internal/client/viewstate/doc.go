// Package viewstate holds the per-screen state of the client.
//
// Each holder calls one repository, keeps the latest result in Observable
// fields and derives presentation values from it (goal progress, weekly
// calorie buckets). Holder methods block until the backend answers; every
// failure is recovered into observable state, never returned, except local
// validation failures which are returned as *ValidationError before any
// backend call is made.
//
// A holder is scoped to the screen that owns it. Close cancels requests in
// flight and results that arrive afterwards are discarded. Within one
// stream of a holder only the most recently started request may publish.
package viewstate
