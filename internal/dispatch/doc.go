// Package dispatch implements centralized, conflict-aware key event
// dispatch. Handlers claim key chords with a priority tier and a
// context classification; the Registry owns the binding table and the
// conflict log, and the Router selects handlers in priority order
// until one consumes the event, gating privileged contexts through an
// authorization Guard.
//
// All registry mutation and dispatch are expected to happen on one
// control goroutine per tick; the internal locking exists so that a
// concurrent caller still observes register/unregister/dispatch as a
// single mutual-exclusion domain.
package dispatch
