// Package dynamo defines the contract shared by every interactive simulation.
//
// A simulation is a [Model]: a pure description of how a state of type S is
// created from parameters P, advanced by one fixed timestep, and edited by a
// pointer [Event]. The scheduler in package sim owns the authoritative state
// and is the only caller of these methods.
//
//   - [State]: flat vector used by ODE-style models ([System])
//   - [Model]: Init / Step / Apply / Diagnose over a model-specific state
//   - [Event]: pointer interaction in drawing-surface pixels
//   - [Diagnostics]: ordered scalar readouts derived from state
//
// # Numeric Safety
//
// Models never return an error from Step. Non-finite values are repaired
// per dimension with [Recover] so a single bad step cannot blank the
// simulation for every following frame.
package dynamo
