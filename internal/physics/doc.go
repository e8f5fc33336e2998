// Package physics implements the four learning simulations as
// [dynamo.Model] values:
//
//   - [Track]: a bead on a shaped track; energy budget with measured dissipation
//   - [Attractor]: twin Lorenz trajectories advanced with RK4
//   - [Gauge]: a lattice of angles relaxing toward local circular means
//   - [Sled]: a block pushed across a floor with static and kinetic friction
//
// Models hold no mutable data. Parameters arrive by value and are passed
// through Sanitize before use, so out-of-range sliders degrade to the
// nearest safe value instead of producing NaN.
//
// # Energy Ledger
//
// The track and the sled count dissipated energy as the kinetic energy a
// friction or impact sub-step actually removed, never as an estimate of
// friction power:
//
//	kBefore := 0.5 * m * v * v
//	v = applyFriction(v)
//	s.Dissipated += math.Max(0, kBefore-0.5*m*v*v)
package physics
