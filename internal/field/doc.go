// Package field simulates the particle set behind the background animation.
//
// The package owns the motion model only; drawing lives in render:
//
//   - [Particle]: a point with position, per-axis velocity and radius
//   - [Params]: count, connection distance, speed and radius range
//   - [Field]: the fixed-size set, stepped once per frame
//
// # Motion
//
// Each [Field.Step] advances every particle by its velocity (unit
// timestep) and flips the sign of a velocity component when the particle
// leaves the bounds on that axis. Magnitudes never change.
//
// # Links
//
// [Field.Links] visits every unordered pair closer than the connection
// distance. The check is quadratic in the particle count, which is fine
// for the tens of particles a background uses.
//
// # Example
//
//	f, _ := field.New(params, 1280, 720, rand.New(rand.NewSource(1)))
//	f.Step()
//	f.Links(func(a, b field.Particle, d, s float64) { ... })
//
// A Field is not safe for concurrent use; the render loop owns it.
package field
