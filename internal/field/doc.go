// Package field implements a decorative particle field.
//
// A [Field] owns a viewport, a population of [Particle] values and at most one
// pending frame registration on its [Host]. Each frame it advances every
// particle at constant velocity, wraps (or bounces) them at the viewport edge
// and draws them onto a [Surface] together with proximity links.
//
//   - [Population]: particle count for a viewport
//   - [Seed]: draws a fresh population
//   - [Advance]: constant-velocity step plus boundary policy
//   - [Links]: O(N²) proximity pass, [Grid] for large populations
//   - [Initialize]: mounts a field on a host and starts the loop
//
// # Example
//
//	loop := frame.NewLoop(field.Viewport{Width: 1280, Height: 720})
//	loop.Mount("hero", canvas)
//	f, err := field.Initialize(loop, "hero", field.DefaultConfig(), nil)
//	...
//	loop.Tick(time.Now())
//
// # Thread Safety
//
// Field instances are NOT thread-safe. Drive a field only from its host's
// frame goroutine; separate fields share nothing and may run on separate hosts
// concurrently.
package field
