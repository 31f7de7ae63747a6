// Package aperture computes the numerical aperture of a step-index fiber.
//
//	NA = sqrt(n_core^2 - n_cladding^2)
//
// The result is rounded to three decimals, half away from zero. Light is only
// guided when the cladding is optically less dense than the core, so any
// cladding index >= core index is rejected with ir.InvalidPhysicsError.
//
// Calculate has no side effects. Persisting the record is the caller's job
// (see internal/engine, which is the only path that returns a stored record).
package aperture
