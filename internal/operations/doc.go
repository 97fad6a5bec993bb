// Package operations contains the request builders of the client.
//
// Builders are pure: they turn operation inputs into fully specified requests
// without performing I/O, so they can be tested in isolation.
package operations
