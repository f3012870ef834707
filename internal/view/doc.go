// Package view owns the client view state and drives one catalog load per mount.
//
// State is a tagged value (Loading, Failed, Loaded) with a single transition,
// Settle. Controller ties a load to the lifetime of a mount: results that
// arrive after Unmount, or after a newer mount has begun, are discarded
// without touching state.
package view
