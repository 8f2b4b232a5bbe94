// Package core contains app-wide contracts and state orchestration.
//
// Allowed here:
// - model routing, message contracts, command and key registries
// - tab mounting and the notification line
// - shared state machines used across screens (for example picker logic)
//
// Not allowed here:
// - concrete screen/modal rendering implementations
// - record loading or persistence
// - low-level widget rendering primitives
package core
