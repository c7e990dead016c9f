// Package services provides domain services that orchestrate business rules
// across multiple aggregates.
//
// The package includes:
//   - StatusSynchronizer: owns the delivery/order status mapping and applies
//     every cross-aggregate transition so the two records never drift apart
//
// Command handlers invoke these services inside a single unit of work; the
// services themselves never touch persistence.
package services
