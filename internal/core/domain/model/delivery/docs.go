// Package delivery contains the Delivery aggregate: the logistics record that
// tracks physical transport of exactly one order and that delivery agencies
// claim for fulfillment.
//
// A delivery starts unclaimed (Available, no agency). Claiming is first come
// first served and must be enforced by the persistence layer with a conditional
// update; the aggregate's Claim method expresses the same rule for in-memory
// state. Cancellation reopens the slot instead of terminating it: the delivery
// returns to Available with no agency and a cleared acceptance timestamp.
package delivery
