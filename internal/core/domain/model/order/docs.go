// Package order contains the Order aggregate: a buyer's purchase request with
// its line items, computed totals, payment state, and fulfillment status.
//
// Order status moves forward only (pending -> accepted -> in_transit ->
// delivered); the sole exception is the cancellation-reopen path, where the
// order returns to pending and loses its delivery agency. Status changes that
// mirror the linked delivery are coordinated by the status synchronization
// service, never by the aggregate reaching into the delivery model.
package order
