// Package departure contains the Departure aggregate: a scheduled transport
// slot (ship, plane or truck run) with a finite weight and volume quota shared
// by the shipment products assigned to it.
//
// The aggregate owns the declared capacity, the set of product-type labels it
// accepts, the schedule dates and the activity flag. It deliberately carries
// no running usage counters: the current load of a departure is always
// recomputed from the authoritative product rows by the quota ledger, so the
// aggregate can never drift from the source of truth.
package departure
