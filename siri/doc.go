// Package siri defines SIRI (Service Interface for Real-time Information) data types.
//
// SIRI is a European standard (CEN/TS 15531) for real-time public transport
// information. This package contains Go structs for the payload fragments an
// upstream notifier pushes to a subscriber, plus classification and decoding
// of raw fragments:
//
//   - EstimatedVehicleJourney (ET): revised call times for a single journey
//   - PtSituationElement (SX): a service alert or disruption
//   - HeartbeatNotification: keep-alive from the notifier
//   - SubscriptionTerminatedNotification: the notifier dropped the subscription
//
// All types include JSON and XML struct tags; pushed fragments decode with or
// without the SIRI namespace declaration.
package siri
