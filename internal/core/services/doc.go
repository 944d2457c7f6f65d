// Package services implements the driving port interfaces.
// Services contain the client-side business logic and orchestrate
// calls to driven ports (adapters).
//
// The backend owns every marketplace rule. Services only run the
// pre-checks needed to keep impossible requests off the wire and
// never report state the backend has not confirmed.
package services
