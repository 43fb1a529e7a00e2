// Package app holds the action dispatchers: one method per remote
// operation, each orchestrating a single request/response cycle against
// the API client and reconciling the outcome with its domain store.
//
// Every dispatcher follows the same sequence: validate request shape,
// mark the store loading, issue exactly one HTTP call, commit the
// response (or the extracted error message) to the store, toast the
// outcome, and return the error for the caller's local control flow.
// Dispatchers never enforce business rules; that is the backend's job.
package app
