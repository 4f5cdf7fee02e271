// Package repositories exposes one repository per backend resource: auth,
// activities, profile and goal.
//
// Repositories forward calls to client.Client unchanged. They exist so that
// view state holders depend on a narrow interface per resource and can be
// tested with fakes.
package repositories
