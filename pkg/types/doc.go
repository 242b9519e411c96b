// Package types defines the entity types, the export bundle, the collaborator
// interfaces, and the standard errors for the equipments record store.
//
// Callers build records through the store in internal/store and receive copies
// of these types; mutating a returned value never changes store state.
package types
