// Package mongodb provides document store connectivity for the catalog.
//
// Spirits, liqueurs, ingredients, cocktails, and user accounts live in
// MongoDB collections; this package owns the connection lifecycle and hands
// out collection handles to the repositories built on top of it.
package mongodb
