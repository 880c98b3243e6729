// Package catalog owns the drink catalog: spirits, liqueurs, ingredients,
// and cocktail recipes stored in MongoDB, the SQLite-backed metadata
// vocabulary used to validate tasting-note fields, and the local image
// store for document photos.
package catalog
