// Package catalog owns the company records and their paired embedding
// vectors.
//
// The Store holds the authoritative, position-addressed record list. The
// Catalog aggregate wraps the store together with the two semantic vector
// spaces (description+challenges and needs) and the flat indexes built
// over them, so that record i and the vectors at position i always refer to
// the same company. Mutations that break the index-to-list pairing (update,
// delete) mark the indexes dirty; the next search rebuilds them from the
// backing lists in position order.
package catalog
