// Package index provides a brute-force nearest-neighbor index over
// fixed-dimension float vectors.
//
// The Flat index performs exhaustive squared-L2 search, which is exact and
// fast enough for catalogs of hundreds to low thousands of vectors. Instead
// of supporting removal at a position, the index follows a dirty-flag
// protocol: mutations that change the vector-to-position mapping mark it
// dirty, and EnsureCurrent rebuilds it lazily from the backing vector list
// before the next search.
package index
