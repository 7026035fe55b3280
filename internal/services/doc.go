// package services implements catalog access for music discovery.
//
// [Catalog] is the interface the rest of the application depends on;
// [SpotifyCatalog] is the production implementation backed by the Spotify Web
// API using the client-credentials grant. The search path is deliberately
// forgiving: the catalog's genre taxonomy is inconsistent enough that a pure
// genre-filter query frequently returns zero rows, so SearchByGenre walks an
// ordered list of query formulations and takes the first that yields results.
package services
