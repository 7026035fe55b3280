// package models defines the data model for the music discovery client.
//
// Song is the canonical catalog value produced by the services layer and is
// never persisted directly. Rating and User are persistent models managed by
// the repositories layer and implement [Model].
package models
