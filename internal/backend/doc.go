// Package backend defines the groupware store the synchronization engine
// talks to and ships an in-memory implementation of it.
//
// A Backend authenticates a user and returns a Session. Through the session
// the engine reads the folder hierarchy, fingerprints folders, fetches items
// and opens importers (device to server) and exporters (server to device).
// Importers and exporters of one folder share an opaque state blob that the
// engine persists between requests; the backend never keeps per-device
// state of its own.
package backend
