// Package docs Saved Places Service API.
//
// Service for saving points of interest from the places provider into
// trips and querying them by proximity.
//
// Main capabilities:
// - Ingest provider place payloads into a user's trips
// - Cache derived place attributes with a bounded retention window
// - Find saved places near a position, nearest first
// - Manage saved-place status (WISHLIST / VISITED / SKIPPED) and notes
// - Statistics over stored data
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- user_id:
//
//	SecurityDefinitions:
//	user_id:
//	     type: apiKey
//	     name: X-User-ID
//	     in: header
//
// swagger:meta
package docs
