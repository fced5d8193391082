// Package service exposes the draw engine over NATS request/reply.
//
// Clients upload datasets (competitors, groups, fixed positions), receive
// content-derived keys back, and then reference those keys to validate, draw,
// fetch and export results. Handlers are subscribed in a queue group, so
// multiple service instances share the request load.
//
// Subjects, relative to the configured prefix (default "assigner"):
//
//	<prefix>.competitors.put   upload a competitor list
//	<prefix>.groups.put        upload a group list
//	<prefix>.fixed.put         upload a fixed-position list
//	<prefix>.validate          check that referenced datasets are drawable
//	<prefix>.draw              run a draw and store the result
//	<prefix>.result.get        fetch a stored result
//	<prefix>.result.export     fetch a stored result as CSV
//
// All payloads are JSON. Failed requests answer {"error": "..."} instead of
// the success shape.
package service
