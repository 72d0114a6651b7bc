// Package github provides clients for the GitHub REST API and the community
// trending feed, and normalizes their heterogeneous payloads into the
// application's canonical entities.
//
// Two upstream shapes exist: the REST API's JSON (search result pages, issue
// lists, profiles) which already matches the canonical records' field tags,
// and the trending feed's bespoke flat item shape, which [NormalizeTrending]
// maps into repository records with deterministic defaults for the fields the
// feed omits.
//
// Upstream failures are mapped onto the taxonomy in the errors package rather
// than leaking raw statuses: rate-limit refusals (by status or by body text),
// exhausted search pagination, disabled repository features, and generic
// endpoint errors each get a distinct code. Transport failures (requests
// that never produced a response) are kept separate from upstream responses.
package github
