// Package mango is the client for the Mango Office VPBX incoming lines API.
//
// # Authentication
//
// Every request is a form POST carrying vpbx_api_key, json and sign, where
// sign is the lowercase hex SHA-256 of api key + json + salt. The json field is
// the compact encoding of the (empty) request payload, so the signed bytes and
// the sent bytes are the same "{}".
//
// # Failures
//
// Fetch returns a *FetchError of one of three kinds:
//   - request: transport failure or timeout ("request error: ...")
//   - api: HTTP status other than 200 ("API error: <status> - <body>")
//   - parse: undecodable JSON or a missing/ill-typed field ("parse error: ...")
//
// A vendor result code other than 1000 is not an error at this level; the
// reconcile engine decides what to do with it.
package mango
