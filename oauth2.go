// Package acdc provides an `http.Handler` that exchanges an authorization
// cross domain code (ACDC) assertion for an access token.
//
// A client that already holds an assertion, usually a signed JWT minted by
// another domain, presents it at the token endpoint together with an
// optional PKCE-style `code_verifier`. The package does not decide whether
// the assertion is any good; that's the job of the Issuer the application
// supplies. The Exchange handles everything around that decision: pulling
// the client and the parameters out of the request, calling the Issuer with
// exactly the context it asked for, and writing the token response the way
// RFC 6749 wants it written.
//
// Issuers come in four tiers, from IssueFunc, which only sees the client
// and the assertion, to IssueWithAuthInfoFunc, which also sees the verifier,
// the rest of the request body, and whatever authentication metadata the
// hosting stack attached to the request. Pick the smallest one that does
// the job.
//
// The Exchange expects the client to be authenticated and the body to be
// parsed before it runs. Use WithPrincipal and ParseBody (or WithBody) to do
// that, or use the Server method to get an `http.Handler` that wires the
// body parsing, logging, and error rendering for you.
package acdc
