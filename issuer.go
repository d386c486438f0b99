package acdc

import (
	"context"
	"fmt"
)

// Issuer decides whether an assertion should be exchanged for a token.
// It's implemented by IssueFunc, IssueWithVerifierFunc, IssueWithBodyFunc,
// and IssueWithAuthInfoFunc; choose the one that asks for the least context
// your application needs.
type Issuer interface {
	issue(ctx context.Context, req Request) Result
	isNil() bool
}

// Request holds everything the Exchange pulled out of an incoming request.
type Request struct {
	// Client is the authenticated client making the request.
	Client Principal

	// Assertion is the value of the `assertion` parameter. It's never
	// empty.
	Assertion string

	// Verifier is the value of the `code_verifier` parameter, or an empty
	// string if it wasn't sent.
	Verifier string

	// Body is the parsed request body without the `assertion` and
	// `code_verifier` parameters. It's nil if nothing else was sent.
	Body map[string]interface{}

	// AuthInfo is the authentication information attached to the
	// request, if any.
	AuthInfo map[string]interface{}
}

// IssueFunc only needs the client and the assertion.
type IssueFunc func(ctx context.Context, client Principal, assertion string) Result

func (f IssueFunc) issue(ctx context.Context, req Request) Result {
	return f(ctx, req.Client, req.Assertion)
}

func (f IssueFunc) isNil() bool { return f == nil }

// IssueWithVerifierFunc also needs the `code_verifier`.
type IssueWithVerifierFunc func(ctx context.Context, client Principal, assertion, verifier string) Result

func (f IssueWithVerifierFunc) issue(ctx context.Context, req Request) Result {
	return f(ctx, req.Client, req.Assertion, req.Verifier)
}

func (f IssueWithVerifierFunc) isNil() bool { return f == nil }

// IssueWithBodyFunc also needs the rest of the request body.
type IssueWithBodyFunc func(ctx context.Context, client Principal, assertion, verifier string, body map[string]interface{}) Result

func (f IssueWithBodyFunc) issue(ctx context.Context, req Request) Result {
	return f(ctx, req.Client, req.Assertion, req.Verifier, req.Body)
}

func (f IssueWithBodyFunc) isNil() bool { return f == nil }

// IssueWithAuthInfoFunc needs everything, including the authentication
// information attached to the request.
type IssueWithAuthInfoFunc func(ctx context.Context, client Principal, assertion, verifier string, body, authInfo map[string]interface{}) Result

func (f IssueWithAuthInfoFunc) issue(ctx context.Context, req Request) Result {
	return f(ctx, req.Client, req.Assertion, req.Verifier, req.Body, req.AuthInfo)
}

func (f IssueWithAuthInfoFunc) isNil() bool { return f == nil }

// callIssuer runs the Issuer, turning a panic into a Failed result. A panic
// with an error value keeps that error unchanged.
func callIssuer(ctx context.Context, issuer Issuer, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				res = Failed(err)
				return
			}
			res = Failed(fmt.Errorf("%v", r))
		}
	}()
	return issuer.issue(ctx, req)
}
