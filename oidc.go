package acdc

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	yall "yall.in"
)

type idTokenKey struct{}

// IDTokenFromContext returns the verified assertion stored in ctx by an
// Issuer returned from VerifyAssertions, or nil.
func IDTokenFromContext(ctx context.Context) *oidc.IDToken {
	tok, _ := ctx.Value(idTokenKey{}).(*oidc.IDToken)
	return tok
}

// oidcIssuer checks that the assertion is a valid OpenID Connect ID token
// before letting the wrapped Issuer decide anything.
type oidcIssuer struct {
	verifier *oidc.IDTokenVerifier
	next     Issuer
}

// VerifyAssertions returns an Issuer that verifies the assertion as an ID
// token using verifier before handing the request to next. Assertions that
// don't verify are denied without next being called. next can get at the
// verified token with IDTokenFromContext.
func VerifyAssertions(verifier *oidc.IDTokenVerifier, next Issuer) Issuer {
	return oidcIssuer{verifier: verifier, next: next}
}

func (o oidcIssuer) issue(ctx context.Context, req Request) Result {
	tok, err := o.verifier.Verify(ctx, req.Assertion)
	if err != nil {
		yall.FromContext(ctx).WithError(err).Debug("Error verifying assertion")
		return Denied()
	}
	return o.next.issue(context.WithValue(ctx, idTokenKey{}, tok), req)
}

func (o oidcIssuer) isNil() bool {
	return o.verifier == nil || o.next == nil || o.next.isNil()
}
