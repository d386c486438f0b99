package acdc

import (
	"context"
)

// DefaultUserProperty is the request context property the Exchange reads
// the authenticated client from unless WithUserProperty says otherwise.
const DefaultUserProperty = "user"

// Principal identifies the authenticated OAuth client. The Exchange never
// looks inside it; it's handed to the Issuer as-is.
type Principal interface{}

type principalKey string

type bodyKey struct{}

type authInfoKey struct{}

// WithPrincipal returns a copy of ctx that carries p under the named
// property. Authentication middleware should call this with the same
// property the Exchange was configured with.
func WithPrincipal(ctx context.Context, property string, p Principal) context.Context {
	return context.WithValue(ctx, principalKey(property), p)
}

// PrincipalFromContext returns the Principal stored under property, or nil
// if there isn't one.
func PrincipalFromContext(ctx context.Context, property string) Principal {
	return ctx.Value(principalKey(property))
}

// WithBody returns a copy of ctx carrying the parsed request body. A nil
// body still counts as parsed; an empty one is stored instead so that
// BodyFromContext reports it.
func WithBody(ctx context.Context, body map[string]interface{}) context.Context {
	if body == nil {
		body = map[string]interface{}{}
	}
	return context.WithValue(ctx, bodyKey{}, body)
}

// BodyFromContext returns the parsed request body and whether the body has
// been parsed at all.
func BodyFromContext(ctx context.Context) (map[string]interface{}, bool) {
	body, ok := ctx.Value(bodyKey{}).(map[string]interface{})
	return body, ok
}

// WithAuthInfo returns a copy of ctx carrying auxiliary authentication
// information about the request, like the IP it came from or the way the
// client authenticated.
func WithAuthInfo(ctx context.Context, info map[string]interface{}) context.Context {
	return context.WithValue(ctx, authInfoKey{}, info)
}

// AuthInfoFromContext returns the authentication information stored in
// ctx, or nil.
func AuthInfoFromContext(ctx context.Context) map[string]interface{} {
	info, _ := ctx.Value(authInfoKey{}).(map[string]interface{})
	return info
}
