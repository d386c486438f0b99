package acdc

import (
	"encoding/json"
	"errors"
	"net/http"

	yall "yall.in"
)

// Exchange is the token endpoint logic for the ACDC assertion grant. It's
// safe for concurrent use; nothing about it changes after New returns.
type Exchange struct {
	userProperty string
	issuer       Issuer
}

// Option configures an Exchange.
type Option func(*Exchange)

// WithUserProperty sets the request context property the authenticated
// client is read from. It defaults to DefaultUserProperty.
func WithUserProperty(property string) Option {
	return func(e *Exchange) {
		if property != "" {
			e.userProperty = property
		}
	}
}

// New returns an Exchange that asks issuer whether to issue tokens.
func New(issuer Issuer, opts ...Option) (*Exchange, error) {
	if issuer == nil || issuer.isNil() {
		return nil, ErrNoIssuer
	}
	e := &Exchange{
		userProperty: DefaultUserProperty,
		issuer:       issuer,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// buildRequest pulls the client, the grant parameters, and the auth info
// out of r.
func (e *Exchange) buildRequest(r *http.Request) (Request, error) {
	body, ok := BodyFromContext(r.Context())
	if !ok {
		return Request{}, ErrBodyNotParsed
	}
	assertion, _ := body["assertion"].(string)
	if assertion == "" {
		return Request{}, missingParameterError("assertion")
	}
	verifier, _ := body["code_verifier"].(string)

	var extra map[string]interface{}
	for k, v := range body {
		if k == "assertion" || k == "code_verifier" {
			continue
		}
		if extra == nil {
			extra = map[string]interface{}{}
		}
		extra[k] = v
	}

	return Request{
		Client:    PrincipalFromContext(r.Context(), e.userProperty),
		Assertion: assertion,
		Verifier:  verifier,
		Body:      extra,
		AuthInfo:  AuthInfoFromContext(r.Context()),
	}, nil
}

// Exchange handles a single token request. On success the token response
// is written to w and nil is returned. On failure nothing is written and
// the error is returned for the caller to deal with; a *TokenError should
// be shown to the client, anything else is a server problem. Errors from
// the Issuer are returned unchanged.
func (e *Exchange) Exchange(w http.ResponseWriter, r *http.Request) error {
	log := yall.FromContext(r.Context())

	req, err := e.buildRequest(r)
	if err != nil {
		return err
	}

	res := callIssuer(r.Context(), e.issuer, req)
	switch res.kind {
	case resultFailed:
		return res.err
	case resultIssued:
		if res.token.AccessToken == "" {
			return ErrEmptyAccessToken
		}
	default:
		log.Debug("issuer denied assertion")
		return invalidACDCError()
	}

	return returnToken(w, r, res.token)
}

// Handler returns an `http.Handler` that runs the Exchange and renders any
// error it returns as an OAuth2 error response.
func (e *Exchange) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := e.Exchange(w, r)
		if err != nil {
			returnError(w, r, err)
		}
	})
}

// return a token as JSON output.
func returnToken(w http.ResponseWriter, r *http.Request, token Token) error {
	b, err := json.Marshal(token)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(b)
	if err != nil {
		yall.FromContext(r.Context()).WithError(err).Error("Error writing response")
	}
	return nil
}

// return an error as JSON output. *TokenErrors are shown to the client,
// everything else becomes a server_error.
func returnError(w http.ResponseWriter, r *http.Request, err error) {
	log := yall.FromContext(r.Context())
	var apiErr *TokenError
	if !errors.As(err, &apiErr) {
		log.WithError(err).Error("Error exchanging assertion")
		apiErr = &serverError
	} else {
		log.WithField("api_error", apiErr.Code).Debug("Rejected token request")
	}
	status := apiErr.Status
	if status == 0 {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	err = enc.Encode(apiErr)
	if err != nil {
		log.WithError(err).Error("Error writing response")
	}
}
