package acdc

import (
	"bytes"
	"encoding/json"
)

const defaultTokenType = "Bearer"

// Param is a single extra parameter to include in a token response.
type Param struct {
	Key   string
	Value interface{}
}

// Params is an ordered list of extra token response parameters, like
// `expires_in` or `scope`. They're written in the order they appear.
type Params []Param

// Get returns the value of the first Param with the passed key.
func (p Params) Get(key string) (interface{}, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Token is what an Issuer hands back when it decides to issue an access
// token.
type Token struct {
	AccessToken string

	// RefreshToken is left out of the response if it's empty.
	RefreshToken string

	// Params are added to the response after the token type. A
	// `token_type` param overrides the default of "Bearer".
	Params Params
}

// MarshalJSON writes the token response with its keys in a fixed order:
// access_token, refresh_token (if set), token_type, then any params in
// the order they were supplied.
func (t Token) MarshalJSON() ([]byte, error) {
	tokenType := interface{}(defaultTokenType)
	if v, ok := t.Params.Get("token_type"); ok {
		tokenType = v
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, value interface{}) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if err := write("access_token", t.AccessToken); err != nil {
		return nil, err
	}
	if t.RefreshToken != "" {
		if err := write("refresh_token", t.RefreshToken); err != nil {
			return nil, err
		}
	}
	if err := write("token_type", tokenType); err != nil {
		return nil, err
	}
	seen := map[string]bool{
		"access_token":  true,
		"refresh_token": t.RefreshToken != "",
		"token_type":    true,
	}
	for _, param := range t.Params {
		if seen[param.Key] {
			continue
		}
		seen[param.Key] = true
		if err := write(param.Key, param.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type resultKind int

const (
	resultDenied resultKind = iota
	resultIssued
	resultFailed
)

// Result is the outcome of an Issuer: the request was denied, a token was
// issued, or something went wrong. Build one with Denied, Issued, or
// Failed. The zero value is a denial.
type Result struct {
	kind  resultKind
	token Token
	err   error
}

// Denied means no token should be issued for the assertion. The client
// gets an invalid_grant error.
func Denied() Result {
	return Result{kind: resultDenied}
}

// Issued means the client should get tok.
func Issued(tok Token) Result {
	return Result{kind: resultIssued, token: tok}
}

// Failed means the Issuer couldn't come to a decision. err is returned
// from Exchange exactly as passed. A nil err is treated as a denial.
func Failed(err error) Result {
	if err == nil {
		return Denied()
	}
	return Result{kind: resultFailed, err: err}
}
