// acdc-example serves an ACDC token endpoint that trusts assertions issued
// by a single OpenID Connect provider. Clients authenticate with HTTP basic
// auth using the ids and secrets from the config file.
package main

import (
	"context"
	"crypto/subtle"
	"flag"
	"net/http"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	uuid "github.com/hashicorp/go-uuid"
	yall "yall.in"
	"yall.in/colour"

	"lockbox.dev/acdc"
)

type client struct {
	ID string
}

// authenticate checks the client's basic auth credentials and stores the
// client in the request context.
func authenticate(clients []clientConfig, property string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, secret, ok := r.BasicAuth()
		if ok {
			for _, c := range clients {
				if c.ID == id && subtle.ConstantTimeCompare([]byte(c.Secret), []byte(secret)) == 1 {
					ctx := acdc.WithPrincipal(r.Context(), property, client{ID: id})
					ctx = acdc.WithAuthInfo(ctx, map[string]interface{}{"method": "client_secret_basic"})
					h.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}
		}
		yall.FromContext(r.Context()).WithField("client_id", id).Debug("Client failed to authenticate")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("WWW-Authenticate", `Basic realm="token"`)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	})
}

// issuer mints opaque tokens for any client presenting a verified
// assertion.
func issuer(cfg config) acdc.IssueFunc {
	return func(ctx context.Context, principal acdc.Principal, assertion string) acdc.Result {
		c, ok := principal.(client)
		if !ok {
			return acdc.Denied()
		}
		idToken := acdc.IDTokenFromContext(ctx)
		log := yall.FromContext(ctx).WithField("client_id", c.ID)
		if idToken != nil {
			log = log.WithField("subject", idToken.Subject)
		}
		access, err := uuid.GenerateUUID()
		if err != nil {
			return acdc.Failed(err)
		}
		tok := acdc.Token{
			AccessToken: access,
			Params:      acdc.Params{{Key: "expires_in", Value: cfg.ExpiresIn}},
		}
		if cfg.Refresh {
			tok.RefreshToken, err = uuid.GenerateUUID()
			if err != nil {
				return acdc.Failed(err)
			}
		}
		log.Info("issued access token")
		return acdc.Issued(tok)
	}
}

func withLogger(log *yall.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r.WithContext(yall.InContext(r.Context(), log)))
	})
}

func main() {
	configPath := flag.String("config", "acdc.yaml", "path to the config file")
	flag.Parse()

	log := yall.New(colour.New(os.Stdout, yall.Severity("INFO")))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.WithError(err).Error("Error loading config")
		os.Exit(1)
	}
	log = yall.New(colour.New(os.Stdout, yall.Severity(cfg.LogLevel)))

	ctx := yall.InContext(context.Background(), log)
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		log.WithError(err).WithField("issuer", cfg.OIDCIssuer).Error("Error discovering OpenID Connect provider")
		os.Exit(1)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})

	exchange, err := acdc.New(acdc.VerifyAssertions(verifier, issuer(cfg)),
		acdc.WithUserProperty(cfg.UserProperty))
	if err != nil {
		log.WithError(err).Error("Error creating exchange")
		os.Exit(1)
	}

	property := cfg.UserProperty
	if property == "" {
		property = acdc.DefaultUserProperty
	}
	handler := withLogger(log, authenticate(cfg.Clients, property, exchange.Server(cfg.Prefix)))

	log.WithField("listen", cfg.Listen).WithField("prefix", cfg.Prefix).Info("serving token endpoint")
	err = http.ListenAndServe(cfg.Listen, handler)
	if err != nil {
		log.WithError(err).Error("Error serving")
		os.Exit(1)
	}
}
