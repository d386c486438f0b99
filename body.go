package acdc

import (
	"encoding/json"
	"mime"
	"net/http"

	yall "yall.in"
)

// maxBodyBytes caps how much of a token request body ParseBody reads.
const maxBodyBytes = 64 << 10

// ParseBody parses the request body into the request context so the
// Exchange can read it. It accepts application/x-www-form-urlencoded and
// JSON object bodies. Form parameters sent once become strings, repeated
// ones become []string. Requests with any other Content-Type are rejected
// with a 415, because net/http won't parse them and guessing leads to all
// sorts of weirdness.
func ParseBody(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := yall.FromContext(r.Context())
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			log.WithError(err).Debug("Error parsing Content-Type")
			returnError(w, r, unsupportedContentTypeError())
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var body map[string]interface{}
		switch mediaType {
		case "application/x-www-form-urlencoded":
			err = r.ParseForm()
			if err != nil {
				log.WithError(err).Debug("Error parsing form")
				returnError(w, r, NewTokenError(CodeInvalidRequest, "Malformed request body", http.StatusBadRequest))
				return
			}
			body = make(map[string]interface{}, len(r.PostForm))
			for k, v := range r.PostForm {
				if len(v) == 1 {
					body[k] = v[0]
					continue
				}
				body[k] = v
			}
		case "application/json":
			err = json.NewDecoder(r.Body).Decode(&body)
			if err != nil {
				log.WithError(err).Debug("Error decoding JSON body")
				returnError(w, r, NewTokenError(CodeInvalidRequest, "Malformed request body", http.StatusBadRequest))
				return
			}
		default:
			log.WithField("content_type", mediaType).Debug("Unsupported Content-Type")
			returnError(w, r, unsupportedContentTypeError())
			return
		}

		h.ServeHTTP(w, r.WithContext(WithBody(r.Context(), body)))
	})
}

func unsupportedContentTypeError() *TokenError {
	return NewTokenError("unsupported_content_type", "", http.StatusUnsupportedMediaType)
}
