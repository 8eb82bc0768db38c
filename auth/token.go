package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/mzane42/clinica-scanner/models"
)

var ErrMalformedToken = errors.New("malformed identity token")

// DecodeIDToken extracts the claims from a dot-separated identity credential.
// Only the payload segment is decoded; the signature is not verified, so the
// allow-list check is the real gate.
func DecodeIDToken(token string) (models.IDTokenClaims, error) {
	var claims models.IDTokenClaims

	segments := strings.Split(token, ".")
	if len(segments) < 2 {
		return claims, ErrMalformedToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segments[1], "="))
	if err != nil {
		return claims, ErrMalformedToken
	}

	if err := json.Unmarshal(payload, &claims); err != nil {
		return claims, ErrMalformedToken
	}

	return claims, nil
}
