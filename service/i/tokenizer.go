package i

import (
	"time"

	"github.com/beka-birhanu/vinom-chase/identity"
)

// Tokenizer issues and verifies the access tokens players present.
type Tokenizer interface {
	// Issue signs claims into a token that expires after ttl.
	Issue(claims identity.Claims, ttl time.Duration) (string, error)

	// Verify checks the signature, expiry and issuer of token and returns
	// the player it names.
	Verify(token string) (identity.Claims, error)
}
