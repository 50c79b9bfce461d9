package leads

import (
	"crypto/rand"
	"encoding/hex"
)

// reviewTokenBytes is the entropy behind a review token; rendered as hex the
// token is twice this many characters.
const reviewTokenBytes = 32

// NewReviewToken returns an opaque 64-character hex token used to build the
// one-time review-invitation link for a completed service. Uniqueness is not
// checked here; repositories enforce it at the storage layer.
func NewReviewToken() string {
	b := make([]byte, reviewTokenBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}
