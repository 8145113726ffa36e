package store

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"infogen/common"
)

// Signer issues and checks expiring references to stored artifacts. A
// reference is the artifact name plus expiry and an HMAC over both, so a
// reference cannot be retargeted or extended.
type Signer struct {
	key []byte
}

func NewSigner(key []byte) *Signer {
	return &Signer{key: key}
}

func (s *Signer) mac(name string, expiry int64) string {
	h := hmac.New(sha256.New, s.key)
	fmt.Fprintf(h, "%s|%d", name, expiry)
	return hex.EncodeToString(h.Sum(nil))
}

// Sign builds a reference for name valid until expiry.
func (s *Signer) Sign(name string, expiry time.Time) string {
	exp := expiry.Unix()
	return fmt.Sprintf("%s?exp=%d&sig=%s", name, exp, s.mac(name, exp))
}

// Verify checks a reference and returns the artifact name it grants.
func (s *Signer) Verify(ref string, now time.Time) (string, error) {
	name, query, ok := strings.Cut(ref, "?")
	if !ok {
		return "", common.NewError(common.KindInputInvalid, "malformed artifact reference")
	}
	vals, err := url.ParseQuery(query)
	if err != nil {
		return "", common.WrapError(common.KindInputInvalid, err, "malformed artifact reference")
	}
	exp, err := strconv.ParseInt(vals.Get("exp"), 10, 64)
	if err != nil {
		return "", common.NewError(common.KindInputInvalid, "malformed artifact reference expiry")
	}
	if !hmac.Equal([]byte(vals.Get("sig")), []byte(s.mac(name, exp))) {
		return "", common.NewError(common.KindInputInvalid, "artifact reference signature mismatch")
	}
	if now.Unix() > exp {
		return "", common.NewError(common.KindInputInvalid, "artifact reference expired")
	}
	return name, nil
}
