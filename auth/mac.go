// Package auth creates QBox management tokens.
//
// A management token binds an access key to the request path, the raw query
// and, for form-encoded requests, the exact body bytes:
//
//	QBox <accessKey>:<base64url(hmac-sha1(secretKey, path[?query]\n[body]))>
package auth

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // the QBox protocol mandates HMAC-SHA1
	"encoding/base64"
	"fmt"
	"net/url"

	qnerrors "github.com/forksen/forksen-qiniu/errors"
)

// TokenPrefix is the authorization scheme of a management token.
const TokenPrefix = "QBox "

// Signer produces the authorization value for a request.
// A nil body signs the URL only.
type Signer interface {
	ManageToken(rawURL string, body []byte) (string, error)
}

// Mac holds a key pair.
type Mac struct {
	AccessKey string
	SecretKey []byte
}

// New creates a Mac. Both keys must be non-empty.
func New(accessKey, secretKey string) (*Mac, error) {
	if accessKey == "" || secretKey == "" {
		return nil, qnerrors.NewError("auth", qnerrors.ErrInvalidCredentials).
			WithMessage("access key and secret key are required")
	}
	return &Mac{
		AccessKey: accessKey,
		SecretKey: []byte(secretKey),
	}, nil
}

// Sign returns "<accessKey>:<encodedSign>" for data.
func (m *Mac) Sign(data []byte) string {
	h := hmac.New(sha1.New, m.SecretKey)
	h.Write(data)
	return m.AccessKey + ":" + base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// SigningString returns the bytes a management token is computed over.
func SigningString(rawURL string, body []byte) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	data := u.Path
	if u.RawQuery != "" {
		data += "?" + u.RawQuery
	}
	buf := make([]byte, 0, len(data)+1+len(body))
	buf = append(buf, data...)
	buf = append(buf, '\n')
	buf = append(buf, body...)
	return buf, nil
}

// ManageToken implements Signer.
func (m *Mac) ManageToken(rawURL string, body []byte) (string, error) {
	data, err := SigningString(rawURL, body)
	if err != nil {
		return "", qnerrors.NewError("auth", qnerrors.ErrInvalidURL).WithMessage(err.Error())
	}
	return TokenPrefix + m.Sign(data), nil
}

var _ Signer = (*Mac)(nil)
