// Package cognito adapts AWS Cognito to the service.IdentityStore
// capability and verifies the access tokens Cognito issues.
package cognito

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// secretHash computes the SECRET_HASH parameter Cognito requires when the
// app client has a secret: base64(HMAC-SHA256(username + clientID)) keyed
// with the client secret.
func secretHash(username, clientID, clientSecret string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(username + clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
