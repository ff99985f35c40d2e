package cognito

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/micropay/micropay-api/internal/service"
)

// jwksRefreshInterval bounds how often the verifier re-fetches the key set.
// Cognito rotates signing keys rarely; a stale set only matters when a token
// arrives signed by a key fetched after our last refresh.
const jwksRefreshInterval = 15 * time.Minute

type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

// Verifier validates Cognito-issued access tokens against the user pool's
// published JWKS. It is safe for concurrent use.
type Verifier struct {
	issuer   string
	clientID string
	httpc    *http.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// NewVerifier creates a token verifier for the given user pool. httpc may be
// nil, in which case http.DefaultClient is used.
func NewVerifier(region, userPoolID, clientID string, httpc *http.Client) *Verifier {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Verifier{
		issuer:   fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID),
		clientID: clientID,
		httpc:    httpc,
	}
}

// Verify parses and validates an access token. It returns the principal's
// pool username (the email) on success, and an error wrapping
// service.ErrInvalidCredentials on any validation failure.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token missing kid header")
		}
		return v.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: unexpected claims type", service.ErrInvalidCredentials)
	}

	// Cognito access tokens carry token_use=access and the app client ID in
	// the client_id claim (not aud).
	if use, _ := claims["token_use"].(string); use != "access" {
		return "", fmt.Errorf("%w: token_use is not access", service.ErrInvalidCredentials)
	}
	if cid, _ := claims["client_id"].(string); cid != v.clientID {
		return "", fmt.Errorf("%w: token issued for another client", service.ErrInvalidCredentials)
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return "", fmt.Errorf("%w: token missing username", service.ErrInvalidCredentials)
	}
	return username, nil
}

func (v *Verifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Since(v.fetchedAt) < jwksRefreshInterval
	v.mu.RUnlock()
	if ok {
		return key, nil
	}
	if fresh {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}

	if err := v.refresh(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

func (v *Verifier) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.issuer+"/.well-known/jwks.json", nil)
	if err != nil {
		return err
	}

	resp, err := v.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("fetching jwks: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching jwks: unexpected status %d", resp.StatusCode)
	}

	var set jwks
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("decoding jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := rsaKeyFromJWK(k)
		if err != nil {
			return fmt.Errorf("parsing jwk %q: %w", k.Kid, err)
		}
		keys[k.Kid] = pub
	}

	v.mu.Lock()
	v.keys = keys
	v.fetchedAt = time.Now()
	v.mu.Unlock()
	return nil
}

func rsaKeyFromJWK(k jwk) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("exponent: %w", err)
	}

	e := 0
	for _, b := range eb {
		e = e<<8 | int(b)
	}
	if e <= 0 {
		return nil, errors.New("non-positive exponent")
	}

	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}
