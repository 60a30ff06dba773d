package identity

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	issuerPrefix       = "https://securetoken.google.com/"
	defaultCertsMaxAge = time.Hour
	// an unknown kid refetches fresh keys at most this often
	minCertsRefresh = time.Minute
)

// FirebaseVerifier validates Firebase ID tokens: RS256 JWTs signed by one of
// Google's rotating keys, with audience equal to the project id.
type FirebaseVerifier struct {
	projectID string
	certsURL  string
	client    *http.Client
	now       func() time.Time

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
	fetched time.Time
}

// NewFirebaseVerifier returns a verifier for projectID that fetches signing keys from certsURL
func NewFirebaseVerifier(projectID, certsURL string, client *http.Client) *FirebaseVerifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &FirebaseVerifier{
		projectID: projectID,
		certsURL:  certsURL,
		client:    client,
		now:       time.Now,
	}
}

// Verify checks the token signature and claims and returns the email claim
func (v *FirebaseVerifier) Verify(ctx context.Context, raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid header")
		}
		return v.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if sub, _ := claims.GetSubject(); sub == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", ErrNoEmail
	}
	return strings.ToLower(email), nil
}

func (v *FirebaseVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	now := v.now()
	v.mu.RLock()
	k, ok := v.keys[kid]
	fresh := now.Before(v.expires)
	recent := now.Sub(v.fetched) < minCertsRefresh
	v.mu.RUnlock()
	if ok && fresh {
		return k, nil
	}
	if fresh && recent {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}

	if err := v.refresh(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	if k, ok = v.keys[kid]; !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return k, nil
}

func (v *FirebaseVerifier) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("build certs request: %w", err)
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch certs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch certs: status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("decode certs: %w", err)
	}
	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemData := range certs {
		pk, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemData))
		if err != nil {
			return fmt.Errorf("parse key %s: %w", kid, err)
		}
		keys[kid] = pk
	}

	maxAge := cacheMaxAge(resp.Header.Get("Cache-Control"))
	now := v.now()
	v.mu.Lock()
	v.keys = keys
	v.expires = now.Add(maxAge)
	v.fetched = now
	v.mu.Unlock()

	zap.S().Debugw("refreshed identity signing keys", "keys", len(keys), "maxAge", maxAge)
	return nil
}

func cacheMaxAge(header string) time.Duration {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "max-age=") {
			continue
		}
		secs, err := strconv.Atoi(strings.TrimPrefix(part, "max-age="))
		if err != nil || secs <= 0 {
			break
		}
		return time.Duration(secs) * time.Second
	}
	return defaultCertsMaxAge
}
