package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-access-server/users"
	"github.com/pkg/errors"
)

// InvalidTokenErr covers every parse failure: malformed input, a signature
// that does not verify, or an expired token.
var InvalidTokenErr = errors.New("invalid token")

// Claims is the identity a verified token carries.
type Claims struct {
	Name     string    // Display name, derived from the user's name fields
	RoleID   string    // Role driving authorization lookups
	Email    string    // Login identifier
	IssuedAt time.Time // When the token was minted
	TokenID  string    // Unique token ID (jti)
}

// Service mints and parses the signed access tokens the login flow issues.
type Service struct {
	signer  Signer
	issuer  string
	expiry  time.Duration // 0 disables the exp claim
	nowFunc func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithExpiry attaches an exp claim to minted tokens. The zero default keeps
// tokens non-expiring.
func WithExpiry(expiry time.Duration) ServiceOption {
	return func(s *Service) {
		s.expiry = expiry
	}
}

// WithIssuer sets the iss claim on minted tokens.
func WithIssuer(issuer string) ServiceOption {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

// New initializes a token Service with the required signer.
func New(signer Signer, options ...ServiceOption) (*Service, error) {
	if signer == nil {
		return nil, errors.New("[token.New] signer is required")
	}

	s := &Service{
		signer:  signer,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Mint creates a signed token carrying the user's display name, role and
// email.
func (s *Service) Mint(user *users.User) (string, error) {
	if user == nil {
		return "", errors.New("[Service.Mint] user is required")
	}

	now := s.nowFunc()
	claims := jwt.MapClaims{
		"name":  user.DisplayName(),
		"role":  user.RoleID,
		"email": user.Email,
		"iat":   now.Unix(),
		"jti":   uuid.New().String(),
	}
	if s.issuer != "" {
		claims["iss"] = s.issuer
	}
	if s.expiry > 0 {
		claims["exp"] = now.Add(s.expiry).Unix()
	}

	signedToken, err := s.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Mint] signer.Sign")
	}
	return signedToken, nil
}

// Parse verifies the signature of a raw token and returns its claims.
// Any malformed, tampered or expired token fails with InvalidTokenErr.
func (s *Service) Parse(rawToken string) (*Claims, error) {
	parsed, err := jwt.Parse(rawToken, s.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{s.signer.GetSigningMethod().Alg()}))
	if err != nil || !parsed.Valid {
		return nil, InvalidTokenErr
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, InvalidTokenErr
	}

	name, _ := mapClaims["name"].(string)
	role, _ := mapClaims["role"].(string)
	email, _ := mapClaims["email"].(string)
	jti, _ := mapClaims["jti"].(string)
	iat, _ := mapClaims["iat"].(float64)

	return &Claims{
		Name:     name,
		RoleID:   role,
		Email:    email,
		IssuedAt: time.Unix(int64(iat), 0),
		TokenID:  jti,
	}, nil
}
