// Package auth contains code to decide what arena viewers are allowed to see and do.
package auth

import (
	"fmt"
	"io"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/jacobpatterson1549/selene-arena/game/player"
)

type (
	// JwtTokenizer creates and reads viewer tokens.
	JwtTokenizer struct {
		method jwt.SigningMethod
		key    interface{}
		TokenizerConfig
	}

	// TokenizerConfig contains fields which describe a Tokenizer.
	TokenizerConfig struct {
		// KeyReader is used to generate token keys.
		KeyReader io.Reader
		// TimeFunc is a function which should supply the current time since the unix epoch.
		// Used to set the the length of time the token is valid.
		TimeFunc func() int64
		// ValidSec is the length of time the token is valid from the issuing time, in seconds.
		ValidSec int64
	}

	// Claims are what a viewer is allowed to see and do.
	Claims struct {
		// Player is the player the viewer can act as.  Viewers without a player can only watch.
		Player *player.ID
		// Preview causes the viewer to see the arena without owners of tiles.
		Preview bool
	}

	// jwtViewerClaims is the json form of the claims.  The player is stored in the Subject ("sub") field.
	jwtViewerClaims struct {
		Preview bool `json:"preview,omitempty"`
		jwt.RegisteredClaims
	}
)

// NewTokenizer creates a Tokenizer that uses the random number generator to generate tokens.
func (cfg TokenizerConfig) NewTokenizer() (*JwtTokenizer, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating tokenizer: validation: %w", err)
	}
	key := make([]byte, 64)
	if _, err := cfg.KeyReader.Read(key); err != nil {
		return nil, fmt.Errorf("generating Tokenizer key: %w", err)
	}
	t := JwtTokenizer{
		method:          jwt.SigningMethodHS256,
		key:             key,
		TokenizerConfig: cfg,
	}
	return &t, nil
}

// validate ensures the configuration has no errors.
func (cfg TokenizerConfig) validate() error {
	switch {
	case cfg.KeyReader == nil:
		return fmt.Errorf("key reader required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	case cfg.ValidSec <= 0:
		return fmt.Errorf("positive valid seconds required")
	}
	return nil
}

// Create converts the claims to a token string.
func (j JwtTokenizer) Create(c Claims) (string, error) {
	now := j.TimeFunc()
	expiresAt := now + j.ValidSec
	registeredClaims := jwt.RegisteredClaims{
		NotBefore: jwt.NewNumericDate(time.Unix(now, 0)),
		ExpiresAt: jwt.NewNumericDate(time.Unix(expiresAt, 0)),
	}
	if c.Player != nil {
		registeredClaims.Subject = strconv.Itoa(int(*c.Player))
	}
	claims := jwtViewerClaims{
		Preview:          c.Preview,
		RegisteredClaims: registeredClaims,
	}
	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString(j.key)
}

// Read extracts the claims from the token string.
func (j JwtTokenizer) Read(tokenString string) (*Claims, error) {
	var claims jwtViewerClaims
	if _, err := jwt.ParseWithClaims(tokenString, &claims, j.keyFunc); err != nil {
		return nil, err
	}
	c := Claims{
		Preview: claims.Preview,
	}
	if len(claims.Subject) != 0 {
		id, err := strconv.Atoi(claims.Subject)
		if err != nil {
			return nil, fmt.Errorf("reading player from token: %w", err)
		}
		pID := player.ID(id)
		c.Player = &pID
	}
	return &c, nil
}

// keyFunc ensures the key type (method) of the token is correct before returning the key.
func (j JwtTokenizer) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != j.method {
		return nil, fmt.Errorf("incorrect authorization signing method")
	}
	return j.key, nil
}
