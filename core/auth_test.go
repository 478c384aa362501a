package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginMessage(t *testing.T) {
	assert.Equal(t, "TIDBIT Authentication\nNonce: abc123\nPurpose: Login\nVersion: 1", LoginMessage("abc123"))
}

func TestLoginMessageKeepsNonceVerbatim(t *testing.T) {
	msg := LoginMessage("  0xDEAD beef\t")
	assert.Contains(t, msg, "\nNonce:   0xDEAD beef\t\n")
}

func TestChallengeValidate(t *testing.T) {
	assert.NoError(t, Challenge{SessionID: "s1", Nonce: "n1"}.Validate())

	err := Challenge{Nonce: "n1"}.Validate()
	assert.True(t, errors.Is(err, ErrMalformedChallenge))

	err = Challenge{SessionID: "s1"}.Validate()
	assert.True(t, errors.Is(err, ErrMalformedChallenge))
}
