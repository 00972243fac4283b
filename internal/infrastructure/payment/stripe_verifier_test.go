package payment

import (
	"testing"

	"github.com/cafepos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentIDFromClientSecret(t *testing.T) {
	id, err := IntentIDFromClientSecret("pi_3Abc123_secret_XyZ789")
	require.NoError(t, err)
	assert.Equal(t, "pi_3Abc123", id)
}

func TestIntentIDFromClientSecret_Malformed(t *testing.T) {
	cases := []string{
		"",
		"pi_3Abc123",
		"_secret_only",
		"cs_test_123_secret_456",
	}
	for _, secret := range cases {
		_, err := IntentIDFromClientSecret(secret)
		assert.Error(t, err, "secret %q should be rejected", secret)
	}
}

func TestNewStripeVerifier_RequiresSecretKey(t *testing.T) {
	_, err := NewStripeVerifier(config.StripeConfig{}, nil)
	assert.Error(t, err)

	_, err = NewStripeVerifier(config.StripeConfig{SecretKey: "sk_test_123"}, nil)
	assert.NoError(t, err)
}
