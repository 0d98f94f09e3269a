package domain_test

import (
	"testing"

	"github.com/friendpay/friendpay_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	a, b := domain.CanonicalPair(2, 1)
	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(2), b)

	a, b = domain.CanonicalPair(1, 2)
	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(2), b)
}

func TestTransferDecisionMessages(t *testing.T) {
	cases := []struct {
		reason  domain.RejectionReason
		message string
	}{
		{domain.RejectionRecipientNotFound, "Recipient not found"},
		{domain.RejectionSelfTransfer, "You cannot send money to yourself"},
		{domain.RejectionNotConnected, "You can only send money to your connections."},
		{domain.RejectionInvalidAmount, "Amount must be at least 0.01"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.message, domain.Reject(tc.reason).Message())
	}
	assert.Empty(t, domain.Accept().Message())
	assert.True(t, domain.Accept().Accepted)
	assert.False(t, domain.Reject(domain.RejectionNotConnected).Accepted)
}
