package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingInvitation(createdAt time.Time) Invitation {
	inv := Invitation{
		Status:      InvitationStatusPending,
		ProofStatus: ProofStatusPendingSubmission,
	}
	inv.CreatedAt = createdAt
	return inv
}

func acceptedInvitation(t *testing.T, now time.Time) Invitation {
	t.Helper()
	inv := pendingInvitation(now.Add(-time.Hour))
	require.NoError(t, inv.Accept(now))
	return inv
}

func TestAccept(t *testing.T) {
	now := time.Now().UTC()
	inv := pendingInvitation(now.Add(-time.Hour))

	require.NoError(t, inv.Accept(now))
	assert.Equal(t, InvitationStatusAccepted, inv.Status)
	require.NotNil(t, inv.RespondedAt)
	assert.Equal(t, now, *inv.RespondedAt)

	assert.ErrorIs(t, inv.Accept(now), ErrInvitationNotPending)
	assert.ErrorIs(t, inv.Decline(now), ErrInvitationNotPending)
}

func TestDecline(t *testing.T) {
	now := time.Now().UTC()
	inv := pendingInvitation(now.Add(-time.Hour))

	require.NoError(t, inv.Decline(now))
	assert.Equal(t, InvitationStatusDeclined, inv.Status)

	assert.ErrorIs(t, inv.Accept(now), ErrInvitationNotPending)
}

func TestIsExpired(t *testing.T) {
	now := time.Now().UTC()
	expiry := 48 * time.Hour

	fresh := pendingInvitation(now.Add(-47 * time.Hour))
	assert.False(t, fresh.IsExpired(now, expiry))

	stale := pendingInvitation(now.Add(-49 * time.Hour))
	assert.True(t, stale.IsExpired(now, expiry))

	// A response at any point stops the clock.
	answered := pendingInvitation(now.Add(-100 * time.Hour))
	require.NoError(t, answered.Accept(now.Add(-99*time.Hour)))
	assert.False(t, answered.IsExpired(now, expiry))
}

func TestSubmitProof(t *testing.T) {
	now := time.Now().UTC()

	pending := pendingInvitation(now.Add(-time.Hour))
	assert.ErrorIs(t, pending.SubmitProof("https://example.com/post/1", now), ErrInvitationNotAccepted)

	inv := acceptedInvitation(t, now)
	assert.ErrorIs(t, inv.SubmitProof("not a url", now), ErrProofURLInvalid)
	assert.ErrorIs(t, inv.SubmitProof("/relative/path", now), ErrProofURLInvalid)
	assert.Equal(t, ProofStatusPendingSubmission, inv.ProofStatus)

	require.NoError(t, inv.SubmitProof("https://instagram.com/p/abc123", now))
	assert.Equal(t, ProofStatusSubmitted, inv.ProofStatus)
	assert.Equal(t, "https://instagram.com/p/abc123", inv.ProofURL)
	require.NotNil(t, inv.ProofSubmittedAt)

	// Already submitted: no double submission while under review.
	assert.ErrorIs(t, inv.SubmitProof("https://instagram.com/p/def456", now), ErrProofNotSubmitted)
}

func TestRejectThenResubmit(t *testing.T) {
	now := time.Now().UTC()
	inv := acceptedInvitation(t, now)
	require.NoError(t, inv.SubmitProof("https://instagram.com/p/abc123", now))

	require.NoError(t, inv.RejectProof("wrong campaign hashtag", now))
	assert.Equal(t, ProofStatusRejected, inv.ProofStatus)
	assert.Equal(t, "wrong campaign hashtag", inv.ProofRejectedReason)

	later := now.Add(time.Hour)
	require.NoError(t, inv.SubmitProof("https://instagram.com/p/fixed", later))
	assert.Equal(t, ProofStatusSubmitted, inv.ProofStatus)
	assert.Empty(t, inv.ProofRejectedReason, "resubmission clears the rejection")
}

func TestApproveProof(t *testing.T) {
	now := time.Now().UTC()
	inv := acceptedInvitation(t, now)

	assert.ErrorIs(t, inv.ApproveProof(now), ErrProofNotSubmitted)

	require.NoError(t, inv.SubmitProof("https://instagram.com/p/abc123", now))
	require.NoError(t, inv.ApproveProof(now))
	assert.Equal(t, ProofStatusApproved, inv.ProofStatus)
	require.NotNil(t, inv.ProofApprovedAt)

	assert.ErrorIs(t, inv.ApproveProof(now), ErrProofNotSubmitted)
	assert.ErrorIs(t, inv.RejectProof("too late", now), ErrProofNotSubmitted)
}

func TestIsAutoApprovable(t *testing.T) {
	now := time.Now().UTC()
	window := 24 * time.Hour
	inv := acceptedInvitation(t, now.Add(-30*time.Hour))

	require.NoError(t, inv.SubmitProof("https://instagram.com/p/abc123", now.Add(-23*time.Hour)))
	assert.False(t, inv.IsAutoApprovable(now, window), "still inside the review window")

	submittedAt := now.Add(-25 * time.Hour)
	inv.ProofSubmittedAt = &submittedAt
	assert.True(t, inv.IsAutoApprovable(now, window))

	require.NoError(t, inv.ApproveProof(now))
	assert.False(t, inv.IsAutoApprovable(now, window), "approved proofs are out of scope")
}

func TestPaymentEligible(t *testing.T) {
	now := time.Now().UTC()
	window := 24 * time.Hour

	inv := acceptedInvitation(t, now)
	assert.False(t, inv.PaymentEligible(now, window))

	require.NoError(t, inv.SubmitProof("https://instagram.com/p/abc123", now))
	assert.False(t, inv.PaymentEligible(now, window))

	require.NoError(t, inv.ApproveProof(now))
	assert.True(t, inv.PaymentEligible(now, window))

	// Auto-approval path: submitted long ago, never reviewed.
	lapsed := acceptedInvitation(t, now.Add(-48*time.Hour))
	submittedAt := now.Add(-25 * time.Hour)
	require.NoError(t, lapsed.SubmitProof("https://instagram.com/p/old", submittedAt))
	lapsed.ProofSubmittedAt = &submittedAt
	assert.True(t, lapsed.PaymentEligible(now, window))
}

func TestMarkPaymentCompleted(t *testing.T) {
	now := time.Now().UTC()
	window := 24 * time.Hour
	inv := acceptedInvitation(t, now)

	assert.ErrorIs(t, inv.MarkPaymentCompleted(now, window), ErrProofNotApproved)

	require.NoError(t, inv.SubmitProof("https://instagram.com/p/abc123", now))
	require.NoError(t, inv.ApproveProof(now))
	require.NoError(t, inv.MarkPaymentCompleted(now, window))
	assert.True(t, inv.PaymentCompleted)

	assert.ErrorIs(t, inv.MarkPaymentCompleted(now, window), ErrPaymentAlreadyDone)
}

func TestHospitalityCost(t *testing.T) {
	var inv Invitation
	assert.True(t, inv.IsHospitality())
	assert.Equal(t, 0.0, inv.Cost())

	zero := 0.0
	inv.OfferedPrice = &zero
	assert.True(t, inv.IsHospitality())

	price := 1500.0
	inv.OfferedPrice = &price
	assert.False(t, inv.IsHospitality())
	assert.Equal(t, 1500.0, inv.Cost())
}
