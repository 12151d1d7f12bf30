package models

import (
	"errors"
	"net/url"
	"time"
)

// InvitationStatus is the response state of an invitation.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// ProofStatus is the review sub-state that starts once an invitation is
// accepted.
type ProofStatus string

const (
	ProofStatusPendingSubmission ProofStatus = "pending_submission"
	ProofStatusSubmitted         ProofStatus = "submitted"
	ProofStatusApproved          ProofStatus = "approved"
	ProofStatusRejected          ProofStatus = "rejected"
)

// Transition guard errors. Services translate these into conflict
// responses; they are never fatal.
var (
	ErrInvitationNotPending  = errors.New("invitation is no longer pending")
	ErrInvitationNotAccepted = errors.New("invitation has not been accepted")
	ErrProofNotSubmitted     = errors.New("proof has not been submitted")
	ErrProofURLInvalid       = errors.New("proof URL must be an absolute URL")
	ErrProofNotApproved      = errors.New("proof has not been approved")
	ErrPaymentAlreadyDone    = errors.New("payment already marked completed")
)

// Invitation is the authoritative workflow object: a confirmed offer
// extended to one influencer for one campaign. The (campaign, influencer)
// pair is unique, which also makes the replacement flow idempotent.
type Invitation struct {
	BaseModel
	Key          string            `gorm:"type:varchar(36);uniqueIndex;not null" json:"key"`
	CampaignID   uint              `gorm:"not null;index:idx_invitation_pair,unique" json:"campaign_id"`
	Campaign     Campaign          `gorm:"foreignKey:CampaignID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	InfluencerID uint              `gorm:"not null;index:idx_invitation_pair,unique" json:"influencer_id"`
	Influencer   InfluencerProfile `gorm:"foreignKey:InfluencerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Status        InvitationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ScheduledDate *time.Time       `gorm:"type:timestamptz" json:"scheduled_date,omitempty"`

	// OfferedPrice nil or zero means a hospitality-only collaboration.
	OfferedPrice *float64 `json:"offered_price,omitempty"`

	ProofStatus         ProofStatus `gorm:"type:varchar(30);not null;default:'pending_submission';index" json:"proof_status"`
	ProofURL            string      `gorm:"type:varchar(500)" json:"proof_url"`
	ProofSubmittedAt    *time.Time  `gorm:"type:timestamptz" json:"proof_submitted_at,omitempty"`
	ProofApprovedAt     *time.Time  `gorm:"type:timestamptz" json:"proof_approved_at,omitempty"`
	ProofRejectedReason string      `gorm:"type:text" json:"proof_rejected_reason,omitempty"`

	PaymentCompleted bool       `gorm:"default:false;index" json:"payment_completed"`
	RespondedAt      *time.Time `gorm:"type:timestamptz" json:"responded_at,omitempty"`
}

// IsHospitality reports whether this collaboration carries no payout.
func (i *Invitation) IsHospitality() bool {
	return i.OfferedPrice == nil || *i.OfferedPrice == 0
}

// Cost is the budget impact of this invitation.
func (i *Invitation) Cost() float64 {
	if i.OfferedPrice == nil {
		return 0
	}
	return *i.OfferedPrice
}

// Accept moves pending → accepted.
func (i *Invitation) Accept(now time.Time) error {
	if i.Status != InvitationStatusPending {
		return ErrInvitationNotPending
	}
	i.Status = InvitationStatusAccepted
	i.RespondedAt = &now
	return nil
}

// Decline moves pending → declined. The caller is responsible for running
// the replacement flow afterwards.
func (i *Invitation) Decline(now time.Time) error {
	if i.Status != InvitationStatusPending {
		return ErrInvitationNotPending
	}
	i.Status = InvitationStatusDeclined
	i.RespondedAt = &now
	return nil
}

// IsExpired reports whether a still-pending invitation has sat unanswered
// past the expiry window. Non-pending invitations never expire.
func (i *Invitation) IsExpired(now time.Time, expiry time.Duration) bool {
	return i.Status == InvitationStatusPending &&
		i.RespondedAt == nil &&
		now.Sub(i.CreatedAt) > expiry
}

// SubmitProof records a content URL for review. Valid from an accepted
// invitation whose proof is awaiting submission or was rejected (rejection
// reopens the cycle). The URL must be absolute; reachability is not checked.
func (i *Invitation) SubmitProof(proofURL string, now time.Time) error {
	if i.Status != InvitationStatusAccepted {
		return ErrInvitationNotAccepted
	}
	if i.ProofStatus != ProofStatusPendingSubmission && i.ProofStatus != ProofStatusRejected {
		return ErrProofNotSubmitted
	}
	u, err := url.Parse(proofURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrProofURLInvalid
	}
	i.ProofURL = proofURL
	i.ProofStatus = ProofStatusSubmitted
	i.ProofSubmittedAt = &now
	i.ProofRejectedReason = ""
	return nil
}

// ApproveProof is the owner's explicit sign-off on submitted content.
func (i *Invitation) ApproveProof(now time.Time) error {
	if i.ProofStatus != ProofStatusSubmitted {
		return ErrProofNotSubmitted
	}
	i.ProofStatus = ProofStatusApproved
	i.ProofApprovedAt = &now
	i.ProofRejectedReason = ""
	return nil
}

// RejectProof sends submitted content back with a reason. The influencer
// may resubmit, restarting the review cycle.
func (i *Invitation) RejectProof(reason string, now time.Time) error {
	if i.ProofStatus != ProofStatusSubmitted {
		return ErrProofNotSubmitted
	}
	i.ProofStatus = ProofStatusRejected
	i.ProofRejectedReason = reason
	i.ProofApprovedAt = nil
	return nil
}

// IsAutoApprovable reports whether a submitted proof has waited past the
// review window without owner action. The sweep persists this transition;
// this predicate also backs read-time eligibility between sweep runs.
func (i *Invitation) IsAutoApprovable(now time.Time, reviewWindow time.Duration) bool {
	return i.ProofStatus == ProofStatusSubmitted &&
		i.ProofSubmittedAt != nil &&
		now.Sub(*i.ProofSubmittedAt) > reviewWindow
}

// PaymentEligible reports whether the invitation can be paid out:
// explicitly approved, or implicitly approved by the review window lapsing.
func (i *Invitation) PaymentEligible(now time.Time, reviewWindow time.Duration) bool {
	if i.ProofStatus == ProofStatusApproved {
		return true
	}
	return i.IsAutoApprovable(now, reviewWindow)
}

// MarkPaymentCompleted flags the payout as done. Admin action, only valid
// once the proof is approved (explicitly or by auto-approval).
func (i *Invitation) MarkPaymentCompleted(now time.Time, reviewWindow time.Duration) error {
	if i.PaymentCompleted {
		return ErrPaymentAlreadyDone
	}
	if !i.PaymentEligible(now, reviewWindow) {
		return ErrProofNotApproved
	}
	i.PaymentCompleted = true
	return nil
}
