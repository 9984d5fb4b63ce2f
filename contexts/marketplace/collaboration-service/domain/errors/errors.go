package errors

import "errors"

var (
	ErrCollaborationNotFound    = errors.New("collaboration not found")
	ErrProofNotFound            = errors.New("proof not found")
	ErrCampaignNotFound         = errors.New("campaign not found")
	ErrInvalidInput             = errors.New("invalid collaboration input")
	ErrInvalidStatusTransition  = errors.New("invalid collaboration status transition")
	ErrAlreadyFinalized         = errors.New("collaboration already finalized")
	ErrQuotaExceeded            = errors.New("collaboration quota exceeded")
	ErrApprovalRequired         = errors.New("campaign is not approved")
	ErrCampaignRejected         = errors.New("campaign was rejected by the admin")
	ErrAlreadyInvited           = errors.New("collaboration already exists for this influencer")
	ErrCollaborationNotAccepted = errors.New("collaboration is not accepted")
	ErrDuplicateSubmission      = errors.New("proof already submitted for this collaboration")
	ErrProofRequired            = errors.New("no proof submitted for this collaboration")
	ErrForbidden                = errors.New("actor is not allowed to perform this action")
)
