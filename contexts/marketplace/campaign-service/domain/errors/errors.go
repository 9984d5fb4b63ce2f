package errors

import "errors"

var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrInvalidCampaignInput   = errors.New("invalid campaign input")
	ErrCampaignNotActive      = errors.New("campaign is not active, cannot be updated")
	ErrCampaignNotOwned       = errors.New("campaign does not belong to this brand")
	ErrInvalidApprovalStatus  = errors.New("invalid approval status")
	ErrCampaignQuotaExceeded  = errors.New("monthly campaign quota exceeded")
	ErrPackageLimitUnresolved = errors.New("active subscription has no resolvable package limit")
)
