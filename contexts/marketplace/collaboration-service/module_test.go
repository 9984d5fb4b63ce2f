package collaborationservice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"brandlink/contexts/marketplace/collaboration-service/adapters/memory"
	"brandlink/contexts/marketplace/collaboration-service/application/queries"
	"brandlink/contexts/marketplace/collaboration-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/collaboration-service/domain/errors"
	"brandlink/contexts/marketplace/collaboration-service/ports"
	httptransport "brandlink/contexts/marketplace/collaboration-service/transport/http"
)

func seedCampaign(module Module, campaignID string, limit int, approval string) {
	module.Store.SeedCampaign(ports.CampaignSnapshot{
		CampaignID:         campaignID,
		BrandID:            "brand_1",
		Name:               "Launch",
		Image:              "https://cdn.example.com/launch.png",
		CollaborationLimit: limit,
		ApprovalStatus:     approval,
		Active:             true,
	})
}

func TestShowInterestRequiresApprovedCampaign(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	seedCampaign(module, "camp_pending", 2, "Pending")
	if _, err := module.Handler.ShowInterestHandler(ctx, "inf_1", httptransport.ShowInterestRequest{CampaignID: "camp_pending"}); !errors.Is(err, domainerrors.ErrApprovalRequired) {
		t.Fatalf("expected approval required, got %v", err)
	}

	seedCampaign(module, "camp_rejected", 2, "Rejected")
	if _, err := module.Handler.ShowInterestHandler(ctx, "inf_1", httptransport.ShowInterestRequest{CampaignID: "camp_rejected"}); !errors.Is(err, domainerrors.ErrCampaignRejected) {
		t.Fatalf("expected campaign rejected, got %v", err)
	}

	if _, err := module.Handler.ShowInterestHandler(ctx, "inf_1", httptransport.ShowInterestRequest{CampaignID: "camp_missing"}); !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected campaign not found, got %v", err)
	}
}

func TestShowInterestRejectsDuplicatePair(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	seedCampaign(module, "camp_1", 2, "Approved")

	if _, err := module.Handler.ShowInterestHandler(ctx, "inf_1", httptransport.ShowInterestRequest{CampaignID: "camp_1"}); err != nil {
		t.Fatalf("show interest failed: %v", err)
	}
	if _, err := module.Handler.ShowInterestHandler(ctx, "inf_1", httptransport.ShowInterestRequest{CampaignID: "camp_1"}); !errors.Is(err, domainerrors.ErrAlreadyInvited) {
		t.Fatalf("expected duplicate pair rejection, got %v", err)
	}
	// The brand cannot re-invite an influencer who already showed interest.
	if _, err := module.Handler.InviteInfluencerHandler(ctx, "brand_1", httptransport.InviteInfluencerRequest{CampaignID: "camp_1", InfluencerID: "inf_1"}); !errors.Is(err, domainerrors.ErrAlreadyInvited) {
		t.Fatalf("expected duplicate pair rejection for invite, got %v", err)
	}
}

func TestInviteMonthlyQuota(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	seedCampaign(module, "camp_1", 2, "Approved")

	for i := 0; i < 2; i++ {
		req := httptransport.InviteInfluencerRequest{CampaignID: "camp_1", InfluencerID: fmt.Sprintf("inf_%d", i)}
		if _, err := module.Handler.InviteInfluencerHandler(ctx, "brand_1", req); err != nil {
			t.Fatalf("invite %d failed: %v", i, err)
		}
	}
	req := httptransport.InviteInfluencerRequest{CampaignID: "camp_1", InfluencerID: "inf_over"}
	if _, err := module.Handler.InviteInfluencerHandler(ctx, "brand_1", req); !errors.Is(err, domainerrors.ErrQuotaExceeded) {
		t.Fatalf("expected invite quota exceeded, got %v", err)
	}

	// Interest from yet another influencer still opens; the slot counter
	// gates it at accept time instead.
	if _, err := module.Handler.ShowInterestHandler(ctx, "inf_extra", httptransport.ShowInterestRequest{CampaignID: "camp_1"}); err != nil {
		t.Fatalf("interest after invite quota failed: %v", err)
	}
}

func TestInviteOnlyByCampaignOwner(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	seedCampaign(module, "camp_1", 2, "Approved")

	req := httptransport.InviteInfluencerRequest{CampaignID: "camp_1", InfluencerID: "inf_1"}
	if _, err := module.Handler.InviteInfluencerHandler(ctx, "brand_other", req); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign brand, got %v", err)
	}
}

func TestConcurrentAcceptsNeverOvershootLimit(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	const limit = 3
	const contenders = 10
	seedCampaign(module, "camp_race", limit, "Approved")

	ids := make([]string, 0, contenders)
	for i := 0; i < contenders; i++ {
		resp, err := module.Handler.ShowInterestHandler(ctx, fmt.Sprintf("inf_%d", i), httptransport.ShowInterestRequest{CampaignID: "camp_race"})
		if err != nil {
			t.Fatalf("show interest %d failed: %v", i, err)
		}
		ids = append(ids, resp.Collaboration.CollaborationID)
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, err := module.Handler.RespondHandler(ctx, "brand_1", id, httptransport.RespondRequest{Action: "accept"})
			errs[i] = err
		}(i, id)
	}
	wg.Wait()

	accepted := 0
	quotaFailures := 0
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, domainerrors.ErrQuotaExceeded):
			quotaFailures++
		default:
			t.Fatalf("unexpected accept error: %v", err)
		}
	}
	if accepted != limit {
		t.Fatalf("expected exactly %d accepts, got %d", limit, accepted)
	}
	if quotaFailures != contenders-limit {
		t.Fatalf("expected %d quota failures, got %d", contenders-limit, quotaFailures)
	}

	snapshot, ok := module.Store.CampaignSnapshotCopy("camp_race")
	if !ok {
		t.Fatal("campaign snapshot missing")
	}
	if snapshot.InfluencerCount != limit {
		t.Fatalf("expected final influencer count %d, got %d", limit, snapshot.InfluencerCount)
	}
}

func TestDuplicateProofSubmissionFails(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	seedCampaign(module, "camp_1", 2, "Approved")

	resp, err := module.Handler.ShowInterestHandler(ctx, "inf_1", httptransport.ShowInterestRequest{CampaignID: "camp_1"})
	if err != nil {
		t.Fatalf("show interest failed: %v", err)
	}
	id := resp.Collaboration.CollaborationID

	proofReq := httptransport.SubmitProofRequest{Images: []string{"img1.png"}, SocialLinks: []string{"https://social.example/post/1"}}

	// Proof before acceptance is rejected.
	if _, err := module.Handler.SubmitProofHandler(ctx, "inf_1", id, proofReq); !errors.Is(err, domainerrors.ErrCollaborationNotAccepted) {
		t.Fatalf("expected not-accepted rejection, got %v", err)
	}

	if _, err := module.Handler.RespondHandler(ctx, "brand_1", id, httptransport.RespondRequest{Action: "accept"}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := module.Handler.SubmitProofHandler(ctx, "inf_1", id, proofReq); err != nil {
		t.Fatalf("first proof failed: %v", err)
	}
	if _, err := module.Handler.SubmitProofHandler(ctx, "inf_1", id, proofReq); !errors.Is(err, domainerrors.ErrDuplicateSubmission) {
		t.Fatalf("expected duplicate submission, got %v", err)
	}
}

func TestConcurrentProofSubmissionsInsertExactlyOne(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	seedCampaign(module, "camp_1", 2, "Approved")

	resp, err := module.Handler.ShowInterestHandler(ctx, "inf_1", httptransport.ShowInterestRequest{CampaignID: "camp_1"})
	if err != nil {
		t.Fatalf("show interest failed: %v", err)
	}
	id := resp.Collaboration.CollaborationID
	if _, err := module.Handler.RespondHandler(ctx, "brand_1", id, httptransport.RespondRequest{Action: "accept"}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	// Race the store directly so the guard holds even without the
	// handler's read-before-write check.
	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			now := time.Now().UTC()
			errs[i] = module.Store.CreateProof(ctx, entities.Proof{
				ProofID:         fmt.Sprintf("proof_%d", i),
				CollaborationID: id,
				CampaignID:      "camp_1",
				InfluencerID:    "inf_1",
				Images:          []string{"img1.png"},
				SocialLinks:     []string{"https://social.example/post/1"},
				Status:          entities.ProofPending,
				CreatedAt:       now,
				UpdatedAt:       now,
			})
		}(i)
	}
	wg.Wait()

	inserted := 0
	for _, err := range errs {
		if err == nil {
			inserted++
			continue
		}
		if !errors.Is(err, domainerrors.ErrDuplicateSubmission) {
			t.Fatalf("unexpected create error: %v", err)
		}
	}
	if inserted != 1 {
		t.Fatalf("inserted = %d proofs, want exactly 1", inserted)
	}
}

func TestCompleteRequiresProof(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	seedCampaign(module, "camp_1", 2, "Approved")

	resp, err := module.Handler.ShowInterestHandler(ctx, "inf_1", httptransport.ShowInterestRequest{CampaignID: "camp_1"})
	if err != nil {
		t.Fatalf("show interest failed: %v", err)
	}
	id := resp.Collaboration.CollaborationID

	if _, err := module.Handler.RespondHandler(ctx, "brand_1", id, httptransport.RespondRequest{Action: "accept"}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := module.Handler.CompleteHandler(ctx, "brand_1", id); !errors.Is(err, domainerrors.ErrProofRequired) {
		t.Fatalf("expected proof required, got %v", err)
	}

	proofReq := httptransport.SubmitProofRequest{Images: []string{"img1.png"}}
	if _, err := module.Handler.SubmitProofHandler(ctx, "inf_1", id, proofReq); err != nil {
		t.Fatalf("proof failed: %v", err)
	}
	completed, err := module.Handler.CompleteHandler(ctx, "brand_1", id)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Collaboration.Status != string(entities.StatusCompleted) {
		t.Fatalf("expected Completed, got %s", completed.Collaboration.Status)
	}

	proof, err := module.Handler.Queries.GetProof(ctx, id)
	if err != nil {
		t.Fatalf("get proof failed: %v", err)
	}
	if proof.Status != entities.ProofCompleted {
		t.Fatalf("expected proof flipped to Completed, got %s", proof.Status)
	}
}

func TestTerminalStatesAreImmutable(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	seedCampaign(module, "camp_1", 5, "Approved")

	rejected, err := module.Handler.ShowInterestHandler(ctx, "inf_r", httptransport.ShowInterestRequest{CampaignID: "camp_1"})
	if err != nil {
		t.Fatalf("show interest failed: %v", err)
	}
	if _, err := module.Handler.RespondHandler(ctx, "brand_1", rejected.Collaboration.CollaborationID, httptransport.RespondRequest{Action: "reject"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	for _, action := range []string{"accept", "reject"} {
		if _, err := module.Handler.RespondHandler(ctx, "brand_1", rejected.Collaboration.CollaborationID, httptransport.RespondRequest{Action: action}); !errors.Is(err, domainerrors.ErrAlreadyFinalized) {
			t.Fatalf("expected already finalized on %s, got %v", action, err)
		}
	}

	cancelled, err := module.Handler.ShowInterestHandler(ctx, "inf_c", httptransport.ShowInterestRequest{CampaignID: "camp_1"})
	if err != nil {
		t.Fatalf("show interest failed: %v", err)
	}
	if _, err := module.Handler.CancelHandler(ctx, "brand_1", cancelled.Collaboration.CollaborationID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := module.Handler.CancelHandler(ctx, "brand_1", cancelled.Collaboration.CollaborationID); !errors.Is(err, domainerrors.ErrAlreadyFinalized) {
		t.Fatalf("expected already finalized on double cancel, got %v", err)
	}
	if _, err := module.Handler.CompleteHandler(ctx, "brand_1", cancelled.Collaboration.CollaborationID); !errors.Is(err, domainerrors.ErrAlreadyFinalized) {
		t.Fatalf("expected already finalized on complete after cancel, got %v", err)
	}
}

func TestCancelDoesNotReleaseSlot(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	seedCampaign(module, "camp_1", 2, "Approved")

	resp, err := module.Handler.ShowInterestHandler(ctx, "inf_1", httptransport.ShowInterestRequest{CampaignID: "camp_1"})
	if err != nil {
		t.Fatalf("show interest failed: %v", err)
	}
	if _, err := module.Handler.RespondHandler(ctx, "brand_1", resp.Collaboration.CollaborationID, httptransport.RespondRequest{Action: "accept"}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := module.Handler.CancelHandler(ctx, "brand_1", resp.Collaboration.CollaborationID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	snapshot, _ := module.Store.CampaignSnapshotCopy("camp_1")
	if snapshot.InfluencerCount != 1 {
		t.Fatalf("expected slot kept after cancel, got count %d", snapshot.InfluencerCount)
	}
}

func TestEndToEndTwoSlotCampaign(t *testing.T) {
	publisher := &memory.CapturingPublisher{}
	module := NewInMemoryModule(nil, publisher, nil)
	ctx := context.Background()
	seedCampaign(module, "camp_e2e", 2, "Approved")

	accept := func(t *testing.T, influencerID string) (httptransport.RespondResponse, error) {
		t.Helper()
		resp, err := module.Handler.ShowInterestHandler(ctx, influencerID, httptransport.ShowInterestRequest{CampaignID: "camp_e2e"})
		if err != nil {
			t.Fatalf("show interest for %s failed: %v", influencerID, err)
		}
		return module.Handler.RespondHandler(ctx, "brand_1", resp.Collaboration.CollaborationID, httptransport.RespondRequest{Action: "accept"})
	}

	first, err := accept(t, "inf_a")
	if err != nil {
		t.Fatalf("accept A failed: %v", err)
	}
	if first.InfluencerCount != 1 {
		t.Fatalf("expected count 1 after A, got %d", first.InfluencerCount)
	}

	second, err := accept(t, "inf_b")
	if err != nil {
		t.Fatalf("accept B failed: %v", err)
	}
	if second.InfluencerCount != 2 {
		t.Fatalf("expected count 2 after B, got %d", second.InfluencerCount)
	}

	if _, err := accept(t, "inf_c"); !errors.Is(err, domainerrors.ErrQuotaExceeded) {
		t.Fatalf("expected quota exceeded for C, got %v", err)
	}
	snapshot, _ := module.Store.CampaignSnapshotCopy("camp_e2e")
	if snapshot.InfluencerCount != 2 {
		t.Fatalf("expected count to stay 2, got %d", snapshot.InfluencerCount)
	}

	// Each accept left one event in the outbox; relaying twice publishes
	// each exactly once.
	if err := module.OutboxRelay.RunOnce(ctx); err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if err := module.OutboxRelay.RunOnce(ctx); err != nil {
		t.Fatalf("second relay failed: %v", err)
	}
	if got := len(publisher.Published()); got != 2 {
		t.Fatalf("expected 2 published events, got %d", got)
	}
}

func TestListCollaborationsFilters(t *testing.T) {
	module := NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	seedCampaign(module, "camp_1", 10, "Approved")

	if _, err := module.Handler.InviteInfluencerHandler(ctx, "brand_1", httptransport.InviteInfluencerRequest{CampaignID: "camp_1", InfluencerID: "inf_1"}); err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if _, err := module.Handler.ShowInterestHandler(ctx, "inf_2", httptransport.ShowInterestRequest{CampaignID: "camp_1"}); err != nil {
		t.Fatalf("interest failed: %v", err)
	}

	invitedOnly, err := module.Handler.ListCollaborationsHandler(ctx, queries.ListCollaborationsQuery{
		CampaignID: "camp_1",
		Origin:     entities.OriginInvited,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if invitedOnly.Total != 1 {
		t.Fatalf("expected one invited collaboration, got %d", invitedOnly.Total)
	}

	forInfluencer, err := module.Handler.ListCollaborationsHandler(ctx, queries.ListCollaborationsQuery{InfluencerID: "inf_2"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if forInfluencer.Total != 1 || forInfluencer.Collaborations[0].Origin != string(entities.OriginInterested) {
		t.Fatalf("unexpected influencer listing: %+v", forInfluencer)
	}
}
