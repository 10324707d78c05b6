package service

import (
	"context"
	"fmt"
	"testing"

	"chat-billing/internal/errs"
	"chat-billing/internal/model"
	"chat-billing/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newFriendFixture(t *testing.T) (FriendService, repository.FriendRequestRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.FriendRequest{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	repo := repository.NewFriendRequestRepository(db)
	return NewFriendService(repo), repo
}

func TestFriendListPendingDefaults(t *testing.T) {
	svc, _ := newFriendFixture(t)
	ctx := context.Background()

	for i := 0; i < 23; i++ {
		if _, err := svc.SendRequest(ctx, fmt.Sprintf("sender-%d", i), "Sender", "me"); err != nil {
			t.Fatalf("send: %v", err)
		}
	}

	// page and page size out of range fall back to 1 and 20
	resp, err := svc.ListPending(ctx, "me", 0, 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Pagination.Page != 1 || resp.Pagination.PageSize != 20 {
		t.Errorf("pagination = %+v", resp.Pagination)
	}
	if resp.Pagination.Total != 23 {
		t.Errorf("total = %d, want 23", resp.Pagination.Total)
	}
	if len(resp.Requests) != 20 {
		t.Errorf("page size = %d, want 20", len(resp.Requests))
	}
}

func TestFriendListPendingEmpty(t *testing.T) {
	svc, _ := newFriendFixture(t)

	resp, err := svc.ListPending(context.Background(), "me", 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Requests) != 0 || resp.Pagination.Total != 0 {
		t.Errorf("expected empty list, got %+v", resp)
	}
}

func TestFriendResolveAcceptAndReject(t *testing.T) {
	svc, repo := newFriendFixture(t)
	ctx := context.Background()

	acceptID, _ := svc.SendRequest(ctx, "alice", "Alice", "me")
	rejectID, _ := svc.SendRequest(ctx, "bob", "Bob", "me")

	if err := svc.Resolve(ctx, "me", acceptID, true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := svc.Resolve(ctx, "me", rejectID, false); err != nil {
		t.Fatalf("reject: %v", err)
	}

	accepted, _ := repo.Get(ctx, acceptID)
	if accepted.Status != model.FriendRequestAccepted {
		t.Errorf("status = %d, want accepted", accepted.Status)
	}
	rejected, _ := repo.Get(ctx, rejectID)
	if rejected.Status != model.FriendRequestRejected {
		t.Errorf("status = %d, want rejected", rejected.Status)
	}
}

func TestFriendResolveUnknownRequest(t *testing.T) {
	svc, _ := newFriendFixture(t)

	err := svc.Resolve(context.Background(), "me", "no-such-request", true)
	if errs.CodeOf(err) != errs.CodeNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestFriendResolveWrongRecipient(t *testing.T) {
	svc, _ := newFriendFixture(t)
	ctx := context.Background()

	id, _ := svc.SendRequest(ctx, "alice", "Alice", "me")

	err := svc.Resolve(ctx, "impostor", id, true)
	if errs.CodeOf(err) != errs.CodeNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestFriendResolveTwiceIsInvalidState(t *testing.T) {
	svc, _ := newFriendFixture(t)
	ctx := context.Background()

	id, _ := svc.SendRequest(ctx, "alice", "Alice", "me")

	if err := svc.Resolve(ctx, "me", id, true); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	err := svc.Resolve(ctx, "me", id, false)
	if errs.CodeOf(err) != errs.CodeInvalidState {
		t.Fatalf("second resolve: %v, want InvalidState", err)
	}
}
