package service

import (
	"context"
	"errors"
	"time"

	"chat-billing/internal/dto"
	"chat-billing/internal/errs"
	"chat-billing/internal/model"
	"chat-billing/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 20
)

type FriendService interface {
	SendRequest(ctx context.Context, fromUserID, fromUserName, toUserID string) (string, error)
	ListPending(ctx context.Context, userID string, page, pageSize int) (*dto.FriendRequestListResponse, error)
	Resolve(ctx context.Context, userID, requestID string, accept bool) error
}

type friendServiceImpl struct {
	friendRequestRepo repository.FriendRequestRepository
}

func NewFriendService(friendRequestRepo repository.FriendRequestRepository) FriendService {
	return &friendServiceImpl{
		friendRequestRepo: friendRequestRepo,
	}
}

func (s *friendServiceImpl) SendRequest(ctx context.Context, fromUserID, fromUserName, toUserID string) (string, error) {
	fr := &model.FriendRequest{
		ID:           uuid.NewString(),
		FromUserID:   fromUserID,
		FromUserName: fromUserName,
		ToUserID:     toUserID,
		Status:       model.FriendRequestPending,
	}
	if err := s.friendRequestRepo.Create(ctx, fr); err != nil {
		return "", errs.Internal("persist friend request", err)
	}

	return fr.ID, nil
}

func (s *friendServiceImpl) ListPending(ctx context.Context, userID string, page, pageSize int) (*dto.FriendRequestListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	requests, total, err := s.friendRequestRepo.ListPending(ctx, userID, page, pageSize)
	if err != nil {
		return nil, errs.Internal("list pending friend requests", err)
	}

	items := make([]*dto.FriendRequestItem, len(requests))
	for i, fr := range requests {
		items[i] = &dto.FriendRequestItem{
			ID:           fr.ID,
			FromUserID:   fr.FromUserID,
			FromUserName: fr.FromUserName,
			CreatedAt:    fr.CreatedAt.Format(time.RFC3339),
		}
	}

	return &dto.FriendRequestListResponse{
		Requests: items,
		Pagination: dto.Pagination{
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		},
	}, nil
}

func (s *friendServiceImpl) Resolve(ctx context.Context, userID, requestID string, accept bool) error {
	status := model.FriendRequestRejected
	if accept {
		status = model.FriendRequestAccepted
	}

	err := s.friendRequestRepo.Resolve(ctx, requestID, userID, status)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Internal("resolve friend request", err)
	}

	// Zero rows: either no such request for this user, or it was already
	// resolved. Distinguish so a double click reports InvalidState.
	fr, getErr := s.friendRequestRepo.Get(ctx, requestID)
	if getErr != nil || fr.ToUserID != userID {
		return errs.NotFound("friend request not found")
	}

	return errs.InvalidState("friend request already resolved")
}
