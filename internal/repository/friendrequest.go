package repository

import (
	"context"
	"time"

	"chat-billing/internal/model"

	"gorm.io/gorm"
)

type FriendRequestRepository interface {
	Create(ctx context.Context, fr *model.FriendRequest) error
	// ListPending returns one page of pending incoming requests for the
	// user, newest first, plus the total pending count.
	ListPending(ctx context.Context, toUserID string, page, pageSize int) ([]*model.FriendRequest, int64, error)
	Get(ctx context.Context, id string) (*model.FriendRequest, error)
	// Resolve moves a pending request to a terminal status. Returns
	// gorm.ErrRecordNotFound if the request is missing, belongs to
	// another recipient, or was already resolved.
	Resolve(ctx context.Context, id, toUserID string, status int8) error
}

type friendRequestRepoImpl struct {
	db *gorm.DB
}

func NewFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &friendRequestRepoImpl{
		db: db,
	}
}

func (r *friendRequestRepoImpl) Create(ctx context.Context, fr *model.FriendRequest) error {
	return r.db.WithContext(ctx).Create(fr).Error
}

func (r *friendRequestRepoImpl) ListPending(ctx context.Context, toUserID string, page, pageSize int) ([]*model.FriendRequest, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.FriendRequest{}).
		Where("to_user_id = ? AND status = ?", toUserID, model.FriendRequestPending).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var requests []*model.FriendRequest
	err = r.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", toUserID, model.FriendRequestPending).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *friendRequestRepoImpl) Get(ctx context.Context, id string) (*model.FriendRequest, error) {
	var fr model.FriendRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&fr).Error
	if err != nil {
		return nil, err
	}

	return &fr, nil
}

func (r *friendRequestRepoImpl) Resolve(ctx context.Context, id, toUserID string, status int8) error {
	result := r.db.WithContext(ctx).Model(&model.FriendRequest{}).
		Where("id = ? AND to_user_id = ? AND status = ?", id, toUserID, model.FriendRequestPending).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
