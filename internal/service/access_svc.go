package service

import (
	"context"
	"fmt"

	"github.com/studydock/studydock-go/internal/model"
	"github.com/studydock/studydock-go/internal/repository"
)

type AccessService struct {
	repo *repository.AccessRepo
}

func NewAccessService(repo *repository.AccessRepo) *AccessService {
	return &AccessService{repo: repo}
}

// RecordView counts one view of a document. viewerID may be empty for
// anonymous views. The owner earns +1 reputation whenever the view counter
// crosses a multiple of ten.
func (s *AccessService) RecordView(ctx context.Context, documentID, viewerID string) (*model.ViewResponse, error) {
	count, err := s.repo.RecordView(ctx, documentID, viewerID)
	if err != nil {
		return nil, err
	}
	return &model.ViewResponse{Success: true, ViewCount: count}, nil
}

// LogTime adds reading time to the caller's access-log entry for a document.
func (s *AccessService) LogTime(ctx context.Context, documentID, userID string, seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("seconds must be positive: %d", seconds)
	}
	return s.repo.LogTime(ctx, documentID, userID, seconds)
}
