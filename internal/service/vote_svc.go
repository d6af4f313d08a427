package service

import (
	"context"
	"fmt"
	"log"

	"github.com/studydock/studydock-go/internal/model"
	"github.com/studydock/studydock-go/internal/repository"
)

type VoteService struct {
	votes        *repository.VoteRepo
	commentVotes *repository.CommentVoteRepo
	cache        *CacheService
}

func NewVoteService(votes *repository.VoteRepo, commentVotes *repository.CommentVoteRepo, cache *CacheService) *VoteService {
	return &VoteService{votes: votes, commentVotes: commentVotes, cache: cache}
}

// CastDocumentVote runs one transition of the vote state machine for a
// document. Casting the same type twice retracts the vote; casting the
// opposite type flips it.
func (s *VoteService) CastDocumentVote(ctx context.Context, documentID, voterID string, requested model.VoteType) (*model.VoteResponse, error) {
	if !requested.Valid() {
		return nil, fmt.Errorf("invalid vote type: %d", requested)
	}

	resp, err := s.votes.CastVote(ctx, documentID, voterID, requested)
	if err != nil {
		return nil, err
	}

	// The notification worker also invalidates in batches; doing it inline
	// too keeps the voter's own next read fresh.
	if s.cache != nil {
		if err := s.cache.InvalidateDocument(ctx, documentID); err != nil {
			log.Printf("cache: invalidate document error: %v", err)
		}
	}

	return resp, nil
}

// CastCommentVote runs the same state machine against a comment. No
// reputation moves; only the comment's counters change.
func (s *VoteService) CastCommentVote(ctx context.Context, commentID, voterID string, requested model.VoteType) (*model.VoteResponse, error) {
	if !requested.Valid() {
		return nil, fmt.Errorf("invalid vote type: %d", requested)
	}
	return s.commentVotes.CastVote(ctx, commentID, voterID, requested)
}
