package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/studydock/studydock-go/internal/model"
	"github.com/studydock/studydock-go/internal/repository"
	"github.com/studydock/studydock-go/internal/storage"
)

const listLimit = 200

type DocumentService struct {
	docs      *repository.DocumentRepo
	votes     *repository.VoteRepo
	bookmarks *repository.BookmarkRepo
	cache     *CacheService
	store     storage.ObjectStore
}

func NewDocumentService(
	docs *repository.DocumentRepo,
	votes *repository.VoteRepo,
	bookmarks *repository.BookmarkRepo,
	cache *CacheService,
	store storage.ObjectStore,
) *DocumentService {
	return &DocumentService{docs: docs, votes: votes, bookmarks: bookmarks, cache: cache, store: store}
}

// Create registers an uploaded document and awards the uploader the upload
// bonus atomically.
func (s *DocumentService) Create(ctx context.Context, ownerID string, req model.CreateDocumentRequest) (*model.Document, error) {
	return s.docs.Create(ctx, ownerID, req)
}

// UploadURL returns a signed URL the client can upload the file to directly.
func (s *DocumentService) UploadURL(ctx context.Context, req model.UploadURLRequest) (string, error) {
	return s.store.SignedUploadURL(req.FilePath, req.FileType)
}

// List returns recent documents, optionally filtered to one owner.
func (s *DocumentService) List(ctx context.Context, ownerID string) ([]model.Document, error) {
	return s.docs.List(ctx, ownerID, listLimit)
}

// Get returns a document plus the caller's relationship to it (current vote,
// bookmark state) and a signed download URL. The document itself is served
// cache-aside; the per-caller fields are always fetched fresh.
func (s *DocumentService) Get(ctx context.Context, documentID, callerID string) (*model.DocumentResponse, error) {
	doc, err := s.cachedDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	resp := &model.DocumentResponse{Document: *doc}

	if callerID != "" {
		vote, err := s.votes.GetUserVote(ctx, documentID, callerID)
		if err != nil {
			return nil, err
		}
		resp.UserVote = int(vote)

		bookmarked, err := s.bookmarks.IsBookmarked(ctx, documentID, callerID)
		if err != nil {
			return nil, err
		}
		resp.IsBookmarked = bookmarked
	}

	signedURL, err := s.store.SignedDownloadURL(doc.FilePath)
	if err != nil {
		// A broken signer shouldn't take down document reads.
		log.Printf("storage: signed download url error for %s: %v", documentID, err)
	} else {
		resp.SignedURL = signedURL
	}

	return resp, nil
}

func (s *DocumentService) cachedDocument(ctx context.Context, documentID string) (*model.Document, error) {
	if s.cache != nil {
		if data, err := s.cache.GetDocument(ctx, documentID); err != nil {
			log.Printf("cache: get document error: %v", err)
		} else if data != nil {
			var doc model.Document
			if err := json.Unmarshal(data, &doc); err == nil {
				return &doc, nil
			}
		}
	}

	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetDocument(ctx, documentID, doc); err != nil {
			log.Printf("cache: set document error: %v", err)
		}
	}
	return doc, nil
}

// Update edits a document's title and subject. Owner-only.
func (s *DocumentService) Update(ctx context.Context, documentID, requesterID string, req model.UpdateDocumentRequest) error {
	if err := s.docs.Update(ctx, documentID, requesterID, req); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateDocument(ctx, documentID); err != nil {
			log.Printf("cache: invalidate document error: %v", err)
		}
	}
	return nil
}

// ToggleBookmark flips the caller's bookmark on a document and returns the
// new state.
func (s *DocumentService) ToggleBookmark(ctx context.Context, documentID, userID string) (*model.BookmarkResponse, error) {
	bookmarked, err := s.bookmarks.Toggle(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}
	return &model.BookmarkResponse{IsBookmarked: bookmarked}, nil
}

// ListBookmarks returns the caller's bookmarked documents.
func (s *DocumentService) ListBookmarks(ctx context.Context, userID string) ([]model.BookmarkedDocument, error) {
	return s.bookmarks.ListByUser(ctx, userID)
}

// Delete removes a document, reversing every reputation effect it produced,
// then removes the stored object best-effort. The database transaction is
// the source of truth: a storage failure is logged and never surfaced,
// because the counters are already consistently reversed by then.
func (s *DocumentService) Delete(ctx context.Context, documentID, requesterID string) error {
	receipt, err := s.docs.Delete(ctx, documentID, requesterID)
	if err != nil {
		return err
	}

	if receipt.FilePath != "" {
		if err := s.store.Delete(ctx, receipt.FilePath); err != nil {
			log.Printf("storage: delete object error for document %s: %v", documentID, err)
		}
	}

	if s.cache != nil {
		if err := s.cache.InvalidateDocument(ctx, documentID); err != nil {
			log.Printf("cache: invalidate document error: %v", err)
		}
	}

	return nil
}
