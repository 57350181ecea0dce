package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	isAdmin     AdminChecker
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, isAdmin AdminChecker) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		isAdmin:     isAdmin,
	}
}

// Add attaches a new comment to the post.
func (s *CommentService) Add(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListByPost returns the post's comments, newest first.
func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// Delete removes a comment. Allowed for its author or an admin.
func (s *CommentService) Delete(ctx context.Context, commentID, requesterID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != requesterID {
		admin, err := s.isAdmin(ctx, requesterID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("Only the author can delete this comment")
		}
	}

	return s.commentRepo.Delete(ctx, commentID)
}
