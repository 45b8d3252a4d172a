package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zhiidetopchubaeva/shop/internal/shop/events"
	"github.com/zhiidetopchubaeva/shop/internal/shop/policy"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
	"github.com/zhiidetopchubaeva/shop/pkg/messaging"
)

// CommentService defines the methods for managing comments.
// Every operation requires an authenticated principal.
type CommentService interface {
	// Create returns ErrProductNotFound if the product does not exist.
	Create(ctx context.Context, principal auth.Principal, comment CommentCreateDto) (*CommentDto, error)
	// Update replaces the text. Only the author may do so.
	Update(ctx context.Context, principal auth.Principal, id uuid.UUID, comment CommentUpdateDto) (*CommentDto, error)
	// Patch replaces the text when given. Only the author may do so.
	Patch(ctx context.Context, principal auth.Principal, id uuid.UUID, patch CommentPatchDto) (*CommentDto, error)
	// Delete removes the comment. Only the author may do so.
	Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error
}

// Comments implements CommentService.
type Comments struct {
	repository store.CommentStore
	publisher  messaging.Publisher
	logger     *slog.Logger
}

func NewCommentService(repo store.CommentStore, publisher messaging.Publisher, logger *slog.Logger) *Comments {
	return &Comments{repository: repo, publisher: publisher, logger: logger}
}

func (s *Comments) Create(ctx context.Context, principal auth.Principal, comment CommentCreateDto) (*CommentDto, error) {
	if err := policy.Comments.Authorize(principal, policy.Create); err != nil {
		return nil, err
	}
	created, err := s.repository.CreateComment(ctx, db.CreateCommentParams{
		Text:      comment.Text,
		AuthorID:  principal.UserID,
		ProductID: comment.ProductID,
	})
	if err != nil {
		return nil, err
	}
	publish(ctx, s.publisher, s.logger, events.CommentCreated{
		CommentID: created.ID,
		ProductID: created.ProductID,
		AuthorID:  created.AuthorID,
		At:        time.Now().UTC(),
	})
	return toCommentDto(created), nil
}

func (s *Comments) Update(ctx context.Context, principal auth.Principal, id uuid.UUID, comment CommentUpdateDto) (*CommentDto, error) {
	current, err := s.authorOwned(ctx, principal, id, policy.Update)
	if err != nil {
		return nil, err
	}
	if comment.Text == current.Text {
		return toCommentDto(current), nil
	}
	updated, err := s.repository.UpdateComment(ctx, id, comment.Text)
	if err != nil {
		return nil, err
	}
	return toCommentDto(updated), nil
}

func (s *Comments) Patch(ctx context.Context, principal auth.Principal, id uuid.UUID, patch CommentPatchDto) (*CommentDto, error) {
	if patch.Text == nil {
		current, err := s.authorOwned(ctx, principal, id, policy.Update)
		if err != nil {
			return nil, err
		}
		return toCommentDto(current), nil
	}
	return s.Update(ctx, principal, id, CommentUpdateDto{Text: *patch.Text})
}

func (s *Comments) Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	if _, err := s.authorOwned(ctx, principal, id, policy.Delete); err != nil {
		return err
	}
	return s.repository.DeleteComment(ctx, id)
}

func (s *Comments) authorOwned(ctx context.Context, principal auth.Principal, id uuid.UUID, action policy.Action) (*db.Comment, error) {
	if err := policy.Comments.Authorize(principal, action); err != nil {
		return nil, err
	}
	current, err := s.repository.FindCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Comments.AuthorizeObject(principal, action, current.AuthorID); err != nil {
		return nil, err
	}
	return current, nil
}
