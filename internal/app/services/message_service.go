package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/app/repositories"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/logger"
)

// MessageService gates and serves conversations. Every read and write
// passes the same access check, evaluated at call time against the
// relationship ledger.
type MessageService struct {
	messageRepo      repositories.IMessageRepository
	relationshipRepo repositories.IRelationshipRepository
	userRepo         repositories.IUserRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo repositories.IMessageRepository,
	relationshipRepo repositories.IRelationshipRepository,
	userRepo repositories.IUserRepository,
) *MessageService {
	return &MessageService{
		messageRepo:      messageRepo,
		relationshipRepo: relationshipRepo,
		userRepo:         userRepo,
	}
}

// CanConverse reports whether the caller may exchange messages with the
// other account. Self-conversations are never allowed, staff converse
// with anyone, and everyone else needs an active pairing in either
// orientation.
func (s *MessageService) CanConverse(ctx context.Context, caller *models.User, otherUserID int64) (bool, error) {
	if caller.ID == otherUserID {
		return false, nil
	}
	if caller.IsStaff {
		return true, nil
	}

	// Either side of the pairing may be the caller
	active, err := s.relationshipRepo.ActiveBetweenAccounts(ctx, caller.ID, otherUserID)
	if err != nil {
		return false, fmt.Errorf("failed to check pairing: %w", err)
	}
	if active {
		return true, nil
	}

	active, err = s.relationshipRepo.ActiveBetweenAccounts(ctx, otherUserID, caller.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check pairing: %w", err)
	}
	return active, nil
}

// ListThread returns the conversation with another account, oldest first.
// The access check runs before any message is read.
func (s *MessageService) ListThread(ctx context.Context, callerID, otherUserID int64) ([]*models.Message, error) {
	caller, other, err := s.resolveParticipants(ctx, callerID, otherUserID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.CanConverse(ctx, caller, other.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.NewForbiddenError("no active pairing with this account")
	}

	return s.messageRepo.ListThread(ctx, caller.ID, other.ID)
}

// PostMessage appends a message to the conversation with another account.
// A denied check writes nothing.
func (s *MessageService) PostMessage(ctx context.Context, callerID, otherUserID int64, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("message text cannot be empty").WithField("text")
	}

	caller, other, err := s.resolveParticipants(ctx, callerID, otherUserID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.CanConverse(ctx, caller, other.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.NewForbiddenError("no active pairing with this account")
	}

	message := &models.Message{
		SenderID:    caller.ID,
		RecipientID: other.ID,
		Text:        text,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}
	message.SenderUsername = caller.Username
	message.RecipientUsername = other.Username

	logger.Debug().Int64("senderID", caller.ID).Int64("recipientID", other.ID).Msg("Message posted")
	return message, nil
}

func (s *MessageService) resolveParticipants(ctx context.Context, callerID, otherUserID int64) (*models.User, *models.User, error) {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, nil, err
	}

	other, err := s.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.NewResourceNotFoundError("user not found")
		}
		return nil, nil, err
	}

	return caller, other, nil
}
