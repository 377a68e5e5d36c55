package handler

import (
	"errors"

	"founder-match/internal/delivery/http/dto"
	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/pkg/response"
	"founder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messaging     usecase.MessagingUsecase
	conversations usecase.ConversationUsecase
}

type sendMessageRequest struct {
	MatchID uuid.UUID `json:"match_id"`
	Content string    `json:"content"`
}

func NewMessageHandler(messaging usecase.MessagingUsecase, conversations usecase.ConversationUsecase) *MessageHandler {
	return &MessageHandler{messaging: messaging, conversations: conversations}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	// Static segments before the :match_id wildcard.
	r.Post("/", h.Send)
	r.Get("/conversations", h.Conversations)
	r.Get("/unread/count", h.UnreadCount)
	r.Get("/:match_id", h.Thread)
}

func (h *MessageHandler) Send(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	msg, err := h.messaging.SendMessage(c.Context(), req.MatchID, userID, req.Content)
	if err != nil {
		return mapMessagingError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewMessageResponse(msg))
}

func (h *MessageHandler) Thread(c fiber.Ctx) error {
	matchID, err := pathUUID(c, "match_id")
	if err != nil {
		return err
	}
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	msgs, err := h.messaging.GetMessages(c.Context(), matchID, userID)
	if err != nil {
		return mapMessagingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMessageListResponse(msgs))
}

func (h *MessageHandler) UnreadCount(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	n, err := h.messaging.UnreadCount(c.Context(), userID)
	if err != nil {
		return mapMessagingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int{"unread_count": n})
}

func (h *MessageHandler) Conversations(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	convs, err := h.conversations.ListConversations(c.Context(), userID)
	if err != nil {
		return mapMessagingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConversationListResponse(convs))
}

func mapMessagingError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrNotParticipant):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrMatchNotAccepted):
		return middleware.NewAppError(fiber.StatusForbidden, "Match not accepted", nil, err)
	case errors.Is(err, usecase.ErrEmptyContent):
		return middleware.NewAppError(fiber.StatusBadRequest, "Message content required", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
