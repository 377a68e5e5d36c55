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

type MatchingHandler struct {
	generator usecase.MatchingUsecase
	lifecycle usecase.MatchLifecycleUsecase
}

type updateStatusRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note"`
}

func NewMatchingHandler(generator usecase.MatchingUsecase, lifecycle usecase.MatchLifecycleUsecase) *MatchingHandler {
	return &MatchingHandler{generator: generator, lifecycle: lifecycle}
}

func (h *MatchingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/job/:job_id", h.GenerateForJob)
	r.Get("/job/:job_id", h.ListForJob)
	r.Post("/user", h.GenerateForUser)
	r.Get("/user", h.ListForUser)
	r.Get("/:match_id", h.GetMatch)
	r.Put("/:match_id", h.UpdateStatus)
}

func (h *MatchingHandler) GenerateForJob(c fiber.Ctx) error {
	jobID, err := pathUUID(c, "job_id")
	if err != nil {
		return err
	}

	report, err := h.generator.GenerateForJob(c.Context(), jobID)
	if err != nil {
		return mapMatchingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *MatchingHandler) GenerateForUser(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	report, err := h.generator.GenerateForUser(c.Context(), userID)
	if err != nil {
		return mapMatchingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *MatchingHandler) ListForJob(c fiber.Ctx) error {
	jobID, err := pathUUID(c, "job_id")
	if err != nil {
		return err
	}
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	matches, err := h.lifecycle.ListForJob(c.Context(), jobID, userID)
	if err != nil {
		return mapMatchingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchListResponse(matches))
}

func (h *MatchingHandler) ListForUser(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	matches, err := h.lifecycle.ListForUser(c.Context(), userID)
	if err != nil {
		return mapMatchingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchListResponse(matches))
}

func (h *MatchingHandler) GetMatch(c fiber.Ctx) error {
	matchID, err := pathUUID(c, "match_id")
	if err != nil {
		return err
	}
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	m, err := h.lifecycle.GetMatch(c.Context(), matchID, userID)
	if err != nil {
		return mapMatchingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(m))
}

func (h *MatchingHandler) UpdateStatus(c fiber.Ctx) error {
	matchID, err := pathUUID(c, "match_id")
	if err != nil {
		return err
	}
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.lifecycle.UpdateStatus(c.Context(), matchID, userID, req.Status, req.Note)
	if err != nil {
		return mapMatchingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(m))
}

func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func authenticatedUserID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func mapMatchingError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrNotParticipant):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
