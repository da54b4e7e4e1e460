package handler

import (
	"log/slog"

	"studio/internal/delivery/api/response"
	"studio/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type MessageHandlerParams struct {
	fx.In

	MessageUC usecase.MessageUsecase
	Logger    *slog.Logger
}

type MessageHandler struct {
	messageUC usecase.MessageUsecase
	logger    *slog.Logger
}

func NewMessageHandler(params MessageHandlerParams) *MessageHandler {
	return &MessageHandler{
		messageUC: params.MessageUC,
		logger:    params.Logger,
	}
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

func (h *MessageHandler) ListMessages(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	messages, err := h.messageUC.ListMessages(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, toMessageResponses(messages))
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	message, err := h.messageUC.SendMessage(c.Request().Context(), actor, c.Param("id"), req.Text)
	if err != nil {
		return err
	}

	return response.Created(c, toMessageResponse(message))
}

func (h *MessageHandler) MarkRead(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	updated, err := h.messageUC.MarkRead(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, map[string]int{"updated": updated})
}
