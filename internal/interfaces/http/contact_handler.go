package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Polizas-api/internal/application/authz"
	"github.com/jhoicas/Polizas-api/internal/application/dto"
	"github.com/jhoicas/Polizas-api/internal/application/usecase"
	"github.com/jhoicas/Polizas-api/internal/domain"
)

// ContactHandler maneja las peticiones HTTP para mensajes de contacto.
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

// NewContactHandler construye el handler inyectando el caso de uso.
func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar mensaje de contacto
// @Description  Público. Si viene autenticado el mensaje queda ligado al usuario y a su empresa.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContactMessageRequest  true  "Mensaje"
// @Success      201   {object}  dto.ContactMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContactMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Email == "" || in.Subject == "" || in.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email, subject y body son requeridos"})
	}

	var actor *authz.Actor
	if GetUserID(c) != "" {
		a := ActorFromCtx(c)
		actor = &a
	}

	out, err := h.uc.Create(in, actor)
	if err != nil {
		return contactError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar mensajes de contacto
// @Description  Acotado a la empresa del actor; super_user ve todos.
// @Tags         contact
// @Produce      json
// @Success      200  {array}  dto.ContactMessageResponse
// @Router       /api/contact [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(ActorFromCtx(c))
	if err != nil {
		return contactError(c, err)
	}
	return c.JSON(out)
}

// ListByUser godoc
// @Summary      Listar mensajes enviados por un usuario
// @Description  Un usuario solo puede consultar sus propios mensajes; consultar los de terceros requiere admin o super_user.
// @Tags         contact
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {array}  dto.ContactMessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/contact/user/{userId} [get]
func (h *ContactHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	actor := ActorFromCtx(c)
	if userID != actor.ID && !actor.IsPrivileged() {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puedes consultar tus propios mensajes"})
	}
	out, err := h.uc.ListByUser(userID)
	if err != nil {
		return contactError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener mensaje por ID
// @Tags         contact
// @Produce      json
// @Param        id   path  string  true  "ID del mensaje"
// @Success      200  {object}  dto.ContactMessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contact/{id} [get]
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), ActorFromCtx(c))
	if err != nil {
		return contactError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar mensaje como leído
// @Tags         contact
// @Produce      json
// @Param        id   path  string  true  "ID del mensaje"
// @Success      200  {object}  dto.ContactMessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contact/{id}/read [patch]
func (h *ContactHandler) MarkRead(c *fiber.Ctx) error {
	out, err := h.uc.MarkRead(c.Params("id"), ActorFromCtx(c))
	if err != nil {
		return contactError(c, err)
	}
	return c.JSON(out)
}

// Respond godoc
// @Summary      Responder un mensaje
// @Description  Guarda la respuesta y envía el correo al remitente original.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del mensaje"
// @Param        body  body  dto.RespondMessageRequest true  "Respuesta"
// @Success      200   {object}  dto.ContactMessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contact/{id}/respond [post]
func (h *ContactHandler) Respond(c *fiber.Ctx) error {
	var in dto.RespondMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Response == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "response es requerido"})
	}
	out, err := h.uc.Respond(c.Params("id"), in, ActorFromCtx(c))
	if err != nil {
		return contactError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar mensaje
// @Tags         contact
// @Produce      json
// @Param        id   path  string  true  "ID del mensaje"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contact/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), ActorFromCtx(c)); err != nil {
		return contactError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "mensaje eliminado"})
}

// contactError mapea errores de dominio del recurso ContactMessage a códigos HTTP.
func contactError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrMessageNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "mensaje no encontrado"})
	case domain.ErrUserNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario no encontrado"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el mensaje pertenece a otra empresa"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
