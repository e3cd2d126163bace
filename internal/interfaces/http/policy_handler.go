package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Polizas-api/internal/application/dto"
	"github.com/jhoicas/Polizas-api/internal/application/notify"
	"github.com/jhoicas/Polizas-api/internal/application/usecase"
	"github.com/jhoicas/Polizas-api/internal/domain"
)

// PolicyHandler maneja las peticiones HTTP para el recurso Policy.
type PolicyHandler struct {
	uc     *usecase.PolicyUseCase
	scanUC *notify.ExpiryScanUseCase
}

// NewPolicyHandler construye el handler inyectando los casos de uso.
func NewPolicyHandler(uc *usecase.PolicyUseCase, scanUC *notify.ExpiryScanUseCase) *PolicyHandler {
	return &PolicyHandler{uc: uc, scanUC: scanUC}
}

// Create godoc
// @Summary      Crear póliza
// @Description  El fin de vigencia se calcula siempre como inicio + 1 año; cualquier fecha de fin del cliente se ignora.
// @Tags         policies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePolicyRequest  true  "Datos de la póliza"
// @Success      201   {object}  dto.PolicyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/policies [post]
func (h *PolicyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePolicyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PolicyNumber == "" || in.UserID == "" || in.StartDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "policy_number, user_id y start_date son requeridos"})
	}
	out, err := h.uc.Create(in, ActorFromCtx(c))
	if err != nil {
		return policyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pólizas
// @Description  Visibilidad acotada a la empresa del actor (super_user ve todo); un sub_admin puro solo ve lo que creó.
// @Tags         policies
// @Produce      json
// @Param        user_id        query  string  false  "Filtro por tomador"
// @Param        policy_number  query  string  false  "Filtro por número (substring)"
// @Param        plate          query  string  false  "Filtro por placa (substring)"
// @Param        company_id     query  string  false  "Empresa (solo super_user)"
// @Param        limit          query  int     false  "Límite"
// @Param        skip           query  int     false  "Offset"
// @Success      200  {object}  dto.PolicyListResponse
// @Router       /api/policies [get]
func (h *PolicyHandler) List(c *fiber.Ctx) error {
	var in dto.ListPoliciesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(in, ActorFromCtx(c))
	if err != nil {
		return policyError(c, err)
	}
	return c.JSON(out)
}

// ListByOwner godoc
// @Summary      Listar pólizas de un tomador
// @Tags         policies
// @Produce      json
// @Param        userId  path  string  true  "ID del tomador"
// @Success      200  {array}  dto.PolicyResponse
// @Router       /api/policies/user/{userId} [get]
func (h *PolicyHandler) ListByOwner(c *fiber.Ctx) error {
	out, err := h.uc.ListByOwner(c.Params("userId"), ActorFromCtx(c))
	if err != nil {
		return policyError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener póliza por ID
// @Tags         policies
// @Produce      json
// @Param        id   path  string  true  "ID de la póliza"
// @Success      200  {object}  dto.PolicyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/policies/{id} [get]
func (h *PolicyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), ActorFromCtx(c))
	if err != nil {
		return policyError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar póliza
// @Description  Editar start_date no recalcula el fin de vigencia; end_date solo cambia si viene explícito.
// @Tags         policies
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la póliza"
// @Param        body  body  dto.UpdatePolicyRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PolicyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/policies/{id} [put]
func (h *PolicyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePolicyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in, ActorFromCtx(c))
	if err != nil {
		return policyError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar póliza
// @Tags         policies
// @Produce      json
// @Param        id   path  string  true  "ID de la póliza"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/policies/{id} [delete]
func (h *PolicyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), ActorFromCtx(c)); err != nil {
		return policyError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "póliza eliminada"})
}

// GeneratePDF godoc
// @Summary      Descargar carátula PDF de la póliza
// @Tags         policies
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la póliza"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/policies/{id}/pdf [get]
func (h *PolicyHandler) GeneratePDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GeneratePDF(c.Params("id"), ActorFromCtx(c))
	if err != nil {
		return policyError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="poliza.pdf"`)
	return c.Send(pdfBytes)
}

// RunExpiryScan godoc
// @Summary      Ejecutar el scan de vencimientos manualmente
// @Description  Misma corrida que el job diario: útil para operación y soporte.
// @Tags         policies
// @Produce      json
// @Success      200  {object}  dto.ExpiryScanResponse
// @Router       /api/policies/expiry-scan [post]
func (h *PolicyHandler) RunExpiryScan(c *fiber.Ctx) error {
	res, err := h.scanUC.Run()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ExpiryScanResponse{Scanned: res.Scanned, Notified: res.Notified})
}

// policyError mapea errores de dominio del recurso Policy a códigos HTTP.
func policyError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrPolicyNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "póliza no encontrada"})
	case domain.ErrUserNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el tomador no existe"})
	case domain.ErrPolicyNumberExists:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "POLICY_NUMBER_EXISTS", Message: "el número de póliza ya existe"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin permiso sobre esta póliza"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos (fechas en formato 2006-01-02)"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
