package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Polizas-api/internal/application/authz"
	"github.com/jhoicas/Polizas-api/internal/application/dto"
	"github.com/jhoicas/Polizas-api/internal/application/notify"
	"github.com/jhoicas/Polizas-api/internal/domain"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
	"github.com/jhoicas/Polizas-api/pkg/logger"
)

// ContactUseCase enruta mensajes de contacto al buzón del admin de la
// empresa correcta, reutilizando la misma cadena de fallback del scan de
// vencimientos (admin de la empresa → contacto de la empresa → global), sin
// la rama del creador.
type ContactUseCase struct {
	msgRepo     repository.ContactMessageRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	email       notify.EmailSender
	cfg         notify.Config
	log         *logger.Logger
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(
	msgRepo repository.ContactMessageRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	email notify.EmailSender,
	cfg notify.Config,
	log *logger.Logger,
) *ContactUseCase {
	return &ContactUseCase{msgRepo: msgRepo, userRepo: userRepo, companyRepo: companyRepo, email: email, cfg: cfg, log: log}
}

// Create guarda el mensaje y notifica por email al admin resuelto. El fallo
// del email se loguea y no deshace el mensaje ya persistido.
// actor es nil para visitantes anónimos.
func (uc *ContactUseCase) Create(in dto.CreateContactMessageRequest, actor *authz.Actor) (*dto.ContactMessageResponse, error) {
	var userID *string
	var companyID *string

	if actor != nil && actor.ID != "" {
		userID = &actor.ID
		companyID = actor.CompanyID
	} else if in.UserID != "" {
		userID = &in.UserID
	}

	// Sin empresa directa: derivarla del usuario referenciado si existe.
	if companyID == nil && userID != nil {
		user, err := uc.userRepo.GetByID(*userID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			companyID = user.CompanyID
		}
	}

	msg := &entity.ContactMessage{
		ID:          uuid.New().String(),
		SenderName:  in.Name,
		SenderEmail: in.Email,
		Subject:     in.Subject,
		Body:        in.Body,
		UserID:      userID,
		CompanyID:   companyID,
		Read:        false,
		Responded:   false,
		CreatedAt:   time.Now(),
	}
	if err := uc.msgRepo.Create(msg); err != nil {
		return nil, err
	}

	uc.notifyAdmin(msg)

	return toContactResponse(msg), nil
}

// notifyAdmin resuelve el buzón administrativo y envía el aviso del mensaje.
func (uc *ContactUseCase) notifyAdmin(msg *entity.ContactMessage) {
	var adminUser notify.Contact
	var companyContact notify.Contact

	if msg.CompanyID != nil {
		admin, err := uc.userRepo.FirstActiveAdminByCompany(*msg.CompanyID)
		if err != nil {
			uc.log.Error().Err(err).Str("message", msg.ID).Msg("buscar admin de la empresa")
		}
		if admin != nil {
			adminUser = notify.Contact{Email: admin.Email}
		}
		company, err := uc.companyRepo.GetByID(*msg.CompanyID)
		if err == nil && company != nil {
			companyContact = notify.Contact{Email: company.Email}
		}
	}
	global := notify.Contact{Email: uc.cfg.AdminEmail}
	to := notify.CombineFirstNonEmpty(adminUser, companyContact, global)
	if to.Email == "" {
		uc.log.Warn().Str("message", msg.ID).Msg("sin buzón administrativo para el mensaje de contacto")
		return
	}

	body := fmt.Sprintf(
		"Nuevo mensaje de contacto\n\nDe: %s\nEmail: %s\nAsunto: %s\n\n%s\n\nRecibido: %s",
		msg.SenderName, msg.SenderEmail, msg.Subject, msg.Body,
		msg.CreatedAt.Format("02/01/2006 15:04"),
	)
	if err := uc.email.Send(to.Email, "Nuevo mensaje de contacto: "+msg.Subject, body); err != nil {
		uc.log.Error().Err(err).Str("to", to.Email).Str("message", msg.ID).Msg("enviar aviso de contacto")
		return
	}
	uc.log.Info().Str("to", to.Email).Str("message", msg.ID).Msg("aviso de contacto enviado")
}

// List lista mensajes con el scoping de empresa del actor.
func (uc *ContactUseCase) List(actor authz.Actor) ([]dto.ContactMessageResponse, error) {
	list, err := uc.msgRepo.List(authz.EffectiveCompanyFilter(actor, nil))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactMessageResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toContactResponse(m))
	}
	return items, nil
}

// ListByUser lista los mensajes enviados por un usuario.
func (uc *ContactUseCase) ListByUser(userID string) ([]dto.ContactMessageResponse, error) {
	list, err := uc.msgRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactMessageResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toContactResponse(m))
	}
	return items, nil
}

// GetByID obtiene un mensaje del buzón de la empresa del actor.
func (uc *ContactUseCase) GetByID(id string, actor authz.Actor) (*dto.ContactMessageResponse, error) {
	msg, err := uc.loadAuthorized(id, actor)
	if err != nil {
		return nil, err
	}
	return toContactResponse(msg), nil
}

// MarkRead marca un mensaje como leído. Solo avanza: no hay des-leer.
func (uc *ContactUseCase) MarkRead(id string, actor authz.Actor) (*dto.ContactMessageResponse, error) {
	msg, err := uc.loadAuthorized(id, actor)
	if err != nil {
		return nil, err
	}
	if !msg.Read {
		msg.Read = true
		if err := uc.msgRepo.Update(msg); err != nil {
			return nil, err
		}
	}
	return toContactResponse(msg), nil
}

// Respond guarda la respuesta y envía el correo al remitente original. El
// fallo del correo no deshace la mutación ya persistida.
func (uc *ContactUseCase) Respond(id string, in dto.RespondMessageRequest, actor authz.Actor) (*dto.ContactMessageResponse, error) {
	msg, err := uc.loadAuthorized(id, actor)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	msg.Response = &in.Response
	msg.Responded = true
	msg.RespondedByID = &actor.ID
	msg.RespondedAt = &now
	if err := uc.msgRepo.Update(msg); err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		"Hola %s,\n\nSobre tu mensaje \"%s\":\n\n%s",
		msg.SenderName, msg.Subject, in.Response,
	)
	if err := uc.email.Send(msg.SenderEmail, "Re: "+msg.Subject, body); err != nil {
		uc.log.Error().Err(err).Str("to", msg.SenderEmail).Str("message", msg.ID).Msg("enviar respuesta de contacto")
	}

	return toContactResponse(msg), nil
}

// Delete elimina un mensaje.
func (uc *ContactUseCase) Delete(id string, actor authz.Actor) error {
	if _, err := uc.loadAuthorized(id, actor); err != nil {
		return err
	}
	return uc.msgRepo.Delete(id)
}

// loadAuthorized carga el mensaje y verifica que pertenezca al buzón del
// actor: un admin solo toca los mensajes de su empresa; los mensajes sin
// empresa (buzón global) son exclusivos de super_user.
func (uc *ContactUseCase) loadAuthorized(id string, actor authz.Actor) (*entity.ContactMessage, error) {
	msg, err := uc.msgRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, domain.ErrMessageNotFound
	}
	if !actor.HasAnyRole(entity.RoleSuperUser) {
		if msg.CompanyID == nil || actor.CompanyID == nil || *msg.CompanyID != *actor.CompanyID {
			return nil, domain.ErrForbidden
		}
	}
	return msg, nil
}

func toContactResponse(m *entity.ContactMessage) *dto.ContactMessageResponse {
	if m == nil {
		return nil
	}
	return &dto.ContactMessageResponse{
		ID:            m.ID,
		Name:          m.SenderName,
		Email:         m.SenderEmail,
		Subject:       m.Subject,
		Body:          m.Body,
		UserID:        m.UserID,
		CompanyID:     m.CompanyID,
		Read:          m.Read,
		Responded:     m.Responded,
		Response:      m.Response,
		RespondedByID: m.RespondedByID,
		RespondedAt:   m.RespondedAt,
		CreatedAt:     m.CreatedAt,
	}
}
