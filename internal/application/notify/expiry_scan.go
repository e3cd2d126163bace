package notify

import (
	"fmt"
	"time"

	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
	"github.com/jhoicas/Polizas-api/pkg/logger"
)

// ScanResult resumen de una corrida del scan.
type ScanResult struct {
	Scanned  int
	Notified int
}

// ExpiryScanUseCase recorre las pólizas con fin de vigencia dentro de la
// ventana rodante (hoy .. hoy + ~1 mes) y Notified=false, resuelve los
// destinatarios y despacha avisos por email y WhatsApp.
//
// Garantía: a lo sumo una vez, best-effort. Cada envío fallido se loguea y no
// detiene ni a los demás destinatarios ni al resto de pólizas; la póliza se
// marca notificada incondicionalmente después de los intentos, así un
// destinatario permanentemente inalcanzable no produce tormentas de reintento.
type ExpiryScanUseCase struct {
	policyRepo  repository.PolicyRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	email       EmailSender
	whatsapp    WhatsAppSender
	cfg         Config
	window      time.Duration
	log         *logger.Logger
	now         func() time.Time
}

// NewExpiryScanUseCase construye el scan. window <= 0 usa un mes.
func NewExpiryScanUseCase(
	policyRepo repository.PolicyRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	email EmailSender,
	whatsapp WhatsAppSender,
	cfg Config,
	window time.Duration,
	log *logger.Logger,
) *ExpiryScanUseCase {
	return &ExpiryScanUseCase{
		policyRepo:  policyRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		email:       email,
		whatsapp:    whatsapp,
		cfg:         cfg,
		window:      window,
		log:         log,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ExpiryScanUseCase) WithClock(now func() time.Time) *ExpiryScanUseCase {
	uc.now = now
	return uc
}

// Run es el punto de entrada del scan. Lo invocan por igual el scheduler, el
// endpoint administrativo y los tests; el scan no sabe quién lo disparó.
func (uc *ExpiryScanUseCase) Run() (ScanResult, error) {
	now := uc.now()
	from := startOfDay(now)
	var to time.Time
	if uc.window > 0 {
		to = endOfDay(now.Add(uc.window))
	} else {
		to = endOfDay(now.AddDate(0, 1, 0))
	}

	policies, err := uc.policyRepo.FindExpiring(from, to)
	if err != nil {
		return ScanResult{}, fmt.Errorf("buscar pólizas por vencer: %w", err)
	}

	uc.log.Info().Int("total", len(policies)).Msg("pólizas por vencer encontradas")

	result := ScanResult{Scanned: len(policies)}
	for _, p := range policies {
		uc.notifyPolicy(p, now)
		if err := uc.policyRepo.MarkNotified(p.ID); err != nil {
			uc.log.Error().Err(err).Str("policy", p.PolicyNumber).Msg("marcar póliza notificada")
			continue
		}
		result.Notified++
	}
	return result, nil
}

// notifyPolicy despacha los avisos de una póliza. Nunca devuelve error: cada
// fallo individual se loguea y se sigue con el resto.
func (uc *ExpiryScanUseCase) notifyPolicy(p *entity.Policy, now time.Time) {
	days := p.DaysUntilExpiry(now)
	due := p.EndDate.Format("02/01/2006")

	owner, err := uc.userRepo.GetByID(p.OwnerUserID)
	if err != nil {
		uc.log.Error().Err(err).Str("policy", p.PolicyNumber).Msg("buscar tomador de la póliza")
	}

	ownerName := "cliente"
	var ownerContact Contact
	if owner != nil {
		ownerName = owner.Name
		ownerContact = Contact{Email: owner.Email, Phone: owner.Phone}
	}

	userMsg := fmt.Sprintf(
		"Hola %s,\nTu póliza %s vence el %s (en %d días).\nComunícate con tu agencia de seguros para renovarla.",
		ownerName, p.PolicyNumber, due, days,
	)

	company := uc.lookupCompany(p)
	companyName := "Sin empresa asignada"
	if company != nil {
		companyName = company.Name
	}
	ownerEmail := ""
	if owner != nil {
		ownerEmail = owner.Email
	}
	adminMsg := fmt.Sprintf(
		"ALERTA: Póliza próxima a vencer\nPóliza: %s\nTomador: %s (%s)\nVence el: %s (en %d días)\nEmpresa: %s",
		p.PolicyNumber, ownerName, ownerEmail, due, days, companyName,
	)

	adminContact, creatorContact := uc.resolveAdminAndCreator(p, company)
	// El creador solo recibe lo que no recibió ya el contacto administrativo.
	creatorOnly := Subtract(creatorContact, adminContact)

	subject := fmt.Sprintf("Póliza %s próxima a vencer", p.PolicyNumber)

	uc.sendEmail(ownerContact.Email, subject, userMsg, "tomador", p.PolicyNumber)
	uc.sendEmail(adminContact.Email, subject, adminMsg, "admin", p.PolicyNumber)
	uc.sendEmail(creatorOnly.Email, subject, adminMsg, "creador", p.PolicyNumber)

	if uc.cfg.WhatsAppEnabled {
		uc.sendWhatsApp(ownerContact.Phone, userMsg, "tomador", p.PolicyNumber)
		uc.sendWhatsApp(adminContact.Phone, adminMsg, "admin", p.PolicyNumber)
		uc.sendWhatsApp(creatorOnly.Phone, adminMsg, "creador", p.PolicyNumber)
	}
}

// resolveAdminAndCreator arma la cadena administrativa (admin de la empresa →
// contacto de la empresa → fallback global) y, por separado, el contacto del
// creador de la póliza.
func (uc *ExpiryScanUseCase) resolveAdminAndCreator(p *entity.Policy, company *entity.Company) (admin, creator Contact) {
	var adminUser Contact
	if p.CompanyID != nil {
		u, err := uc.userRepo.FirstActiveAdminByCompany(*p.CompanyID)
		if err != nil {
			uc.log.Error().Err(err).Str("policy", p.PolicyNumber).Msg("buscar admin de la empresa")
		}
		if u != nil {
			adminUser = Contact{Email: u.Email, Phone: u.Phone}
		}
	}

	var companyContact Contact
	if company != nil {
		companyContact = Contact{Email: company.Email, Phone: company.Phone}
	}

	global := Contact{Email: uc.cfg.AdminEmail, Phone: uc.cfg.AdminPhone}

	admin = CombineFirstNonEmpty(adminUser, companyContact, global)

	if p.CreatedByID != nil {
		u, err := uc.userRepo.GetByID(*p.CreatedByID)
		if err != nil {
			uc.log.Error().Err(err).Str("policy", p.PolicyNumber).Msg("buscar creador de la póliza")
		}
		if u != nil && u.Active {
			creator = Contact{Email: u.Email, Phone: u.Phone}
		}
	}
	return admin, creator
}

func (uc *ExpiryScanUseCase) lookupCompany(p *entity.Policy) *entity.Company {
	if p.CompanyID == nil {
		return nil
	}
	company, err := uc.companyRepo.GetByID(*p.CompanyID)
	if err != nil {
		uc.log.Error().Err(err).Str("policy", p.PolicyNumber).Msg("buscar empresa de la póliza")
		return nil
	}
	return company
}

func (uc *ExpiryScanUseCase) sendEmail(to, subject, body, target, policyNumber string) {
	if to == "" {
		return
	}
	if err := uc.email.Send(to, subject, body); err != nil {
		uc.log.Error().Err(err).Str("policy", policyNumber).Str("target", target).Str("to", to).Msg("enviar email")
		return
	}
	uc.log.Info().Str("policy", policyNumber).Str("target", target).Str("to", to).Msg("email enviado")
}

func (uc *ExpiryScanUseCase) sendWhatsApp(phone, message, target, policyNumber string) {
	if phone == "" || uc.whatsapp == nil {
		return
	}
	if err := uc.whatsapp.Send(phone, message); err != nil {
		uc.log.Error().Err(err).Str("policy", policyNumber).Str("target", target).Str("phone", phone).Msg("enviar whatsapp")
		return
	}
	uc.log.Info().Str("policy", policyNumber).Str("target", target).Str("phone", phone).Msg("whatsapp enviado")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
