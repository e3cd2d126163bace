package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/Polizas-api/internal/application/notify"
	"github.com/jhoicas/Polizas-api/pkg/config"
)

var _ notify.EmailSender = (*GomailSender)(nil)

// GomailSender implementación del puerto EmailSender sobre SMTP (gomail).
// Abre y cierra la conexión por envío: el volumen de correos del sistema es
// bajo y así no hay que mantener un dialer vivo.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender construye el canal de correo desde la configuración SMTP.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.Sender(),
	}
}

// Send envía un correo de texto plano.
func (s *GomailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo a %s: %w", to, err)
	}
	return nil
}
