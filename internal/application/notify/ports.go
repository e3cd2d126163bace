package notify

// EmailSender puerto del canal de correo saliente.
type EmailSender interface {
	Send(to, subject, body string) error
}

// WhatsAppSender puerto del canal de WhatsApp.
type WhatsAppSender interface {
	Send(phone, message string) error
}

// Config configuración inmutable del dispatcher. Los fallbacks globales se
// inyectan aquí en construcción; la lógica de negocio nunca lee el entorno.
type Config struct {
	AdminEmail      string // último paso de la cadena administrativa (email)
	AdminPhone      string // último paso de la cadena administrativa (teléfono)
	WhatsAppEnabled bool
	FrontendURL     string
}
