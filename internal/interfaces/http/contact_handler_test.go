package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Polizas-api/internal/application/notify"
	"github.com/jhoicas/Polizas-api/internal/application/usecase"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
	"github.com/jhoicas/Polizas-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Polizas-api/internal/interfaces/http"
	"github.com/jhoicas/Polizas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para montar el caso de uso detrás del handler
// ──────────────────────────────────────────────────────────────────────────────

type memContactRepo struct {
	messages []*entity.ContactMessage
}

var _ repository.ContactMessageRepository = (*memContactRepo)(nil)

func (m *memContactRepo) Create(msg *entity.ContactMessage) error {
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memContactRepo) GetByID(id string) (*entity.ContactMessage, error) {
	for _, msg := range m.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return nil, nil
}

func (m *memContactRepo) List(companyID *string) ([]*entity.ContactMessage, error) {
	return m.messages, nil
}

func (m *memContactRepo) ListByUser(userID string) ([]*entity.ContactMessage, error) {
	var out []*entity.ContactMessage
	for _, msg := range m.messages {
		if msg.UserID != nil && *msg.UserID == userID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memContactRepo) Update(*entity.ContactMessage) error { return nil }
func (m *memContactRepo) Delete(string) error                 { return nil }

type memUserRepo struct{}

var _ repository.UserRepository = (*memUserRepo)(nil)

func (memUserRepo) Create(*entity.User) error                          { return nil }
func (memUserRepo) GetByID(string) (*entity.User, error)               { return nil, nil }
func (memUserRepo) GetByEmail(string) (*entity.User, error)            { return nil, nil }
func (memUserRepo) GetByResetToken(string) (*entity.User, error)       { return nil, nil }
func (memUserRepo) Update(*entity.User) error                          { return nil }
func (memUserRepo) List(repository.UserFilter) ([]*entity.User, error) { return nil, nil }
func (memUserRepo) Search(string, *string) ([]*entity.User, error)     { return nil, nil }
func (memUserRepo) Delete(string) error                                { return nil }
func (memUserRepo) FirstActiveAdminByCompany(string) (*entity.User, error) {
	return nil, nil
}

type memCompanyRepo struct{}

var _ repository.CompanyRepository = (*memCompanyRepo)(nil)

func (memCompanyRepo) Create(*entity.Company) error                   { return nil }
func (memCompanyRepo) GetByID(string) (*entity.Company, error)        { return nil, nil }
func (memCompanyRepo) GetByNIT(string) (*entity.Company, error)       { return nil, nil }
func (memCompanyRepo) Update(*entity.Company) error                   { return nil }
func (memCompanyRepo) List(bool, int, int) ([]*entity.Company, error) { return nil, nil }

type noopEmailSender struct{}

func (noopEmailSender) Send(string, string, string) error { return nil }

// buildContactApp monta la ruta de mensajes por usuario con el mismo
// middleware que usa el router real.
func buildContactApp(repo *memContactRepo) *fiber.App {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := usecase.NewContactUseCase(
		repo, memUserRepo{}, memCompanyRepo{}, noopEmailSender{},
		notify.Config{AdminEmail: "global@plataforma.com"}, log,
	)
	handler := apphttp.NewContactHandler(uc)

	app := fiber.New()
	app.Get("/api/contact/user/:userId",
		apphttp.AuthMiddleware(testJWTSecret),
		handler.ListByUser,
	)
	return app
}

func getContactByUser(t *testing.T, app *fiber.App, userID, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/contact/user/"+userID, nil)
	req.Header.Set("Authorization", authHeader)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ListByUser
// ──────────────────────────────────────────────────────────────────────────────

// Un usuario puede consultar sus propios mensajes.
func TestContactListByUser_PropioPermitido(t *testing.T) {
	uid := testUserID
	repo := &memContactRepo{messages: []*entity.ContactMessage{
		{ID: "m-1", Subject: "Cotización", UserID: &uid},
	}}
	app := buildContactApp(repo)

	resp := getContactByUser(t, app, testUserID, tokenForRoles(t, "user"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Consultar los mensajes de otro usuario sin privilegios devuelve 403.
func TestContactListByUser_AjenoBloqueado(t *testing.T) {
	otro := "otro-usuario"
	repo := &memContactRepo{messages: []*entity.ContactMessage{
		{ID: "m-1", Subject: "Privado", UserID: &otro},
	}}
	app := buildContactApp(repo)

	resp := getContactByUser(t, app, otro, tokenForRoles(t, "user"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// Un admin o super_user sí consulta los mensajes de terceros.
func TestContactListByUser_StaffConsultaTerceros(t *testing.T) {
	otro := "otro-usuario"
	repo := &memContactRepo{messages: []*entity.ContactMessage{
		{ID: "m-1", Subject: "Privado", UserID: &otro},
	}}
	app := buildContactApp(repo)

	resp := getContactByUser(t, app, otro, tokenForRoles(t, "admin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = getContactByUser(t, app, otro, tokenForRoles(t, "super_user"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
