package whatsapp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Polizas-api/internal/application/notify"
	"github.com/jhoicas/Polizas-api/pkg/config"
)

var _ notify.WhatsAppSender = (*Client)(nil)

// Client cliente HTTP para un gateway de WhatsApp con Basic Auth
// (compatible con go-whatsapp-web-multidevice).
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type sendMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewClient construye el canal de WhatsApp desde la configuración del gateway.
func NewClient(cfg config.WhatsAppConfig) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// normalizePhone convierte números locales colombianos (3xx...) a formato
// internacional 57xx. Los números que ya traen indicativo pasan tal cual.
func (c *Client) normalizePhone(phone string) string {
	p := strings.TrimPrefix(strings.TrimSpace(phone), "+")
	p = strings.ReplaceAll(p, " ", "")
	if len(p) == 10 && strings.HasPrefix(p, "3") {
		return "57" + p
	}
	return p
}

// Send envía un mensaje de texto por el gateway.
func (c *Client) Send(phone, message string) error {
	payload := sendMessageRequest{
		Phone:   c.normalizePhone(phone) + "@s.whatsapp.net",
		Message: message,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/send/message", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	auth := base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.password))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read whatsapp response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway status %d: %s", resp.StatusCode, string(body))
	}

	var out sendMessageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("parse whatsapp response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("whatsapp gateway rechazó el mensaje: %s", out.Message)
	}
	return nil
}
