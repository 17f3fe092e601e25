// Package postal resolves Brazilian postal codes (CEP) to city and
// state through a ViaCEP-compatible service.
package postal

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/belgahub/hub/internal/setup/config"
	setupLogger "github.com/belgahub/hub/internal/setup/logger"
	"github.com/bytedance/sonic"
	"github.com/jaxron/axonet/middleware/singleflight"
	"github.com/jaxron/axonet/pkg/client"
	"go.uber.org/zap"
)

// Address is the resolved location for a postal code.
type Address struct {
	PostalCode string `json:"cep"`
	Street     string `json:"logradouro"`
	District   string `json:"bairro"`
	City       string `json:"localidade"`
	State      string `json:"uf"`
}

// lookupResponse mirrors the ViaCEP payload. The service answers 200
// with {"erro": true} for unknown codes.
type lookupResponse struct {
	Address
	Error bool `json:"erro"`
}

// Client looks up postal codes. Lookups are best effort: any failure
// returns nil and the caller leaves the address fields for the user to
// fill in manually.
type Client struct {
	http    *client.Client
	baseURL string
	logger  *zap.Logger
}

// New creates a postal lookup client. Concurrent lookups for the same
// code are collapsed into one request by the singleflight middleware.
func New(cfg *config.Postal, logger *zap.Logger) *Client {
	httpClient := client.NewClient(
		client.WithLogger(setupLogger.New(logger)),
		client.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Millisecond),
		client.WithMiddleware(singleflight.New()),
	)

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:  logger.Named("postal"),
	}
}

// Lookup resolves a postal code to an address. Returns nil for
// malformed codes, unknown codes, and transport failures.
func (c *Client) Lookup(ctx context.Context, cep string) *Address {
	digits := digitsOnly(cep)
	if len(digits) != 8 {
		return nil
	}

	resp, err := c.http.NewRequest().
		Method(http.MethodGet).
		URL(c.baseURL + "/" + digits + "/json/").
		Do(ctx)
	if err != nil {
		c.logger.Debug("Postal lookup failed", zap.String("cep", digits), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("Postal lookup rejected",
			zap.String("cep", digits),
			zap.Int("status", resp.StatusCode))

		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Debug("Postal lookup read failed", zap.String("cep", digits), zap.Error(err))
		return nil
	}

	var result lookupResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		c.logger.Debug("Postal lookup returned malformed payload",
			zap.String("cep", digits),
			zap.Error(err))

		return nil
	}

	if result.Error {
		return nil
	}

	return &result.Address
}

// digitsOnly strips formatting like "01310-100" down to the digits.
func digitsOnly(s string) string {
	var b strings.Builder

	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
