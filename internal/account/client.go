package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/catatanku/catatan-backend/internal/admin"
)

const deleteAccountPath = "/api/v1/admin/delete-account"

// AdminClient calls the privileged deletion endpoint. It holds the service
// role key, which never leaves the server side.
type AdminClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewAdminClient(baseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type deleteAccountResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// DeleteAccount posts the user id to the deletion endpoint and returns the
// endpoint's success message, or its error verbatim.
func (c *AdminClient) DeleteAccount(ctx context.Context, userID string) (string, error) {
	body, err := json.Marshal(map[string]string{"userId": userID})
	if err != nil {
		return "", fmt.Errorf("marshal delete request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+deleteAccountPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(admin.ServiceKeyHeader, c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("delete-account request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed deleteAccountResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode delete-account response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != "" {
			return "", fmt.Errorf("%s", parsed.Error)
		}
		return "", fmt.Errorf("delete-account returned status %d", resp.StatusCode)
	}

	return parsed.Message, nil
}
