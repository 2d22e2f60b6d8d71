package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-project-api/internal/metrics"
)

// AuthClient validates tokens against the auth service
type AuthClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// TokenValidationRequest represents the request to auth-service
type TokenValidationRequest struct {
	Token string `json:"token"`
}

// TokenValidationResponse represents the response from auth-service
type TokenValidationResponse struct {
	Valid   bool   `json:"valid"`
	UserID  string `json:"userId"`
	Message string `json:"message,omitempty"`
}

// NewAuthClient creates a new AuthClient
func NewAuthClient(baseURL string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *AuthClient {
	return &AuthClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// ValidateToken validates a token via auth-service
func (c *AuthClient) ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	url := fmt.Sprintf("%s/api/auth/validate", c.baseURL)

	bodyBytes, err := json.Marshal(TokenValidationRequest{Token: tokenStr})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, http.MethodPost, statusCode, time.Since(start), err)
	}
	if err != nil {
		c.logger.Error("Failed to validate token", zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return uuid.Nil, fmt.Errorf("token validation failed with status: %d", resp.StatusCode)
	}

	var tokenResp TokenValidationResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !tokenResp.Valid {
		return uuid.Nil, fmt.Errorf("invalid token: %s", tokenResp.Message)
	}

	userID, err := uuid.Parse(tokenResp.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	return userID, nil
}
