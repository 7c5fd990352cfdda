package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/internal/domain/mocks"
)

// createMockResponse creates a mock HTTP response
func createMockResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func setupBrevoTest(t *testing.T, apiKey string) (*BrevoService, *mocks.MockHTTPClient) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	sender := domain.Sender{Email: "news@acme.test", Name: "Newsletter Generator"}
	return NewBrevoService(httpClient, apiKey, "https://api.brevo.test/v3", sender, newMockLogger(ctrl)), httpClient
}

var testEmail = domain.EmailMessage{
	To:      "jane@example.com",
	ToName:  "Jane",
	Subject: "Acme - Industry Newsletter",
	HTML:    "<p>Hello</p>",
	Text:    "Hello",
}

func TestBrevoService_Send(t *testing.T) {
	t.Run("posts the transactional email", func(t *testing.T) {
		service, httpClient := setupBrevoTest(t, "xkeysib-test")
		assert.Equal(t, "brevo", service.Name())

		httpClient.EXPECT().
			Do(gomock.Any()).
			DoAndReturn(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodPost, req.Method)
				assert.Equal(t, "https://api.brevo.test/v3/smtp/email", req.URL.String())
				assert.Equal(t, "xkeysib-test", req.Header.Get("api-key"))
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

				var body map[string]interface{}
				require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
				assert.Equal(t, map[string]interface{}{"email": "news@acme.test", "name": "Newsletter Generator"}, body["sender"])
				assert.Equal(t, []interface{}{map[string]interface{}{"email": "jane@example.com", "name": "Jane"}}, body["to"])
				assert.Equal(t, "Acme - Industry Newsletter", body["subject"])
				assert.Equal(t, "<p>Hello</p>", body["htmlContent"])
				assert.Equal(t, "Hello", body["textContent"])

				return createMockResponse(http.StatusCreated, `{"messageId":"<1@smtp-relay>"}`), nil
			})

		require.NoError(t, service.Send(context.Background(), testEmail))
	})

	t.Run("API error", func(t *testing.T) {
		service, httpClient := setupBrevoTest(t, "xkeysib-test")

		httpClient.EXPECT().
			Do(gomock.Any()).
			Return(createMockResponse(http.StatusUnauthorized, `{"code":"unauthorized","message":"Key not found"}`), nil)

		err := service.Send(context.Background(), testEmail)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "Key not found")
	})

	t.Run("transport error", func(t *testing.T) {
		service, httpClient := setupBrevoTest(t, "xkeysib-test")

		httpClient.EXPECT().Do(gomock.Any()).Return(nil, errors.New("timeout"))

		err := service.Send(context.Background(), testEmail)
		assert.Error(t, err)
	})

	t.Run("invalid recipient is rejected before the call", func(t *testing.T) {
		service, _ := setupBrevoTest(t, "xkeysib-test")

		msg := testEmail
		msg.To = "not-an-email"
		err := service.Send(context.Background(), msg)
		assert.Error(t, err)
	})

	t.Run("missing API key", func(t *testing.T) {
		service, _ := setupBrevoTest(t, "")

		err := service.Send(context.Background(), testEmail)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key")
	})
}
