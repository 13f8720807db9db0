package apitest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kochuseyin65/muayane/internal/api"
)

func login(t *testing.T, client *api.Client, email, password string) string {
	t.Helper()
	resp, err := client.Post("/auth/login", map[string]any{"email": email, "password": password}, "")
	require.NoError(t, err)
	require.True(t, resp.OK(), "login failed: %s", resp.Body)
	token := api.LoginToken(resp)
	require.NotEmpty(t, token)
	return token
}

func TestAuthRequired(t *testing.T) {
	srv := New(Options{})
	defer srv.Close()
	client := api.New(srv.BaseURL(), nil)

	resp, err := client.Get("/auth/profile", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.Status)

	resp, err = client.Get("/auth/profile", "not-a-jwt", nil)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.Status)

	token := login(t, client, "admin@abc.com", "password")
	resp, err = client.Get("/auth/profile", token, nil)
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestOfferTotalUsesDecimalAmounts(t *testing.T) {
	srv := New(Options{})
	defer srv.Close()
	client := api.New(srv.BaseURL(), nil)
	token := login(t, client, "admin@abc.com", "password")

	cust, err := client.Post("/customer-companies", map[string]any{"name": "Musteri", "taxNumber": "1"}, token)
	require.NoError(t, err)
	var custPayload api.IDPayload
	require.NoError(t, cust.DecodeData(&custPayload))

	eq, err := client.Post("/equipment", map[string]any{
		"name": "Vinc", "type": "vinc", "template": map[string]any{"sections": []any{}},
	}, token)
	require.NoError(t, err)
	var eqPayload api.IDPayload
	require.NoError(t, eq.DecodeData(&eqPayload))

	offer, err := client.Post("/offers", map[string]any{
		"customerCompanyId": custPayload.ID,
		"items": []map[string]any{
			{"equipmentId": eqPayload.ID, "quantity": 3, "unitPrice": 1000},
		},
	}, token)
	require.NoError(t, err)
	require.True(t, offer.OK())

	var payload struct {
		ID    int64  `json:"id"`
		Total string `json:"total"`
	}
	require.NoError(t, offer.DecodeData(&payload))
	assert.Equal(t, "3000", payload.Total)
}

func TestSigningRequiresTechnicianPIN(t *testing.T) {
	srv := New(Options{})
	defer srv.Close()
	client := api.New(srv.BaseURL(), nil)
	admin := login(t, client, "admin@abc.com", "password")
	tech := login(t, client, "ahmet@abc.com", "password")

	// admins have no signing PIN at all
	resp, err := client.Post("/reports/1/sign", map[string]any{
		"pin": "123456", "signedPdfBase64": "aGk=",
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.Status)

	resp, err = client.Post("/reports/1/sign", map[string]any{
		"pin": "000000", "signedPdfBase64": "aGk=",
	}, tech)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.Status)
}
