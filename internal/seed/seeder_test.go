package seed_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kochuseyin65/muayane/internal/apitest"
	"github.com/Kochuseyin65/muayane/internal/seed"
)

func TestSeederCreatesEquipment(t *testing.T) {
	srv := apitest.New(apitest.Options{})
	defer srv.Close()

	s := seed.New(srv.BaseURL(), nil)
	created, err := s.Run("admin@abc.com", "password", "Örnek Ekipman", "Kule Vinç", seed.BuildTemplate())
	require.NoError(t, err)

	var payload struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created, &payload))
	assert.NotZero(t, payload.ID)
}

func TestSeederRejectsBadCredentials(t *testing.T) {
	srv := apitest.New(apitest.Options{})
	defer srv.Close()

	s := seed.New(srv.BaseURL(), nil)
	_, err := s.Run("admin@abc.com", "nope", "X", "Y", seed.BuildTemplate())
	assert.Error(t, err)
}

func TestSeederUnreachableBackend(t *testing.T) {
	srv := apitest.New(apitest.Options{})
	base := srv.BaseURL()
	srv.Close()

	s := seed.New(base, nil)
	_, err := s.Run("admin@abc.com", "password", "X", "Y", seed.BuildTemplate())
	assert.Error(t, err)
}
