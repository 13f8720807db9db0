package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kochuseyin65/muayane/internal/apitest"
)

func TestSeedCommand(t *testing.T) {
	srv := apitest.New(apitest.Options{})
	defer srv.Close()

	stdout, err := execute(t, "seed", "--base", srv.BaseURL())
	require.NoError(t, err, stdout)
	assert.Contains(t, stdout, "Success: equipment created.")
	assert.Contains(t, stdout, `"id"`)
}

func TestSeedCommandBadCredentials(t *testing.T) {
	srv := apitest.New(apitest.Options{})
	defer srv.Close()

	_, err := execute(t, "seed", "--base", srv.BaseURL(), "--pass", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")
}
