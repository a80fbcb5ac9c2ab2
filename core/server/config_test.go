package server_test

import (
	"testing"

	"intake-reconciler/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	c := server.Config{Port: "9090", BodyLimitMB: 2}
	assert.Equal(t, ":9090", c.Addr())
	assert.Equal(t, 2*1024*1024, c.BodyLimit())
	assert.False(t, c.AuthEnabled())

	c.ApiKey = "secret"
	assert.True(t, c.AuthEnabled())

	assert.Equal(t, 4*1024*1024, server.Config{}.BodyLimit())
}
