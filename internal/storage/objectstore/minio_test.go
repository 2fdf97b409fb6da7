package objectstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/proagil-api/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ObjectStore.Endpoint = "localhost:9000"
	cfg.ObjectStore.AccessKey = "minio"
	cfg.ObjectStore.SecretKey = "minio123"
	cfg.ObjectStore.Bucket = "proagil-imagens"
	return cfg
}

func TestObjectURLDefaultsToEndpoint(t *testing.T) {
	store, err := NewMinioImageStore(testConfig())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/proagil-imagens/eventos/1/a.png", store.ObjectURL("eventos/1/a.png"))
}

func TestObjectURLUsesPublicURL(t *testing.T) {
	cfg := testConfig()
	cfg.ObjectStore.PublicURL = "https://cdn.proagil.com/"

	store, err := NewMinioImageStore(cfg)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.proagil.com/proagil-imagens/x.jpg", store.ObjectURL("x.jpg"))
}

func TestObjectName(t *testing.T) {
	name := ObjectName("eventos/7", "Banner.PNG")

	assert.True(t, strings.HasPrefix(name, "eventos/7/"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, name, ObjectName("eventos/7", "Banner.PNG"))
}
