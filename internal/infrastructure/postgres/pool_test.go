package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/pkg/config"
)

func TestBuildPoolConfig_DesdeCampos(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.interno", Port: 5433, User: "app", Password: "p@ss:word", DBName: "practicas",
		SSLMode: "disable", MaxConns: 8, MinConns: 20,
	}
	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "db.interno", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(8), pc.MinConns, "el mínimo no supera al máximo")
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestBuildPoolConfig_DatabaseURLYIPv4(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@pg.example.com:6543/practicas?sslmode=disable&application_name=migrador",
		Host:        "ignorado",
		ForceIPv4:   true,
	}
	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "pg.example.com", pc.ConnConfig.Host)
	assert.Equal(t, "migrador", pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.ConnConfig.DialFunc)
}

func TestBuildPoolConfig_DSNInvalido(t *testing.T) {
	_, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
