package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.App.Storage)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.Business.CommercialCommissionPct.Equal(decimal.NewFromInt(5)))
	assert.True(t, cfg.Business.GatewayFeePct.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, cfg.Business.GatewayFixedFee.Equal(decimal.RequireFromString("0.25")))
	assert.True(t, cfg.Business.IndividualShippingCost.IsZero())
}

func TestFromViper_DecimalConComa(t *testing.T) {
	v := viper.New()
	v.Set("GATEWAY_FEE_PCT", "1,4")
	v.Set("HTTP_PORT", "9090")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.True(t, cfg.Business.GatewayFeePct.Equal(decimal.RequireFromString("1.4")))
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_DecimalInvalido(t *testing.T) {
	v := viper.New()
	v.Set("COMMERCIAL_COMMISSION_PCT", "cinco")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("INDIVIDUAL_SHIPPING_COST", "-3")
	_, err = fromViper(v)
	assert.Error(t, err, "no se aceptan costes negativos")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "clubmerch", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/clubmerch?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString())
}

func TestFromViper_StorageDriver(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Memory")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.App.Storage)

	v.Set("STORAGE_DRIVER", "sqlite")
	_, err = fromViper(v)
	assert.Error(t, err)
}
