package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORAGE_DRIVER", "memory")
	v.SetDefault("REFERENCE_CURRENCY", "USD")
	v.SetDefault("SECONDARY_CURRENCY", "CDF")
	v.SetDefault("EXCHANGE_RATES", "CDF=0.00036")
	v.SetDefault("STAGE_TIMEOUT", "0s")
	v.SetDefault("SWEEP_INTERVAL", "5m")
	v.SetDefault("SWEEP_STAGES", "analyst, challenger")
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(defaults())

	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, []string{"USD", "CDF"}, cfg.Currencies())
	assert.Equal(t, "1", cfg.ExchangeRates["USD"].String())
	assert.Equal(t, "0.00036", cfg.ExchangeRates["CDF"].String())
	assert.Equal(t, []string{"analyst", "challenger"}, cfg.SweepStages)
	assert.Equal(t, time.Duration(0), cfg.StageTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
}

func TestFromViper_RejectsBadRates(t *testing.T) {
	v := defaults()
	v.Set("EXCHANGE_RATES", "CDF=abc")
	_, err := fromViper(v)
	assert.Error(t, err)

	v.Set("EXCHANGE_RATES", "EUR=1.1")
	_, err = fromViper(v)
	assert.ErrorContains(t, err, "no rate for CDF")
}

func TestFromViper_RejectsUnknownDriver(t *testing.T) {
	v := defaults()
	v.Set("STORAGE_DRIVER", "sqlite")

	_, err := fromViper(v)

	assert.Error(t, err)
}

func TestFromViper_SameCurrencies(t *testing.T) {
	v := defaults()
	v.Set("SECONDARY_CURRENCY", "usd")

	_, err := fromViper(v)

	assert.Error(t, err)
}
