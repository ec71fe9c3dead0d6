package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "0.14", cfg.VATRate.String())
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 64, cfg.WSSendBuffer)
	assert.Empty(t, cfg.RedisAddr)
}

func TestFromViperRejectsBadValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"unknown driver", map[string]any{"DB_DRIVER": "postgres"}},
		{"bad vat", map[string]any{"VAT_RATE": "abc"}},
		{"negative vat", map[string]any{"VAT_RATE": "-0.1"}},
		{"bad ttl", map[string]any{"JWT_TTL": "forever"}},
		{"release without secret", map[string]any{"GIN_MODE": "release"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newTestViper(tt.overrides))
			assert.Error(t, err)
		})
	}
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=on", sqliteDSN("app.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "app.db?_foreign_keys=1", sqliteDSN("app.db?_foreign_keys=1"))
}
