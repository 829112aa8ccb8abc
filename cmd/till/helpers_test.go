package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillworks/till/internal/model"
	"github.com/tillworks/till/internal/storage"
)

func TestParseMethodFlag(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    model.PaymentMethod
		wantErr bool
	}{
		{name: "empty means no filter", value: "", want: ""},
		{name: "cash", value: "cash", want: model.PaymentCash},
		{name: "leke", value: "leke", want: model.PaymentLeke},
		{name: "mobile", value: "mobile", want: model.PaymentMobile},
		{name: "unknown method", value: "check", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMethodFlag(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitStore_Drivers(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("json driver", func(t *testing.T) {
		viper.Set("storage.driver", "json")
		viper.Set("storage.path", t.TempDir()+"/ledger.json")
		store, err := initStore()
		require.NoError(t, err)
		defer func() { _ = store.Close() }()
		assert.IsType(t, &storage.JSONStore{}, store)
	})

	t.Run("sqlite driver", func(t *testing.T) {
		viper.Set("storage.driver", "sqlite")
		viper.Set("storage.path", t.TempDir()+"/till.db")
		store, err := initStore()
		require.NoError(t, err)
		defer func() { _ = store.Close() }()
		assert.IsType(t, &storage.SQLiteStore{}, store)
	})

	t.Run("unknown driver", func(t *testing.T) {
		viper.Set("storage.driver", "redis")
		_, err := initStore()
		require.Error(t, err)
	})
}
