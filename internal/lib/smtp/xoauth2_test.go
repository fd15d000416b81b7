package smtp

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXOAuth2Auth_Start(t *testing.T) {
	auth := XOAuth2Auth("service@example.com", "ya29.token")

	proto, resp, err := auth.Start(&smtp.ServerInfo{Name: "smtp.gmail.com", TLS: true})
	require.NoError(t, err)

	assert.Equal(t, "XOAUTH2", proto)
	assert.Equal(t, "user=service@example.com\x01auth=Bearer ya29.token\x01\x01", string(resp))
}

func TestXOAuth2Auth_Next(t *testing.T) {
	auth := XOAuth2Auth("service@example.com", "ya29.token")

	tests := []struct {
		name      string
		challenge []byte
		more      bool
		want      []byte
		wantErr   bool
	}{
		{
			name:      "ошибка от сервера требует пустого ответа",
			challenge: []byte(`{"status":"400"}`),
			more:      true,
			want:      []byte(""),
		},
		{
			name:      "пустой challenge при more считается протокольной ошибкой",
			challenge: nil,
			more:      true,
			wantErr:   true,
		},
		{
			name: "завершение диалога",
			more: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Next(tt.challenge, tt.more)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
