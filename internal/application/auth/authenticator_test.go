package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthenticatorRejectsEmptySecret(t *testing.T) {
	authn, err := NewAuthenticator("")

	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.Nil(t, authn)
}

func TestVerify(t *testing.T) {
	authn, err := NewAuthenticator("s3cret")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{name: "exact match", header: "Bearer s3cret"},
		{name: "absent", header: "", wantErr: true},
		{name: "scheme only", header: "Bearer ", wantErr: true},
		{name: "secret only", header: "s3cret", wantErr: true},
		{name: "wrong secret", header: "Bearer nope", wantErr: true},
		{name: "wrong scheme", header: "Basic s3cret", wantErr: true},
		{name: "lowercase scheme", header: "bearer s3cret", wantErr: true},
		{name: "secret case differs", header: "Bearer S3CRET", wantErr: true},
		{name: "trailing whitespace", header: "Bearer s3cret ", wantErr: true},
		{name: "leading whitespace", header: " Bearer s3cret", wantErr: true},
		{name: "double space", header: "Bearer  s3cret", wantErr: true},
		{name: "secret prefix", header: "Bearer s3cre", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authn.Verify(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthorized)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
