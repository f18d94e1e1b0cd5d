package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"single segment", "wamp", false},
		{"error uri", "wamp.error.runtime_error", false},
		{"application uri", "com.example.orders.create", false},
		{"underscores", "com.example.bad_argument", false},
		{"empty string", "", true},
		{"leading dot", ".wamp.error", true},
		{"trailing dot", "wamp.error.", true},
		{"double dot", "wamp..error", true},
		{"embedded space", "wamp.err or", true},
		{"hash character", "wamp.error#frag", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, u.String())
			assert.True(t, u.Valid())
		})
	}
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, URI("a.b.c"), MustParse("a.b.c"))
	assert.Panics(t, func() { MustParse("not valid") })
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"wamp", "error", "canceled"}, Canceled.Segments())
}

func TestWellKnownURIsAreValid(t *testing.T) {
	for _, u := range []URI{
		InvalidURI, InvalidArgument, NoSuchProcedure, NoSuchSubscription,
		NotAuthorized, AuthorizationFailed, NoSuchRealm, Canceled, RuntimeError,
	} {
		assert.True(t, u.Valid(), "uri %q", u)
	}
}
