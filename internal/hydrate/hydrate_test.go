package hydrate

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationSettings struct {
	Email   bool   `json:"email"`
	Digest  string `json:"digest"`
	Retries int    `json:"retries"`
}

func TestDecoderDecodesMap(t *testing.T) {
	decoder := NewDecoder[notificationSettings]()

	got, err := decoder.Decode(Context{Store: "prefs"}, map[string]any{
		"email":   true,
		"digest":  "weekly",
		"retries": 3.0,
	})

	require.NoError(t, err)
	assert.Equal(t, notificationSettings{Email: true, Digest: "weekly", Retries: 3}, got)
}

func TestDecoderDisallowUnknownFields(t *testing.T) {
	decoder := NewDecoder(WithDisallowUnknownFields[notificationSettings]())

	_, err := decoder.Decode(Context{Store: "prefs"}, map[string]any{
		"email": true,
		"sms":   false,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "hydrate: decode prefs")
}

func TestDecoderUseNumber(t *testing.T) {
	decoder := NewDecoder(WithUseNumber[map[string]any]())

	got, err := decoder.Decode(Context{}, map[string]any{"limit": 10})

	require.NoError(t, err)
	assert.Equal(t, json.Number("10"), got["limit"])
}

func TestDecoderHooks(t *testing.T) {
	decoder := NewDecoder(
		WithPreHook[notificationSettings](func(ctx Context, payload any) (any, error) {
			values, _ := payload.(map[string]any)
			if _, ok := values["digest"]; !ok {
				values["digest"] = "daily"
			}
			return values, nil
		}),
		WithPostHook[notificationSettings](func(ctx Context, out *notificationSettings) error {
			if out.Retries == 0 {
				out.Retries = 1
			}
			return nil
		}),
	)

	got, err := decoder.Decode(Context{Store: "prefs", Key: "notifications"}, map[string]any{"email": true})

	require.NoError(t, err)
	assert.Equal(t, notificationSettings{Email: true, Digest: "daily", Retries: 1}, got)
}

func TestDecoderHookErrorsNameTheSource(t *testing.T) {
	boom := errors.New("boom")
	decoder := NewDecoder(WithPostHook[notificationSettings](func(Context, *notificationSettings) error {
		return boom
	}))

	_, err := decoder.Decode(Context{Store: "prefs", Key: "notifications"}, map[string]any{})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "prefs.notifications")
}

func TestContextLabel(t *testing.T) {
	assert.Equal(t, "unnamed", Context{}.label())
	assert.Equal(t, "key", Context{Key: "key"}.label())
	assert.Equal(t, "store", Context{Store: "store"}.label())
}
