package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/7ntys/chaos-lab/internal/loader"
	"github.com/7ntys/chaos-lab/internal/menu"
)

func TestState_ZeroValueIsLoading(t *testing.T) {
	var s State
	assert.True(t, s.IsLoading())
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Empty(t, s.Items())
	assert.Empty(t, s.Specials())

	_, failed := s.Error()
	assert.False(t, failed)
}

func TestState_Settle(t *testing.T) {
	items := []menu.Item{{ID: "1", Category: "Coffee", Name: "Latte", PriceCents: 450}}
	specials := []menu.Special{{ID: "9", Title: "Soup of the Day"}}

	tests := []struct {
		name         string
		result       loader.Result
		wantPhase    Phase
		wantMessage  string
		wantItems    int
		wantSpecials int
	}{
		{
			name:         "success",
			result:       loader.Success(items, specials),
			wantPhase:    PhaseLoaded,
			wantItems:    1,
			wantSpecials: 1,
		},
		{
			name:      "empty success is not an error",
			result:    loader.Success(nil, nil),
			wantPhase: PhaseLoaded,
		},
		{
			name:        "backend unavailable",
			result:      loader.Failure(loader.ErrBackendUnavailable),
			wantPhase:   PhaseFailed,
			wantMessage: "Backend unavailable",
		},
		{
			name:        "custom error",
			result:      loader.Failure(errors.New("unexpected EOF")),
			wantPhase:   PhaseFailed,
			wantMessage: "unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Loading().Settle(tt.result)

			assert.Equal(t, tt.wantPhase, s.Phase())
			assert.False(t, s.IsLoading())
			msg, failed := s.Error()
			assert.Equal(t, tt.wantPhase == PhaseFailed, failed)
			assert.Equal(t, tt.wantMessage, msg)
			assert.Len(t, s.Items(), tt.wantItems)
			assert.Len(t, s.Specials(), tt.wantSpecials)
		})
	}
}

func TestState_SettleIsOneShot(t *testing.T) {
	loaded := Loading().Settle(loader.Success([]menu.Item{{ID: "1"}}, nil))
	again := loaded.Settle(loader.Failure(loader.ErrBackendUnavailable))

	assert.Equal(t, PhaseLoaded, again.Phase())
	assert.Len(t, again.Items(), 1)

	failed := Failed("first")
	assert.Equal(t, failed, failed.Settle(loader.Success(nil, nil)))
}

func TestFailed_EmptyMessageFallsBack(t *testing.T) {
	msg, ok := Failed("").Error()
	assert.True(t, ok)
	assert.Equal(t, loader.FallbackMessage, msg)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "failed", PhaseFailed.String())
	assert.Equal(t, "loaded", PhaseLoaded.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
