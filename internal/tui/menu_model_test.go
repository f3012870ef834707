package tui

import (
	"context"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7ntys/chaos-lab/internal/loader"
	"github.com/7ntys/chaos-lab/internal/menu"
	"github.com/7ntys/chaos-lab/internal/view"
)

func staticLoader(result loader.Result, calls *atomic.Int32) view.LoaderFunc {
	return func(context.Context) loader.Result {
		if calls != nil {
			calls.Add(1)
		}
		return result
	}
}

// TestMenuModel_InitialState verifies the model starts in loading.
func TestMenuModel_InitialState(t *testing.T) {
	model := NewMenuModel(context.Background(), staticLoader(loader.Success(nil, nil), nil))

	cmd := model.Init()

	assert.NotNil(t, cmd)
	assert.True(t, model.State().IsLoading())
	assert.Contains(t, model.View(), loadingText)
}

// TestMenuModel_SettleSuccess verifies Loading -> Loaded.
func TestMenuModel_SettleSuccess(t *testing.T) {
	items := []menu.Item{{ID: "1", Category: "Coffee", Name: "Latte", Description: "Milky", PriceCents: 450}}
	specials := []menu.Special{{ID: "9", Title: "Soup of the Day", Description: "Ask staff"}}
	result := loader.Success(items, specials)

	model := NewMenuModel(context.Background(), staticLoader(result, nil))
	model.Init()

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	model = updated.(*MenuModel)
	updated, _ = model.Update(menuSettledMsg{ticket: model.ticket, result: result})
	model = updated.(*MenuModel)

	require.Equal(t, view.PhaseLoaded, model.State().Phase())
	frame := model.View()
	assert.Contains(t, frame, "Latte")
	assert.Contains(t, frame, "$4.50")
	assert.Contains(t, frame, "Soup of the Day")
	assert.NotContains(t, frame, loadingText)
}

// TestMenuModel_SettleFailure verifies Loading -> Failed.
func TestMenuModel_SettleFailure(t *testing.T) {
	result := loader.Failure(loader.ErrBackendUnavailable)
	model := NewMenuModel(context.Background(), staticLoader(result, nil))
	model.Init()

	updated, _ := model.Update(menuSettledMsg{ticket: model.ticket, result: result})
	model = updated.(*MenuModel)

	msg, failed := model.State().Error()
	require.True(t, failed)
	assert.Equal(t, "Backend unavailable", msg)
	assert.Contains(t, model.View(), "Backend unavailable")
	assert.NotContains(t, model.View(), specialsHeading)
}

// TestMenuModel_QuitBeforeSettle verifies late results are discarded after teardown.
func TestMenuModel_QuitBeforeSettle(t *testing.T) {
	result := loader.Success([]menu.Item{{ID: "1", Category: "Coffee"}}, nil)
	model := NewMenuModel(context.Background(), staticLoader(result, nil))
	model.Init()

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	model = updated.(*MenuModel)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	updated, _ = model.Update(menuSettledMsg{ticket: model.ticket, result: result})
	model = updated.(*MenuModel)

	assert.True(t, model.State().IsLoading())
	assert.Empty(t, model.State().Items())
	assert.Empty(t, model.View())
}

// TestMenuModel_LoadCommandRunsLoader verifies the batched command performs exactly one load.
func TestMenuModel_LoadCommandRunsLoader(t *testing.T) {
	var calls atomic.Int32
	result := loader.Success(nil, nil)
	model := NewMenuModel(context.Background(), staticLoader(result, &calls))

	batch, ok := model.Init()().(tea.BatchMsg)
	require.True(t, ok)

	var settled *menuSettledMsg
	for _, cmd := range batch {
		if cmd == nil {
			continue
		}
		if msg, isSettle := cmd().(menuSettledMsg); isSettle {
			settled = &msg
		}
	}

	require.NotNil(t, settled)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, settled.result.OK())
}

// TestMenuModel_CtrlCQuits verifies ctrl+c quits.
func TestMenuModel_CtrlCQuits(t *testing.T) {
	model := NewMenuModel(context.Background(), staticLoader(loader.Success(nil, nil), nil))
	model.Init()

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
