package engineobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"smarttrade-bot/internal/mocks"
	"smarttrade-bot/internal/types"
)

func TestWrapPassesResultsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	cycle := mocks.NewMockCycle(ctrl)

	want := &types.CycleResult{
		CycleID:  "c-1",
		Epic:     "GOLD",
		Outcome:  types.OutcomeCompleted,
		Decision: &types.DecisionResult{FinalAction: types.ActionKeep},
	}
	cycle.EXPECT().Execute(gomock.Any()).Return(want, nil)

	got, err := Wrap(cycle).Execute(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestWrapKeepsPartialResultOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	cycle := mocks.NewMockCycle(ctrl)

	partial := &types.CycleResult{CycleID: "c-2", Outcome: types.OutcomeFailed}
	cycle.EXPECT().Execute(gomock.Any()).Return(partial, errors.New("broker down"))

	got, err := Wrap(cycle).Execute(context.Background())
	require.Error(t, err)
	assert.Same(t, partial, got)
}
