package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseText(t *testing.T) {
	data, err := json.Marshal(Transition{From: PhasePlaying, To: PhaseRoundOver})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"PLAYING","to":"ROUND_OVER"}`, string(data))

	var tr Transition
	require.NoError(t, json.Unmarshal(data, &tr))
	assert.Equal(t, PhasePlaying, tr.From)
	assert.Equal(t, PhaseRoundOver, tr.To)

	var p Phase
	assert.Error(t, p.UnmarshalText([]byte("WARMUP")))
}

func TestSnapshotNames(t *testing.T) {
	s := NewGameSession()
	s.Handedness = LeftHanded
	s.DistanceTier = TierFar
	s.RemainingTimeMs = 12345

	snap := s.Snapshot()
	assert.Equal(t, "CALIBRATING", snap.Phase)
	assert.Equal(t, "LEFT", snap.Handedness)
	assert.Equal(t, "THREE_POINTER", snap.DistanceName)
	assert.Equal(t, 3, snap.DistanceTier)
	assert.Equal(t, "12.3", snap.RemainingTime)
	assert.Equal(t, UncalibratedHeadHeight, snap.CalibratedHeadHeight)
}
