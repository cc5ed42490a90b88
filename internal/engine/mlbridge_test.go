package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merakichess/meraki/internal/board"
)

func writeCoeffFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coeffs.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadModel(t *testing.T) {
	path := writeCoeffFile(t, `{
		"feature_set": "material5",
		"feature_names": ["pawn_diff", "bishop_diff", "rook_diff", "knight_diff", "queen_diff"],
		"w": [0.1, 0.2, 0.3, 0.25, 0.5],
		"b": 0.05,
		"cp_scale": 1000,
		"note": "test model"
	}`)

	model, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, "material5", model.FeatureSet)
	assert.Len(t, model.W, 5)
	assert.Equal(t, 1000, model.CPScale)
}

func TestLoadModelDefaults(t *testing.T) {
	path := writeCoeffFile(t, `{"w": [0.1, 0.2, 0.3, 0.25, 0.5], "b": 0}`)

	model, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, "material5", model.FeatureSet, "feature set defaults to material5")
	assert.Equal(t, DefaultCPScale, model.CPScale)
}

func TestLoadModelFailures(t *testing.T) {
	cases := map[string]string{
		"malformed json":  `{"w": [0.1`,
		"no weights":      `{"b": 0.5}`,
		"wrong width":     `{"w": [0.1, 0.2], "b": 0}`,
		"unknown feature": `{"feature_set": "psqt768", "w": [1], "b": 0}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadModel(writeCoeffFile(t, content))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadModel("/nonexistent/coeffs.json")
		assert.Error(t, err)
	})
}

func TestPredictWPStability(t *testing.T) {
	model := &LogRegModel{FeatureSet: "material5", W: []float64{1}, B: 0, CPScale: DefaultCPScale}

	for _, z := range []float64{-100, -50, -1, 0, 1, 50, 100} {
		p, ok := model.PredictWP([]float64{z})
		require.True(t, ok)
		assert.GreaterOrEqual(t, p, wpEpsilon, "z=%v", z)
		assert.LessOrEqual(t, p, 1-wpEpsilon, "z=%v", z)
	}

	// Monotonic in z.
	prev := -1.0
	for _, z := range []float64{-100, -10, -1, 0, 1, 10, 100} {
		p, _ := model.PredictWP([]float64{z})
		assert.Greater(t, p, prev)
		prev = p
	}
}

func TestPredictWPLengthMismatch(t *testing.T) {
	model := &LogRegModel{W: []float64{1, 2}, B: 0}
	_, ok := model.PredictWP([]float64{1})
	assert.False(t, ok)
}

func TestWPToCPRoundTrip(t *testing.T) {
	model := &LogRegModel{CPScale: DefaultCPScale}

	assert.Equal(t, 0, model.WPToCP(0.5))

	// Monotonic in p.
	prev := model.WPToCP(0.01)
	for _, p := range []float64{0.1, 0.25, 0.5, 0.75, 0.9, 0.99} {
		cp := model.WPToCP(p)
		assert.Greater(t, cp, prev)
		prev = cp
	}
}

func TestMaterial5FeatureOrder(t *testing.T) {
	// White: extra bishop. Black: extra rook and knight. The vector order is
	// pawn, bishop, rook, knight, queen - the training column order.
	pos := mustPos(t, "1nrk4/8/8/8/8/8/8/2BK4 w - - 0 1")

	x, err := extractFeatures(pos, "material5")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, -1, -1, 0}, x)
}

func TestExtractFeaturesUnknownSet(t *testing.T) {
	_, err := extractFeatures(board.NewPosition(), "material9")
	assert.ErrorIs(t, err, ErrUnknownFeatureSet)
}

func TestBlendedFallsBackWithoutModel(t *testing.T) {
	pos := board.NewPosition()
	hc := Handcrafted{}.Evaluate(pos)

	missing := NewBlended("/nonexistent/coeffs.json", DefaultBlendAlpha)
	assert.Equal(t, hc, missing.Evaluate(pos), "missing model must fall back to handcrafted")
}

func TestBlendedShiftsEvaluation(t *testing.T) {
	// A model that always predicts a White win pulls the blended score of a
	// balanced position toward White.
	path := writeCoeffFile(t, `{"w": [0, 0, 0, 0, 0], "b": 3.0, "cp_scale": 1200}`)
	blended := NewBlended(path, DefaultBlendAlpha)
	require.NotNil(t, blended.Model)

	pos := board.NewPosition()
	hc := Handcrafted{}.Evaluate(pos)
	got := blended.Evaluate(pos)
	assert.Greater(t, got, hc)

	// Same position from Black's perspective scores negative.
	black := mustPos(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	assert.Less(t, blended.Evaluate(black), Handcrafted{}.Evaluate(black))
}
