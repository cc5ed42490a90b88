package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/merakichess/meraki/internal/board"
)

// DefaultCPScale is the logistic steepness used when the coefficient file
// does not carry one.
const DefaultCPScale = 1200

// DefaultBlendAlpha is the default weight of the model-derived score in the
// blended evaluation.
const DefaultBlendAlpha = 0.35

const wpEpsilon = 1e-6

// ErrUnknownFeatureSet is returned when a model names a feature extractor
// this build does not implement.
var ErrUnknownFeatureSet = errors.New("mlbridge: unknown feature set")

// LogRegModel is a trained logistic regression over board features,
// predicting White's win probability. Immutable after load.
type LogRegModel struct {
	FeatureSet   string    `json:"feature_set"`
	FeatureNames []string  `json:"feature_names"`
	W            []float64 `json:"w"`
	B            float64   `json:"b"`
	CPScale      int       `json:"cp_scale"`
	Note         string    `json:"note"`
}

// LoadModel reads a coefficient file. Any failure (missing file, malformed
// content, weight vector not matching the feature set) returns an error; the
// engine treats that as "no model" and keeps the handcrafted evaluation.
func LoadModel(path string) (*LogRegModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mlbridge: read coefficients: %w", err)
	}

	model := &LogRegModel{CPScale: DefaultCPScale}
	if err := json.Unmarshal(data, model); err != nil {
		return nil, fmt.Errorf("mlbridge: parse coefficients: %w", err)
	}
	if model.FeatureSet == "" {
		model.FeatureSet = "material5"
	}
	if model.CPScale == 0 {
		model.CPScale = DefaultCPScale
	}
	if len(model.W) == 0 {
		return nil, errors.New("mlbridge: coefficient file has no weights")
	}

	width, err := featureWidth(model.FeatureSet)
	if err != nil {
		return nil, err
	}
	if len(model.W) != width {
		return nil, fmt.Errorf("mlbridge: %s expects %d weights, file has %d",
			model.FeatureSet, width, len(model.W))
	}
	return model, nil
}

// PredictWP returns White's win probability for a feature vector, clamped to
// [eps, 1-eps]. The second return is false on a feature/weight length
// mismatch.
func (m *LogRegModel) PredictWP(x []float64) (float64, bool) {
	if len(x) != len(m.W) {
		return 0, false
	}
	z := m.B
	for i, w := range m.W {
		z += w * x[i]
	}
	return clampWP(sigmoid(z)), true
}

// sigmoid is the numerically stable logistic function.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}

func clampWP(p float64) float64 {
	if p < wpEpsilon {
		return wpEpsilon
	}
	if p > 1-wpEpsilon {
		return 1 - wpEpsilon
	}
	return p
}

// WPToCP maps a win probability back to centipawns via the inverse logistic
// around 0.5. Monotonic in p; WPToCP(0.5) == 0.
func (m *LogRegModel) WPToCP(p float64) int {
	p = clampWP(p)
	odds := p / (1 - p)
	return int(math.Round(float64(m.CPScale) * math.Log(odds)))
}

// extractFeatures dispatches on the model's feature set name. material5 is
// the only set shipped.
func extractFeatures(pos *board.Position, featureSet string) ([]float64, error) {
	switch featureSet {
	case "material5":
		return featuresMaterial5(pos), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeatureSet, featureSet)
	}
}

func featureWidth(featureSet string) (int, error) {
	switch featureSet {
	case "material5":
		return 5, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFeatureSet, featureSet)
	}
}

// featuresMaterial5 returns signed piece-count differences (White - Black)
// in the order pawn, bishop, rook, knight, queen. The order is the column
// order the coefficients were trained against and must not be changed.
func featuresMaterial5(pos *board.Position) []float64 {
	diff := func(piece board.Piece) float64 {
		return float64(pos.Count(piece, board.White) - pos.Count(piece, board.Black))
	}
	return []float64{
		diff(board.Pawn),
		diff(board.Bishop),
		diff(board.Rook),
		diff(board.Knight),
		diff(board.Queen),
	}
}

// Blended evaluates with the handcrafted score convex-blended against the
// model-derived centipawn value. When the model is absent or feature
// extraction fails it degrades to the handcrafted score alone.
type Blended struct {
	HC    Handcrafted
	Model *LogRegModel
	Alpha float64
}

// NewBlended builds a blended evaluator from a coefficient file path. A load
// failure is logged once and yields a handcrafted-only evaluator, per the
// fallback policy: a bad coefficient file must never stop the engine.
func NewBlended(coeffPath string, alpha float64) *Blended {
	model, err := LoadModel(coeffPath)
	if err != nil {
		log.Printf("[MLBridge] %v (falling back to handcrafted evaluation)", err)
	}
	return &Blended{Model: model, Alpha: alpha}
}

// Evaluate returns round((1-alpha)*hc + alpha*cp_ml) from the side to move's
// perspective, or hc alone when no model applies.
func (b *Blended) Evaluate(pos *board.Position) int {
	hc := b.HC.Evaluate(pos)
	if b.Model == nil {
		return hc
	}

	x, err := extractFeatures(pos, b.Model.FeatureSet)
	if err != nil {
		return hc
	}
	p, ok := b.Model.PredictWP(x)
	if !ok {
		return hc
	}

	cpML := b.Model.WPToCP(p)
	// The model predicts from White's point of view; flip to match the
	// side-to-move convention of the handcrafted score.
	if !pos.WhiteToMove() {
		cpML = -cpML
	}
	return int(math.Round((1-b.Alpha)*float64(hc) + b.Alpha*float64(cpML)))
}
