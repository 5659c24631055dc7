package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// scoreEntryJSON is the wire form of one pair result.
type scoreEntryJSON struct {
	A     Identity `json:"a"`
	B     Identity `json:"b"`
	Score float64  `json:"score"`
	Error string   `json:"error,omitempty"`
}

type scoreMapJSON struct {
	Strategy string           `json:"strategy"`
	Scores   []scoreEntryJSON `json:"scores"`
}

// MarshalJSON encodes the map as an ordered list of pairs so enumeration
// order survives a round trip.
func (m *ScoreMap) MarshalJSON() ([]byte, error) {
	out := scoreMapJSON{
		Strategy: m.strategy,
		Scores:   make([]scoreEntryJSON, 0, len(m.results)),
	}
	for _, r := range m.results {
		e := scoreEntryJSON{A: r.Key.First, B: r.Key.Second, Score: r.Value()}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		out.Scores = append(out.Scores, e)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON. Entries carrying an
// error message become failures wrapping ErrComparison. Other scores are
// rounded to two decimals and must lie in [-1, 1], otherwise ErrScoreRange
// is returned.
func (m *ScoreMap) UnmarshalJSON(data []byte) error {
	var in scoreMapJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	decoded := NewScoreMap(in.Strategy)
	for _, e := range in.Scores {
		if e.A == "" || e.B == "" {
			return fmt.Errorf("score entry: %w", ErrEmptyIdentity)
		}
		if e.A == e.B {
			return fmt.Errorf("score entry: pair of %q with itself", e.A)
		}
		key := NewPairKey(e.A, e.B)
		var r PairResult
		if e.Error != "" {
			r = Failure(key, fmt.Errorf("%w: %w", ErrComparison, errors.New(e.Error)))
		} else {
			score, err := decodeScore(e.Score)
			if err != nil {
				return fmt.Errorf("score entry %s: %w", key, err)
			}
			r = Success(key, score)
		}
		if !decoded.Add(r) {
			return fmt.Errorf("score entry: duplicate pair %s", key)
		}
	}

	*m = *decoded
	return nil
}

func decodeScore(raw float64) (float64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%w: %v", ErrScoreRange, raw)
	}
	score := Round2(raw)
	if score < -1 || score > 1 {
		return 0, fmt.Errorf("%w: %v", ErrScoreRange, raw)
	}
	return score, nil
}
