package inference

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// The artifact must accept exactly two input features per row and produce
// exactly six output values per row.
const (
	expectedFeatureCount = 2
	expectedTargetCount  = 6
)

// Node is one node of a regression tree in array encoding. Non-leaf nodes
// route row[Feature] < Threshold to Left, everything else to Right.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
}

// Tree is a single regression tree. Node 0 is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Artifact is the portable serialized form of the fitted multi-output
// regressor: one boosted tree ensemble per target, evaluated as
// base_score + sum of leaf values.
type Artifact struct {
	SchemaVersion int       `json:"schema_version"`
	ModelID       string    `json:"model_id"`
	Features      []string  `json:"features"`
	Targets       []string  `json:"targets"`
	BaseScores    []float64 `json:"base_scores"`
	Ensembles     [][]Tree  `json:"ensembles"`
}

// validate checks the decoded artifact against the inference contract.
func (a *Artifact) validate() error {
	if a.ModelID != "" {
		if _, err := uuid.Parse(a.ModelID); err != nil {
			return errors.Wrapf(err, "model_id %q is not a valid UUID", a.ModelID)
		}
	}
	if len(a.Features) != expectedFeatureCount {
		return errors.Errorf("artifact declares %d input features, want %d", len(a.Features), expectedFeatureCount)
	}
	if len(a.Targets) != expectedTargetCount {
		return errors.Errorf("artifact declares %d output targets, want %d", len(a.Targets), expectedTargetCount)
	}
	if len(a.BaseScores) != len(a.Targets) {
		return errors.Errorf("artifact has %d base scores for %d targets", len(a.BaseScores), len(a.Targets))
	}
	if len(a.Ensembles) != len(a.Targets) {
		return errors.Errorf("artifact has %d ensembles for %d targets", len(a.Ensembles), len(a.Targets))
	}
	for t, ensemble := range a.Ensembles {
		for ti, tree := range ensemble {
			if err := tree.validate(len(a.Features)); err != nil {
				return errors.Wrapf(err, "target %d tree %d", t, ti)
			}
		}
	}
	return nil
}

// validate checks node references. Children must point forward in the node
// array, which also rules out traversal cycles.
func (t Tree) validate(featureCount int) error {
	if len(t.Nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= featureCount {
			return errors.Errorf("node %d splits on feature %d, only %d features exist", i, n.Feature, featureCount)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return errors.Errorf("node %d has out-of-range children (%d, %d)", i, n.Left, n.Right)
		}
	}
	return nil
}

// eval walks one row down the tree to its leaf value. A NaN feature value
// fails every comparison and falls through to the right branch.
func (t Tree) eval(row []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if row[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}
