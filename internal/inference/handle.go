package inference

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/mholt/archives"
	"github.com/pkg/errors"
)

// Frame is an ordered tabular batch: named columns and row-major values.
// It is the input shape Predict expects.
type Frame struct {
	Columns []string
	Rows    [][]float64
}

// Handle owns the loaded regression artifact. It is immutable after Load;
// Predict only reads the tree data, so a single Handle may be shared by any
// number of concurrent callers without locking.
type Handle struct {
	art *Artifact
}

// Load reads, decodes and validates a model artifact. Artifacts ending in
// .gz are decompressed transparently. A missing file and a corrupt or
// incompatible one produce distinct errors so operators can tell the two
// apart; both must abort startup.
func Load(path string) (*Handle, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "model artifact not found at %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "model artifact at %s is unreadable", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		rc, err := archives.Gz{}.OpenReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "model artifact at %s is corrupt or incompatible", path)
		}
		defer rc.Close()
		r = rc
	}

	var art Artifact
	if err := json.NewDecoder(r).Decode(&art); err != nil {
		return nil, errors.Wrapf(err, "model artifact at %s is corrupt or incompatible", path)
	}
	if err := art.validate(); err != nil {
		return nil, errors.Wrapf(err, "model artifact at %s is corrupt or incompatible", path)
	}
	return &Handle{art: &art}, nil
}

// ModelID returns the artifact's model identifier, if it carries one.
func (h *Handle) ModelID() string { return h.art.ModelID }

// Features returns the input column names the artifact was trained on,
// in the order Predict expects them.
func (h *Handle) Features() []string { return h.art.Features }

// Targets returns the output names in the order Predict emits them.
func (h *Handle) Targets() []string { return h.art.Targets }

// Predict runs batch inference. The frame's columns must match the
// artifact's feature list exactly, including order. The result has one row
// per input row, in input order, with one value per target.
func (h *Handle) Predict(f Frame) ([][]float64, error) {
	if len(f.Columns) != len(h.art.Features) {
		return nil, errors.Errorf("input has columns %v, model expects %v", f.Columns, h.art.Features)
	}
	for i, c := range f.Columns {
		if c != h.art.Features[i] {
			return nil, errors.Errorf("input has columns %v, model expects %v", f.Columns, h.art.Features)
		}
	}

	out := make([][]float64, len(f.Rows))
	for i, row := range f.Rows {
		if len(row) != len(h.art.Features) {
			return nil, errors.Errorf("row %d has %d values, model expects %d", i, len(row), len(h.art.Features))
		}
		preds := make([]float64, len(h.art.Targets))
		for t := range h.art.Ensembles {
			score := h.art.BaseScores[t]
			for _, tree := range h.art.Ensembles[t] {
				score += tree.eval(row)
			}
			preds[t] = score
		}
		out[i] = preds
	}
	return out, nil
}
