// SPDX-License-Identifier: MIT

package codec

import (
	"fmt"
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/milo/matrix"
)

const (
	kindDense = "dense"
	kindCSC   = "csc"
	kindSym   = "sym"
	kindDiag  = "diag"
)

// envelope is the JSON payload. Data holds dense values row-major or the
// diagonal; ColPtr/RowIdx/Values hold compressed storage.
type envelope struct {
	Kind     string   `json:"kind"`
	Rows     int      `json:"rows"`
	Cols     int      `json:"cols"`
	RowNames []string `json:"row_names,omitempty"`
	ColNames []string `json:"col_names,omitempty"`
	Data     floats   `json:"data,omitempty"`
	ColPtr   []int    `json:"col_ptr,omitempty"`
	RowIdx   []int    `json:"row_idx,omitempty"`
	Values   floats   `json:"values,omitempty"`
}

func toEnvelope(m matrix.Matrix) (*envelope, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("WriteMatrix: %w", err)
	}
	env := &envelope{Rows: m.Rows(), Cols: m.Cols(), RowNames: m.RowNames(), ColNames: m.ColNames()}
	switch t := m.(type) {
	case *matrix.Dense:
		env.Kind = kindDense
		env.Data = make(floats, 0, env.Rows*env.Cols)
		for i := 0; i < env.Rows; i++ {
			env.Data = append(env.Data, t.Raw().RawRowView(i)...)
		}
	case *matrix.CSC:
		env.Kind = kindCSC
		env.ColPtr, env.RowIdx, env.Values = t.Raw()
	case *matrix.SymCSC:
		env.Kind = kindSym
		env.ColPtr, env.RowIdx, env.Values = t.Upper().Raw()
		env.ColNames = nil
	case *matrix.Diagonal:
		env.Kind = kindDiag
		env.Data = t.RowSums()
	default:
		return nil, fmt.Errorf("WriteMatrix: %T: %w", m, ErrUnsupportedMatrix)
	}

	return env, nil
}

func (env *envelope) toMatrix() (matrix.Matrix, error) {
	switch env.Kind {
	case kindDense:
		var d *matrix.Dense
		var err error
		if env.Data.finite() {
			d, err = matrix.NewDenseFrom(env.Rows, env.Cols, env.Data)
		} else {
			if env.Rows <= 0 || env.Cols <= 0 || len(env.Data) != env.Rows*env.Cols {
				return nil, fmt.Errorf("ReadMatrix: dense %dx%d: %w", env.Rows, env.Cols, matrix.ErrDimensionMismatch)
			}
			d, err = matrix.DenseOf(mat.NewDense(env.Rows, env.Cols, env.Data))
		}
		if err != nil {
			return nil, fmt.Errorf("ReadMatrix: %w", err)
		}

		return d, named(d.SetNames(env.RowNames, env.ColNames))

	case kindCSC:
		c, err := matrix.NewCSC(env.Rows, env.Cols, env.ColPtr, env.RowIdx, env.Values)
		if err != nil {
			return nil, fmt.Errorf("ReadMatrix: %w", err)
		}

		return c, named(c.SetNames(env.RowNames, env.ColNames))

	case kindSym:
		s, err := matrix.NewSymCSC(env.Rows, env.ColPtr, env.RowIdx, env.Values)
		if err != nil {
			return nil, fmt.Errorf("ReadMatrix: %w", err)
		}

		return s, named(s.SetNames(env.RowNames))

	case kindDiag:
		d, err := matrix.NewDiagonal(env.Data)
		if err != nil {
			return nil, fmt.Errorf("ReadMatrix: %w", err)
		}

		return d, named(d.SetNames(env.RowNames, env.ColNames))
	}

	return nil, fmt.Errorf("ReadMatrix: kind %q: %w", env.Kind, ErrUnsupportedMatrix)
}

func named(err error) error {
	if err != nil {
		return fmt.Errorf("ReadMatrix: %w", err)
	}

	return nil
}

// floats encodes NaN and ±Inf as the strings "NaN", "+Inf" and "-Inf",
// which plain JSON numbers cannot express.
type floats []float64

func (f floats) finite() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// MarshalJSON implements gojson.Marshaler.
func (f floats) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 2+len(f)*8)
	buf = append(buf, '[')
	for k, v := range f {
		if k > 0 {
			buf = append(buf, ',')
		}
		switch {
		case math.IsNaN(v):
			buf = append(buf, `"NaN"`...)
		case math.IsInf(v, 1):
			buf = append(buf, `"+Inf"`...)
		case math.IsInf(v, -1):
			buf = append(buf, `"-Inf"`...)
		default:
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
	}

	return append(buf, ']'), nil
}

// UnmarshalJSON implements gojson.Unmarshaler.
func (f *floats) UnmarshalJSON(b []byte) error {
	var raw []gojson.RawMessage
	if err := gojson.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(floats, len(raw))
	for k, r := range raw {
		if len(r) > 0 && r[0] == '"' {
			var s string
			if err := gojson.Unmarshal(r, &s); err != nil {
				return err
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			out[k] = v

			continue
		}
		if err := gojson.Unmarshal(r, &out[k]); err != nil {
			return err
		}
	}
	*f = out

	return nil
}
