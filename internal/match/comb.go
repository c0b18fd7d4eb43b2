// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package match

import (
	"fmt"
)

// Operator combining the reference and target support weights during
// aggregation. Chosen once per run; the aggregator specializes on it
type Comb int

const (
	CombLeft Comb = iota  // reference weights only, target window unused
	CombMax               // max(w1,w2)
	CombMin               // min(w1,w2)
	CombMult              // w1*w2, the published combination
	CombPlus              // w1+w2
)

var combNames=map[string]Comb{
	"left": CombLeft,
	"max":  CombMax,
	"min":  CombMin,
	"mult": CombMult,
	"plus": CombPlus,
}

// Parses a weight combination name
func ParseComb(s string) (Comb, error) {
	if c, ok:=combNames[s]; ok { return c, nil }
	return CombMult, fmt.Errorf("unknown weights combination %q (should be left, max, min, mult or plus)", s)
}

func (c Comb) String() string {
	for name, comb:=range combNames {
		if comb==c { return name }
	}
	return fmt.Sprintf("comb(%d)", int(c))
}

// Applies the operator to a single pair of weights
func (c Comb) Combine(w1, w2 float32) float32 {
	return c.fn()(w1, w2)
}

// Returns the pointwise weight combination function. CombLeft callers skip
// the target window entirely instead of calling this
func (c Comb) fn() func(w1, w2 float32) float32 {
	switch c {
	case CombMax:
		return func(w1, w2 float32) float32 { if w1>w2 { return w1 }; return w2 }
	case CombMin:
		return func(w1, w2 float32) float32 { if w1<w2 { return w1 }; return w2 }
	case CombPlus:
		return func(w1, w2 float32) float32 { return w1+w2 }
	case CombMult:
		return func(w1, w2 float32) float32 { return w1*w2 }
	default:
		return func(w1, w2 float32) float32 { return w1 }
	}
}
