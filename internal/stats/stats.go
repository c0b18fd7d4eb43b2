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


package stats

import (
	"fmt"

	"github.com/mlnoga/stereoaw/internal/qsort"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary statistics over the valid pixels of a disparity map.
// A pixel is valid if its value lies in [lo,hi]; the occlusion sentinel
// and NaN fall outside by construction
type Summary struct {
	Valid  int
	Total  int
	Min    float32
	Max    float32
	Mean   float32
	StdDev float32
	Median float32
}

// Calculates summary statistics of data restricted to [lo,hi]
func NewSummary(data []float32, lo, hi float32) *Summary {
	s:=&Summary{Total: len(data)}

	valid:=make([]float64, 0, len(data))
	valid32:=make([]float32, 0, len(data))
	for _, v:=range data {
		if v>=lo && v<=hi {
			valid=append(valid, float64(v))
			valid32=append(valid32, v)
		}
	}
	s.Valid=len(valid)
	if s.Valid==0 { return s }

	mean, std:=stat.MeanStdDev(valid, nil)
	s.Min =float32(floats.Min(valid))
	s.Max =float32(floats.Max(valid))
	s.Mean=float32(mean)
	if s.Valid>1 { s.StdDev=float32(std) }
	s.Median=qsort.QSelectMedianFloat32(valid32)
	return s
}

func (s *Summary) String() string {
	if s.Valid==0 {
		return fmt.Sprintf("valid 0/%d", s.Total)
	}
	return fmt.Sprintf("valid %d/%d (%.1f%%) min %g max %g mean %.2f stddev %.2f median %g",
		s.Valid, s.Total, 100*float32(s.Valid)/float32(s.Total),
		s.Min, s.Max, s.Mean, s.StdDev, s.Median)
}
