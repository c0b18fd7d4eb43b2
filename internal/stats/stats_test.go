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
	"math"
	"testing"
)

func TestSummary(t *testing.T) {
	epsilon:=1e-5
	occ:=float32(-6)
	nan:=float32(math.NaN())
	data:=[]float32{-5, -4, -3, occ, nan, -1, occ}

	s:=NewSummary(data, -5, 0)
	if s.Total!=7 || s.Valid!=4 {
		t.Fatalf("valid %d/%d; want 4/7", s.Valid, s.Total)
	}
	if s.Min!=-5 || s.Max!=-1 {
		t.Errorf("min %g max %g; want -5 -1", s.Min, s.Max)
	}
	if math.Abs(float64(s.Mean-(-3.25)))>epsilon {
		t.Errorf("mean %g; want -3.25", s.Mean)
	}
	if s.Median!=-3 {
		t.Errorf("median %g; want -3", s.Median)
	}
	if s.StdDev<=0 {
		t.Errorf("stddev %g; want positive", s.StdDev)
	}
}

func TestSummaryEmpty(t *testing.T) {
	s:=NewSummary([]float32{-6, -6}, -5, 0)
	if s.Valid!=0 {
		t.Fatalf("valid %d; want 0", s.Valid)
	}
	if s.String()!="valid 0/2" {
		t.Errorf("string %q", s.String())
	}
}
