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


package occ

import (
	"fmt"
)

// Parameters for occlusion detection and weighted-median densification
type ParamOcclusion struct {
	TolDisp      float32 `json:"tolDisp"`       // tolerance for left-right disparity difference
	MedianRadius int     `json:"medianRadius"`  // radius of the weighted median filter
	SigmaColor   float32 `json:"sigmaColor"`    // color range sigma of the median weights
	SigmaSpace   float32 `json:"sigmaSpace"`    // spatial sigma of the median weights
}

func NewParamOcclusion() *ParamOcclusion {
	return &ParamOcclusion{
		TolDisp:      0,
		MedianRadius: 9,
		SigmaColor:   25.5,
		SigmaSpace:   9,
	}
}

// Checks the parameter domain, naming the offending field
func (p *ParamOcclusion) Valid() error {
	if p.TolDisp<0 { return fmt.Errorf("tolDisp must be non-negative, have %g", p.TolDisp) }
	if p.MedianRadius<0 { return fmt.Errorf("medianRadius must be non-negative, have %d", p.MedianRadius) }
	if p.SigmaColor<=0 { return fmt.Errorf("sigmaColor must be positive, have %g", p.SigmaColor) }
	if p.SigmaSpace<=0 { return fmt.Errorf("sigmaSpace must be positive, have %g", p.SigmaSpace) }
	return nil
}

// Camera motion direction, selecting the monotone fill variant used as the
// densification baseline
type Sense int

const (
	SenseRight Sense = 0  // camera moves right, gaps take the larger disparity
	SenseLeft  Sense = 1  // camera moves left, gaps take the smaller disparity
)

// Parses the numeric sense flag value
func ParseSense(v int) (Sense, error) {
	if v!=0 && v!=1 {
		return SenseRight, fmt.Errorf("invalid camera motion direction %d (must be 0 or 1)", v)
	}
	return Sense(v), nil
}
