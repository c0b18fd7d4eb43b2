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

// Parameters for the adaptive support weights disparity computation
type ParamDisparity struct {
	TauCol   float32 `json:"tauCol"`    // threshold for color difference in matching cost
	TauGrad  float32 `json:"tauGrad"`   // threshold for gradient difference in matching cost
	Alpha    float32 `json:"alpha"`     // blend between color and gradient cost
	GammaCol float32 `json:"gammaCol"`  // gamma for color similarity weights
	GammaPos float32 `json:"gammaPos"`  // gamma for spatial distance weights
	Radius   int     `json:"radius"`    // support window radius
}

// Default parameters from the adaptive weights publication
func NewParamDisparity() *ParamDisparity {
	return &ParamDisparity{
		TauCol:   30,
		TauGrad:  2,
		Alpha:    0.9,
		GammaCol: 12,
		GammaPos: 17.5,
		Radius:   17,
	}
}

// Checks the parameter domain, naming the offending field
func (p *ParamDisparity) Valid() error {
	if p.TauCol<0 { return fmt.Errorf("tauCol must be non-negative, have %g", p.TauCol) }
	if p.TauGrad<0 { return fmt.Errorf("tauGrad must be non-negative, have %g", p.TauGrad) }
	if p.Alpha<0 || p.Alpha>1 { return fmt.Errorf("alpha must be in [0,1], have %g", p.Alpha) }
	if p.GammaCol<=0 { return fmt.Errorf("gammaCol must be positive, have %g", p.GammaCol) }
	if p.GammaPos<=0 { return fmt.Errorf("gammaPos must be positive, have %g", p.GammaPos) }
	if p.Radius<0 { return fmt.Errorf("radius must be non-negative, have %d", p.Radius) }
	return nil
}
