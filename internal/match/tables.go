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
	"math"
)

// Tabulated color similarity weights for the support window. Indexed by the
// truncated L1 color distance over channels of 8-bit data, so the table has
// channels*255+1 entries. distC[0]=1 and consecutive entries decay by
// exp(-1/(channels*gamma))
func ColorWeights(channels int, gamma float32) []float32 {
	distC:=make([]float32, channels*255+1)
	e2:=float32(math.Exp(float64(-1/(float32(channels)*gamma))))
	w:=float32(1)
	for i:=range distC {
		distC[i]=w
		w*=e2
	}
	return distC
}

// Tabulated spatial proximity weights for a (2r+1)^2 support window.
// Entry (dy+r)*(2r+1)+(dx+r) holds exp(-scale*sqrt(dx^2+dy^2)/gamma).
// The aggregator uses scale 1
func SpatialWeights(r int, gamma, scale float32) []float32 {
	dim:=2*r+1
	distP:=make([]float32, dim*dim)
	i:=0
	for dy:=-r; dy<=r; dy++ {
		for dx:=-r; dx<=r; dx++ {
			rho:=float32(math.Sqrt(float64(dx*dx+dy*dy)))
			distP[i]=float32(math.Exp(float64(-scale*rho/gamma)))
			i++
		}
	}
	return distP
}
