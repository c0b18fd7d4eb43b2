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
	"math"

	"github.com/mlnoga/stereoaw/internal/img"
	"github.com/mlnoga/stereoaw/internal/match"
)

// Fills the occluded pixels of disp (value dMin-1) with the weighted median
// of the valid disparities of dispDense in the surrounding window, weighting
// samples by spatial distance and by color similarity in the guidance image.
// Windows without any valid sample keep the dispDense value. Non-occluded
// pixels are left untouched
func FillOcclusion(dispDense, guidance, disp *img.Image, dMin, dMax int, p *ParamOcclusion) {
	radius:=p.MedianRadius
	occ:=float32(dMin-1)
	lo, hi:=float32(dMin), float32(dMax)
	nd:=dMax-dMin+1

	// tabulated kernels, like the aggregator's
	distC:=match.ColorWeights(guidance.C, p.SigmaColor)
	dim:=2*radius+1
	distS:=make([]float32, dim*dim)
	i:=0
	twoSigmaSq:=2*p.SigmaSpace*p.SigmaSpace
	for dy:=-radius; dy<=radius; dy++ {
		for dx:=-radius; dx<=radius; dx++ {
			distS[i]=float32(math.Exp(float64(-float32(dx*dx+dy*dy)/twoSigmaSq)))
			i++
		}
	}

	w, h:=disp.W, disp.H
	bins:=make([]float32, nd)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			if disp.At(x, y, 0)!=occ { continue }

			for b:=range bins {
				bins[b]=0
			}
			total:=float32(0)
			for dy:=-radius; dy<=radius; dy++ {
				yy:=y+dy
				if yy<0 || yy>=h { continue }
				for dx:=-radius; dx<=radius; dx++ {
					xx:=x+dx
					if xx<0 || xx>=w { continue }
					v:=dispDense.At(xx, yy, 0)
					if !(v>=lo && v<=hi) { continue }

					d:=float32(0)
					for c:=0; c<guidance.C; c++ {
						diff:=guidance.At(xx, yy, c)-guidance.At(x, y, c)
						if diff<0 { diff=-diff }
						d+=diff
					}
					weight:=distC[int(d)]*distS[(dy+radius)*dim+(dx+radius)]
					bins[int(v)-dMin]+=weight
					total+=weight
				}
			}
			if total==0 {  // no valid sample, keep the monotone fill value
				disp.Set(x, y, 0, dispDense.At(x, y, 0))
				continue
			}

			// smallest disparity whose cumulative weight reaches half the total
			cum:=float32(0)
			median:=dMax
			for b:=0; b<nd; b++ {
				cum+=bins[b]
				if cum>=0.5*total {
					median=dMin+b
					break
				}
			}
			disp.Set(x, y, 0, float32(median))
		}
	}
}
