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
	"io"
	"math"

	"github.com/mlnoga/stereoaw/internal/img"
)

// Computes disparity maps between both views with adaptive support weights.
// disp1 maps im1 to im2; disp2 covers the target grid and stores the negated
// reference disparity. Unmatched pixels keep the sentinel dispMin-1.
//
// Rows are processed in parallel, at most maxThreads at a time. All inputs
// are read-only during the sweep; each worker owns its row of disp1/E1 and,
// as rows never share a target cell, its row of disp2/E2 as well
func DisparityAW(im1, im2 *img.Image, dispMin, dispMax int, p *ParamDisparity,
	comb Comb, maxThreads int, logWriter io.Writer) (disp1, disp2 *img.Image, err error) {
	if im1.W!=im2.W || im1.H!=im2.H || im1.C!=im2.C {
		return nil, nil, fmt.Errorf("images must have the same size, have %s and %s",
			im1.DimensionsToString(), im2.DimensionsToString())
	}
	if dispMin>dispMax {
		return nil, nil, fmt.Errorf("invalid disparity range [%d,%d], dMin > dMax", dispMin, dispMax)
	}
	if err:=p.Valid(); err!=nil { return nil, nil, err }
	if maxThreads<1 { maxThreads=1 }

	width, height:=im1.W, im1.H
	r:=p.Radius
	nd:=dispMax-dispMin+1
	fmt.Fprintf(logWriter, "Range of disparities: %d disparities, combining weights with %s\n", nd, comb)

	distC:=ColorWeights(im1.C, p.GammaCol)
	distP:=SpatialWeights(r, p.GammaPos, 1)

	gradient1:=im1.Gray().GradX()
	gradient2:=im2.Gray().GradX()
	cost:=CostVolume(im1, im2, gradient1, gradient2, dispMin, dispMax, p)

	disp1, disp2=img.New(width, height, 1), img.New(width, height, 1)
	sentinel:=float32(dispMin-1)
	disp1.Fill(sentinel)
	disp2.Fill(sentinel)
	e1, e2:=img.New(width, height, 1), img.New(width, height, 1)
	inf:=float32(math.Inf(1))
	e1.Fill(inf)
	e2.Fill(inf)

	limiter:=make(chan bool, maxThreads)
	for yp:=0; yp<height; yp++ {
		limiter <- true
		go func(yp int) {
			defer func() { <-limiter }()
			aggregateRow(im1, im2, cost, distC, distP, dispMin, dispMax, r, comb,
				yp, disp1, disp2, e1, e2)
		}(yp)
	}
	for i:=0; i<cap(limiter); i++ {  // wait for goroutines to finish
		limiter <- true
	}
	return disp1, disp2, nil
}

// Winner-take-all sweep over one reference row. Target support windows are
// kept in a ring of nd slots indexed modulo nd: slot (c-dispMin)%nd holds the
// most recent window centered at target column c, and centers are visited in
// ascending order, so each is built exactly once per row and is still live
// when the candidates needing it are evaluated
func aggregateRow(im1, im2 *img.Image, cost []*img.Image, distC, distP []float32,
	dispMin, dispMax, r int, comb Comb,
	yp int, disp1, disp2, e1, e2 *img.Image) {
	width, height:=im1.W, im1.H
	nd:=dispMax-dispMin+1
	dim:=2*r+1
	combine:=comb.fn()

	weights1:=make([]float32, dim*dim)
	ringLen:=nd
	if comb==CombLeft { ringLen=1 }  // target windows unused
	ring:=make([][]float32, ringLen)
	for i:=range ring {
		ring[i]=make([]float32, dim*dim)
	}

	// target windows for all disparities of column 0 except dispMax
	if comb!=CombLeft {
		for d:=dispMin; d<dispMax; d++ {
			if 0<=d && d<width {
				support(im2, d, yp, r, distC, distP, ring[(d-dispMin)%nd])
			}
		}
	}

	for xp:=0; xp<width; xp++ {
		support(im1, xp, yp, r, distC, distP, weights1)
		if comb!=CombLeft && 0<=xp+dispMax && xp+dispMax<width {
			support(im2, xp+dispMax, yp, r, distC, distP, ring[(xp+dispMax-dispMin)%nd])
		}

		for d:=dispMin; d<=dispMax; d++ {
			if xp+d<0 || xp+d>=width { continue }
			dCost:=cost[d-dispMin]
			weights2:=ring[(xp+d-dispMin)%ringLen]

			num, den:=float32(0), float32(0)
			for y:=-r; y<=r; y++ {
				if yp+y<0 || yp+y>=height { continue }
				for x:=-r; x<=r; x++ {
					if xp+x<0 || xp+x>=width || xp+x+d<0 || xp+x+d>=width { continue }
					w1:=weights1[(y+r)*dim+(x+r)]
					var cw float32
					if comb==CombLeft {
						cw=w1
					} else {
						cw=combine(w1, weights2[(y+r)*dim+(x+r)])
					}
					num+=cw*dCost.At(xp+x, yp+y, 0)
					den+=cw
				}
			}
			if den==0 { continue }  // no usable support, not a candidate
			e:=num/den

			if e<e1.At(xp, yp, 0) {
				e1.Set(xp, yp, 0, e)
				disp1.Set(xp, yp, 0, float32(d))
			}
			if e<e2.At(xp+d, yp, 0) {
				e2.Set(xp+d, yp, 0, e)
				disp2.Set(xp+d, yp, 0, float32(-d))
			}
		}
	}
}
