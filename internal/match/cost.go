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
	"github.com/mlnoga/stereoaw/internal/img"
)

// Computes the raw matching cost layer at disparity d: a blend of the
// truncated mean L1 color distance and the truncated absolute difference of
// horizontal derivatives. Pixels whose match falls outside the target image
// take both thresholds, the cost volume's upper bound
func costLayer(im1, im2, grad1, grad2 *img.Image, d int, p *ParamDisparity) *img.Image {
	w, h:=im1.W, im1.H
	nc:=float32(im1.C)
	cost:=img.New(w, h, 1)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			costColor:=p.TauCol
			costGradient:=p.TauGrad
			if 0<=x+d && x+d<w {
				costColor=0
				for c:=0; c<im1.C; c++ {
					diff:=im1.At(x, y, c)-im2.At(x+d, y, c)
					if diff<0 { diff=-diff }
					costColor+=diff
				}
				costColor*=1/nc
				if costColor>p.TauCol { costColor=p.TauCol }

				costGradient=grad1.At(x, y, 0)-grad2.At(x+d, y, 0)
				if costGradient<0 { costGradient=-costGradient }
				if costGradient>p.TauGrad { costGradient=p.TauGrad }
			}
			cost.Set(x, y, 0, (1-p.Alpha)*costColor + p.Alpha*costGradient)
		}
	}
	return cost
}

// Builds the cost volume: one layer per disparity in [dispMin,dispMax],
// layer k holding the costs for disparity dispMin+k
func CostVolume(im1, im2, grad1, grad2 *img.Image, dispMin, dispMax int, p *ParamDisparity) []*img.Image {
	cost:=make([]*img.Image, dispMax-dispMin+1)
	for d:=dispMin; d<=dispMax; d++ {
		cost[d-dispMin]=costLayer(im1, im2, grad1, grad2, d, p)
	}
	return cost
}
