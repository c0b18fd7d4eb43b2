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


package img

import (
	"github.com/mlnoga/stereoaw/internal/qsort"
)

// Per-channel median filter over a square (2*radius+1)^2 window.
// Windows are cropped at the image borders. Returns a new image;
// used to smooth the guidance image before weighted-median densification
func (im *Image) MedianColor(radius int) *Image {
	out:=New(im.W, im.H, im.C)
	dim:=2*radius+1
	gathered:=make([]float32, 0, dim*dim)
	for y:=0; y<im.H; y++ {
		for x:=0; x<im.W; x++ {
			for c:=0; c<im.C; c++ {
				gathered=gathered[:0]
				for dy:=-radius; dy<=radius; dy++ {
					yy:=y+dy
					if yy<0 || yy>=im.H { continue }
					for dx:=-radius; dx<=radius; dx++ {
						xx:=x+dx
						if xx<0 || xx>=im.W { continue }
						gathered=append(gathered, im.At(xx, yy, c))
					}
				}
				out.Set(x, y, c, qsort.QSelectMedianFloat32(gathered))
			}
		}
	}
	return out
}
