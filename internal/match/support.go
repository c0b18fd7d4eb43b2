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

// Fills w, a (2r+1)^2 window, with bilateral support weights around center
// (xp,yp) of im. Entries outside the image stay zero; the aggregator's
// den==0 guard discards their contribution. The L1 color distance is
// truncated to an integer index into distC
func support(im *img.Image, xp, yp, r int, distC, distP, w []float32) {
	for i:=range w {
		w[i]=0
	}
	dim:=2*r+1
	for y:=-r; y<=r; y++ {
		if yp+y<0 || yp+y>=im.H { continue }
		for x:=-r; x<=r; x++ {
			if xp+x<0 || xp+x>=im.W { continue }
			d:=float32(0)
			for c:=0; c<im.C; c++ {
				diff:=im.At(xp+x, yp+y, c)-im.At(xp, yp, c)
				if diff<0 { diff=-diff }
				d+=diff
			}
			w[(y+r)*dim+(x+r)]=distC[int(d)]*distP[(y+r)*dim+(x+r)]
		}
	}
}
