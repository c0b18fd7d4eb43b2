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
)

// Left/right consistency check. Marks pixels of disp1 whose backward
// disparity disagrees by more than tolDisp with the occlusion value occ,
// in place. disp2 holds negated disparities over the target grid, as
// produced by the aggregator. Running the filter twice is a no-op
func DetectOcclusion(disp1, disp2 *img.Image, occ float32, tolDisp float32) {
	w:=disp1.W
	for y:=0; y<disp1.H; y++ {
		for x:=0; x<w; x++ {
			d:=disp1.At(x, y, 0)
			if d==occ { continue }
			x2:=x+int(math.Round(float64(d)))
			if x2<0 || x2>=w {
				disp1.Set(x, y, 0, occ)
				continue
			}
			d2:=-disp2.At(x2, y, 0)
			diff:=d-d2
			if diff<0 { diff=-diff }
			if disp2.At(x2, y, 0)==occ || diff>tolDisp {
				disp1.Set(x, y, 0, occ)
			}
		}
	}
}
