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

// Fills invalid pixels (value < vMin) in each row with the maximum of the
// nearest valid values to the left and right. Rows without any valid pixel
// are set to vMin. In-place, single-channel
func (im *Image) FillMaxX(vMin float32) {
	im.fillX(vMin, maxf)
}

// Like FillMaxX, but fills gaps with the minimum of the bounding values
func (im *Image) FillMinX(vMin float32) {
	im.fillX(vMin, minf)
}

func maxf(a, b float32) float32 { if a>b { return a }; return b }
func minf(a, b float32) float32 { if a<b { return a }; return b }

// Row-wise monotone extension of valid values onto invalid pixels.
// A gap bounded by valid values on both sides is filled with cmp of the two;
// gaps touching the row border take the single bounding value
func (im *Image) fillX(vMin float32, cmp func(float32, float32) float32) {
	w:=im.W
	for y:=0; y<im.H; y++ {
		row:=im.Data[y*w : (y+1)*w]
		x:=0
		for x<w {
			if row[x]>=vMin { x++; continue }

			// invalid run [start,end)
			start:=x
			for x<w && row[x]<vMin { x++ }
			end:=x

			var v float32
			switch {
			case start>0 && end<w:
				v=cmp(row[start-1], row[end])
			case start>0:
				v=row[start-1]
			case end<w:
				v=row[end]
			default:
				v=vMin    // whole row invalid
			}
			for i:=start; i<end; i++ {
				row[i]=v
			}
		}
	}
}
