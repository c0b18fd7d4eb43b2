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
	"testing"
)

// occluded pixels use sentinel -6 with valid range starting at vMin=-5
func fillTestImage() *Image {
	im:=New(8, 4, 1)
	rows:=[][]float32{
		{-6, -6, -3, -6, -6, -1, -6, -6},  // gaps at start, middle and end
		{-2, -2, -2, -2, -2, -2, -2, -2},  // fully valid
		{-6, -6, -6, -6, -6, -6, -6, -6},  // fully invalid
		{-4, -6, -6, -6, -6, -6, -6, -5},  // single wide gap
	}
	for y, row:=range rows {
		copy(im.Data[y*8:(y+1)*8], row)
	}
	return im
}

func TestFillMaxX(t *testing.T) {
	im:=fillTestImage()
	im.FillMaxX(-5)
	want:=[][]float32{
		{-3, -3, -3, -1, -1, -1, -1, -1},
		{-2, -2, -2, -2, -2, -2, -2, -2},
		{-5, -5, -5, -5, -5, -5, -5, -5},
		{-4, -4, -4, -4, -4, -4, -4, -5},
	}
	for y:=range want {
		for x:=range want[y] {
			if got:=im.At(x, y, 0); got!=want[y][x] {
				t.Errorf("fillMaxX(%d,%d)=%g; want %g", x, y, got, want[y][x])
			}
		}
	}
}

func TestFillMinX(t *testing.T) {
	im:=fillTestImage()
	im.FillMinX(-5)
	want:=[][]float32{
		{-3, -3, -3, -3, -3, -1, -1, -1},
		{-2, -2, -2, -2, -2, -2, -2, -2},
		{-5, -5, -5, -5, -5, -5, -5, -5},
		{-4, -5, -5, -5, -5, -5, -5, -5},
	}
	for y:=range want {
		for x:=range want[y] {
			if got:=im.At(x, y, 0); got!=want[y][x] {
				t.Errorf("fillMinX(%d,%d)=%g; want %g", x, y, got, want[y][x])
			}
		}
	}
}
