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
	"fmt"
	"image"
	_ "image/png"
	"os"

	_ "golang.org/x/image/tiff"
)

// Loads a color image from a PNG or TIFF file into a 3-channel float image
// with values in [0,255]. 16-bit inputs keep their extra precision as
// fractional values
func LoadColor(fileName string) (*Image, error) {
	f, err:=os.Open(fileName)
	if err!=nil { return nil, err }
	defer f.Close()

	src, _, err:=image.Decode(f)
	if err!=nil { return nil, fmt.Errorf("decoding %s: %s", fileName, err.Error()) }

	bounds:=src.Bounds()
	w, h:=bounds.Dx(), bounds.Dy()
	im:=New(w, h, 3)
	i:=0
	for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
		for x:=bounds.Min.X; x<bounds.Max.X; x++ {
			r, g, b, _:=src.At(x, y).RGBA()
			// RGBA yields 16-bit values; 257 maps 8-bit data back exactly
			im.Data[i  ]=float32(r)/257.0
			im.Data[i+1]=float32(g)/257.0
			im.Data[i+2]=float32(b)/257.0
			i+=3
		}
	}
	return im, nil
}
