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
)

// A float32 image with interleaved channels, i.e. RGBRGB... for color data.
// Assigning or passing an Image by value shares the pixel buffer; large
// temporaries like gradients and cost layers stay cheap. Use Clone for a
// deep copy. Pixel (x,y,c) lives at Data[(y*W+x)*C+c].
type Image struct {
	W, H, C int          // width, height, channels
	Data    []float32    // the pixel data, length W*H*C
}

// Creates a zero-initialized image of the given dimensions
func New(w, h, c int) *Image {
	return &Image{
		W:    w,
		H:    h,
		C:    c,
		Data: make([]float32, w*h*c),
	}
}

// Creates an image wrapping existing pixel data. The data is not copied;
// it must have length w*h*c and stay alive while the image is in use
func NewFromData(data []float32, w, h, c int) *Image {
	if len(data)!=w*h*c {
		panic(fmt.Sprintf("img: wrapping %d pixels as %dx%dx%d", len(data), w, h, c))
	}
	return &Image{W: w, H: h, C: c, Data: data}
}

// Deep copy of the image. The pixel buffer is duplicated
func (im *Image) Clone() *Image {
	data:=make([]float32, len(im.Data))
	copy(data, im.Data)
	return &Image{W: im.W, H: im.H, C: im.C, Data: data}
}

// Returns pixel value at (x,y) in channel c
func (im *Image) At(x, y, c int) float32 {
	return im.Data[(y*im.W+x)*im.C+c]
}

// Sets pixel value at (x,y) in channel c
func (im *Image) Set(x, y, c int, v float32) {
	im.Data[(y*im.W+x)*im.C+c]=v
}

// Fills every pixel of every channel with the given value
func (im *Image) Fill(v float32) {
	for i:=range im.Data {
		im.Data[i]=v
	}
}

// Extracts a single channel as a new single-channel image.
// Returns an error if the channel does not exist
func (im *Image) Channel(c int) (*Image, error) {
	if c<0 || c>=im.C {
		return nil, fmt.Errorf("channel %d out of range for %d-channel image", c, im.C)
	}
	out:=New(im.W, im.H, 1)
	for i, o:=c, 0; o<len(out.Data); i, o=i+im.C, o+1 {
		out.Data[o]=im.Data[i]
	}
	return out, nil
}

// Rec. 709 luma weights used by the PNG loader convention, inputs in [0,255]
const (
	lumaR = 6968.0  / 32768.0
	lumaG = 23434.0 / 32768.0
	lumaB = 2366.0  / 32768.0
)

// Converts to gray level, preserving the [0,255] scale.
// Single-channel images are returned as a shared view
func (im *Image) Gray() *Image {
	if im.C==1 { return im }
	out:=New(im.W, im.H, 1)
	in:=im.Data
	for o:=range out.Data {
		out.Data[o]=lumaR*in[0] + lumaG*in[1] + lumaB*in[2]
		in=in[im.C:]
	}
	return out
}

// Horizontal derivative by central differences, one-sided at the left and
// right borders. Sign is preserved; callers take absolute differences
func (im *Image) GradX() *Image {
	out:=New(im.W, im.H, 1)
	w:=im.W
	for y:=0; y<im.H; y++ {
		row:=im.Data[y*w : (y+1)*w]
		o:=out.Data[y*w : (y+1)*w]
		o[0]=row[1]-row[0]
		for x:=1; x<w-1; x++ {
			o[x]=0.5*(row[x+1]-row[x-1])
		}
		o[w-1]=row[w-1]-row[w-2]
	}
	return out
}

func (im *Image) DimensionsToString() string {
	if im.C==1 { return fmt.Sprintf("%dx%d", im.W, im.H) }
	return fmt.Sprintf("%dx%dx%d", im.W, im.H, im.C)
}
