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

// Visualizes the bilateral support window around one pixel as a gray PNG.
// With a second image and a disparity, the window is combined with the
// target window under the chosen weight combination.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strconv"

	"github.com/mlnoga/stereoaw/internal/img"
	"github.com/mlnoga/stereoaw/internal/match"
)

var radius = flag.Int    ("R",    17,   "radius of the window patch")
var gcol   = flag.Float64("gcol", 12,   "gamma for color similarity")
var gpos   = flag.Float64("gpos", 17.5, "gamma for spatial distance")
var comb   = flag.String ("c",    "",   "weights combination: max, min, mult or plus (requires im2)")

// Relative weight between pixels (x,y) and (x+dx,y+dy). The visualizer
// historically doubles the spatial exponent of the aggregator kernel
func weight(im *img.Image, x, y, dx, dy int, gammaC, gammaP float32) float32 {
	d:=float32(0)
	for c:=0; c<im.C; c++ {
		diff:=im.At(x+dx, y+dy, c)-im.At(x, y, c)
		if diff<0 { diff=-diff }
		d+=diff
	}
	rho:=float32(math.Sqrt(float64(dx*dx+dy*dy)))
	return float32(math.Exp(float64(-d/(float32(im.C)*gammaC)))) *
		float32(math.Exp(float64(-2*rho/gammaP)))
}

// Computes the (combined) window of weights around pixel (xp,yp) of im1,
// and around (xq,yp) of im2 if a combination is requested
func showWeights(im1, im2 *img.Image, xp, yp, xq int, comb match.Comb, useComb bool,
	r int, gammaC, gammaP float32) *img.Image {
	w:=img.New(2*r+1, 2*r+1, 1)
	for y:=-r; y<=r; y++ {
		if yp+y<0 || yp+y>=im1.H { continue }
		if useComb && yp+y>=im2.H { continue }
		for x:=-r; x<=r; x++ {
			if xp+x<0 || xp+x>=im1.W { continue }
			if useComb && (xq+x<0 || xq+x>=im2.W) { continue }
			v:=weight(im1, xp, yp, x, y, gammaC, gammaP)
			if useComb {
				v=comb.Combine(v, weight(im2, xq, yp, x, y, gammaC, gammaP))
			}
			w.Set(x+r, y+r, 0, v)
		}
	}
	return w
}

// Rescales weights so the center value maps to 255, clamped to [0,255]
func rescale(w *img.Image) {
	f:=255.0/w.At(w.W/2, w.H/2, 0)
	for i, v:=range w.Data {
		v*=f
		if v<0 { v=0 }
		if v>255 { v=255 }
		w.Data[i]=v
	}
}

func main() {
	flag.Usage=func() {
		fmt.Fprintf(os.Stderr, `Show support weights
Usage: %s [options] im1.png x y out.png [im2.png disp]
Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	args:=flag.Args()
	if len(args)!=4 && len(args)!=6 {
		flag.Usage()
		os.Exit(1)
	}

	im1, err:=img.LoadColor(args[0])
	if err!=nil { fatalf("Error: %s\n", err.Error()) }

	x, err1:=strconv.Atoi(args[1])
	y, err2:=strconv.Atoi(args[2])
	if err1!=nil || err2!=nil { fatalf("Error reading x or y\n") }
	if x<0 || x>=im1.W || y<0 || y>=im1.H {
		fatalf("Error: pixel (%d,%d) outside %s image\n", x, y, im1.DimensionsToString())
	}

	var im2 *img.Image
	disp:=0
	useComb:=false
	combOp:=match.CombMult
	if len(args)==6 {
		im2, err=img.LoadColor(args[4])
		if err!=nil { fatalf("Error: %s\n", err.Error()) }
		if disp, err=strconv.Atoi(args[5]); err!=nil { fatalf("Error reading disparity\n") }
		if *comb!="" {
			if combOp, err=match.ParseComb(*comb); err!=nil { fatalf("Error: %s\n", err.Error()) }
			useComb=true
		}
	}

	w:=showWeights(im1, im2, x, y, x+disp, combOp, useComb,
		*radius, float32(*gcol), float32(*gpos))
	rescale(w)

	out:=image.NewGray(image.Rect(0, 0, w.W, w.H))
	for yy:=0; yy<w.H; yy++ {
		for xx:=0; xx<w.W; xx++ {
			out.SetGray(xx, yy, color.Gray{uint8(w.At(xx, yy, 0)+0.5)})
		}
	}
	file, err:=os.Create(args[3])
	if err!=nil { fatalf("Unable to write file %s: %s\n", args[3], err.Error()) }
	defer file.Close()
	writer:=bufio.NewWriter(file)
	defer writer.Flush()
	if err:=png.Encode(writer, out); err!=nil {
		fatalf("Unable to write file %s: %s\n", args[3], err.Error())
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
