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

// Float TIFF to 8-bit color PNG conversion.
//
// The value-to-gray function is affine: gray=a*value+b. Values outside
// [vMin,vMax] and NaN are assumed invalid and rendered in cyan. The -jet
// flag renders valid values on a blue-to-red false color ramp instead.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mlnoga/stereoaw/internal/img"
)

var grayMin = flag.Int("min", 255, "gray level for vMin")
var grayMax = flag.Int("max", 0,   "gray level for vMax")
var jet     = flag.Bool("jet", false, "render valid values with a blue-to-red false color ramp")

func main() {
	flag.Usage=func() {
		fmt.Fprintf(os.Stderr, `Usage: %s [options] in.tif vMin vMax out.png
Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	args:=flag.Args()
	if len(args)!=4 {
		flag.Usage()
		os.Exit(1)
	}

	vMin, err1:=strconv.ParseFloat(args[1], 32)
	vMax, err2:=strconv.ParseFloat(args[2], 32)
	if err1!=nil || err2!=nil {
		fmt.Fprintf(os.Stderr, "Error reading vMin or vMax\n")
		os.Exit(1)
	}
	if vMax<vMin {
		fmt.Fprintf(os.Stderr, "Error: vMax(%g) < vMin(%g)\n", vMax, vMin)
		os.Exit(1)
	}

	in, err:=img.ReadTIFF32FromFile(args[0])
	if err!=nil {
		fmt.Fprintf(os.Stderr, "Unable to read file %s: %s\n", args[0], err.Error())
		os.Exit(1)
	}

	lo, hi:=float32(vMin), float32(vMax)
	a:=float32(*grayMax-*grayMin)/(hi-lo)
	b:=(float32(*grayMin)*hi-float32(*grayMax)*lo)/(hi-lo)

	out:=image.NewRGBA(image.Rect(0, 0, in.W, in.H))
	i:=0
	for y:=0; y<in.H; y++ {
		for x:=0; x<in.W; x++ {
			v:=in.Data[i]
			i++
			if !(v>=lo && v<=hi) {  // NaN or out of range renders as cyan
				out.SetRGBA(x, y, color.RGBA{0, 255, 255, 255})
				continue
			}
			if *jet {
				t:=float64((v-lo)/(hi-lo))
				r, g, bb:=colorful.Hsv(240*(1-t), 1, 1).RGB255()
				out.SetRGBA(x, y, color.RGBA{r, g, bb, 255})
				continue
			}
			gray:=a*v+b+0.5
			if gray<0 { gray=0 }
			if gray>255 { gray=255 }
			g:=uint8(gray)
			out.SetRGBA(x, y, color.RGBA{g, g, g, 255})
		}
	}

	file, err:=os.Create(args[3])
	if err!=nil {
		fmt.Fprintf(os.Stderr, "Unable to write file %s: %s\n", args[3], err.Error())
		os.Exit(1)
	}
	defer file.Close()
	writer:=bufio.NewWriter(file)
	defer writer.Flush()
	if err:=png.Encode(writer, out); err!=nil {
		fmt.Fprintf(os.Stderr, "Unable to write file %s: %s\n", args[3], err.Error())
		os.Exit(1)
	}
}
