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

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mlnoga/stereoaw/internal/img"
	"github.com/mlnoga/stereoaw/internal/match"
	"github.com/mlnoga/stereoaw/internal/occ"
	"github.com/mlnoga/stereoaw/internal/pipeline"
	"github.com/mlnoga/stereoaw/internal/rest"
)

const version = "0.1.0"

var gcol    = flag.Float64("gcol", 12,   "gamma for color difference in support weights")
var gpos    = flag.Float64("gpos", 17.5, "gamma for spatial distance in support weights")
var radius  = flag.Int    ("R",    17,   "radius of patch window")
var alpha   = flag.Float64("A",    0.9,  "value of alpha for matching cost")
var tauCol  = flag.Float64("t",    30,   "threshold for color difference in matching cost")
var tauGrad = flag.Float64("g",    2,    "threshold for gradient difference in matching cost")
var tolDisp = flag.Float64("o",    0,    "tolerance for left-right disparity difference")
var sense   = flag.Int    ("O",    0,    "camera sense: 0=moves right, 1=moves left")
var medRad  = flag.Int    ("r",    9,    "radius of the weighted median filter")
var sigmaC  = flag.Float64("c",    25.5, "value of sigma_color for the weighted median")
var sigmaS  = flag.Float64("s",    9,    "value of sigma_space for the weighted median")
var comb    = flag.String ("comb", "mult", "weights combination: left, max, min, mult or plus")
var threads = flag.Int    ("threads", 0, "number of parallel row workers, 0=autodetect")
var addr    = flag.String ("addr", ":8080", "listen address for the serve command")
var chroot  = flag.String ("chroot", "",    "serve: change filesystem root to this directory (requires root)")
var setuid  = flag.Int    ("setuid", -1,    "serve: drop privileges to this user id, -1=keep")

func main() {
	logWriter:=os.Stdout
	flag.Usage=func() {
		fmt.Fprintf(os.Stderr, `Disparity map estimation with adaptive support weights.

Usage: %s [-flag value] im1.png im2.png dMin dMax [outPrefix]
       %s serve

Computes the disparity map from im1 to im2 over the disparity interval
[dMin,dMax], detects occlusions by left-right consistency and densifies
them with a weighted median filter. Writes <outPrefix>.tif,
<outPrefix>_occ.tif and <outPrefix>_pp.tif (default prefix disparity).

Flags:
`, os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err:=flag.CommandLine.Parse(os.Args[1:]); err!=nil {
		os.Exit(1)
	}

	args:=flag.Args()
	if len(args)==1 && args[0]=="serve" {
		rest.MakeSandbox(*chroot, *setuid)
		if err:=rest.Serve(*addr); err!=nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
			os.Exit(1)
		}
		return
	}
	if len(args)==1 && args[0]=="version" {
		fmt.Fprintf(logWriter, "Version %s\n", version)
		return
	}
	if len(args)<4 || len(args)>5 {
		flag.Usage()
		os.Exit(1)
	}

	dMin, err:=strconv.Atoi(args[2])
	if err!=nil { fatalf("Error reading dMin: %s\n", err.Error()) }
	dMax, err:=strconv.Atoi(args[3])
	if err!=nil { fatalf("Error reading dMax: %s\n", err.Error()) }
	if dMin>dMax { fatalf("Wrong disparity range! (dMin > dMax)\n") }

	outPrefix:="disparity"
	if len(args)==5 { outPrefix=args[4] }

	combOp, err:=match.ParseComb(*comb)
	if err!=nil { fatalf("Error: %s\n", err.Error()) }
	senseDir, err:=occ.ParseSense(*sense)
	if err!=nil { fatalf("Error: %s\n", err.Error()) }

	cfg:=pipeline.NewConfig(dMin, dMax)
	cfg.Disparity.GammaCol=float32(*gcol)
	cfg.Disparity.GammaPos=float32(*gpos)
	cfg.Disparity.Radius=*radius
	cfg.Disparity.Alpha=float32(*alpha)
	cfg.Disparity.TauCol=float32(*tauCol)
	cfg.Disparity.TauGrad=float32(*tauGrad)
	cfg.Occlusion.TolDisp=float32(*tolDisp)
	cfg.Occlusion.MedianRadius=*medRad
	cfg.Occlusion.SigmaColor=float32(*sigmaC)
	cfg.Occlusion.SigmaSpace=float32(*sigmaS)
	cfg.Comb=combOp
	cfg.Sense=senseDir
	cfg.Threads=*threads

	start:=time.Now()
	im1, err:=img.LoadColor(args[0])
	if err!=nil { fatalf("Error: %s\n", err.Error()) }
	im2, err:=img.LoadColor(args[1])
	if err!=nil { fatalf("Error: %s\n", err.Error()) }

	res, err:=pipeline.Run(im1, im2, cfg, logWriter)
	if err!=nil { fatalf("Error: %s\n", err.Error()) }

	if err:=res.Save(outPrefix, dMin, dMax, logWriter); err!=nil {
		fatalf("Error: %s\n", err.Error())
	}
	fmt.Fprintf(logWriter, "\nDone after %v\n", time.Since(start))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
