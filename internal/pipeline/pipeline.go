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


package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"

	"github.com/mlnoga/stereoaw/internal/img"
	"github.com/mlnoga/stereoaw/internal/match"
	"github.com/mlnoga/stereoaw/internal/occ"
	"github.com/mlnoga/stereoaw/internal/stats"
)

// Settings for a full disparity estimation run
type Config struct {
	DispMin   int                   `json:"dispMin"`
	DispMax   int                   `json:"dispMax"`
	Disparity *match.ParamDisparity `json:"disparity"`
	Occlusion *occ.ParamOcclusion   `json:"occlusion"`
	Comb      match.Comb            `json:"comb"`
	Sense     occ.Sense             `json:"sense"`
	Threads   int                   `json:"threads"`  // 0 selects the CPU's logical core count
}

func NewConfig(dispMin, dispMax int) *Config {
	return &Config{
		DispMin:   dispMin,
		DispMax:   dispMax,
		Disparity: match.NewParamDisparity(),
		Occlusion: occ.NewParamOcclusion(),
		Comb:      match.CombMult,
		Sense:     occ.SenseRight,
	}
}

// The three disparity maps produced by a run, over the reference grid
type Result struct {
	Disp    *img.Image  // winner-take-all disparities, sentinel dMin-1 where unmatched
	DispOcc *img.Image  // with occluded pixels reset to the sentinel
	DispPP  *img.Image  // densified
}

// Default worker count for the row-parallel aggregation
func DefaultThreads() int {
	if n:=cpuid.CPU.LogicalCores; n>0 { return n }
	return runtime.NumCPU()
}

// Runs the full pipeline: adaptive-weight matching in both directions,
// left/right occlusion detection, monotone fill and weighted-median
// densification. Progress and per-stage statistics go to logWriter
func Run(im1, im2 *img.Image, cfg *Config, logWriter io.Writer) (*Result, error) {
	if im1.W!=im2.W || im1.H!=im2.H {
		return nil, fmt.Errorf("images must have the same size, have %s and %s",
			im1.DimensionsToString(), im2.DimensionsToString())
	}
	if cfg.DispMin>cfg.DispMax {
		return nil, fmt.Errorf("invalid disparity range [%d,%d], dMin > dMax", cfg.DispMin, cfg.DispMax)
	}
	if err:=cfg.Disparity.Valid(); err!=nil { return nil, err }
	if err:=cfg.Occlusion.Valid(); err!=nil { return nil, err }

	threads:=cfg.Threads
	if threads<=0 { threads=DefaultThreads() }

	// the cost volume dominates the footprint; warn before thrashing
	nd:=cfg.DispMax-cfg.DispMin+1
	costMiBs:=uint64(im1.W)*uint64(im1.H)*uint64(nd)*4/1024/1024
	totalMiBs:=memory.TotalMemory()/1024/1024
	if totalMiBs>0 && costMiBs>totalMiBs*7/10 {
		fmt.Fprintf(logWriter, "Warning: cost volume of %d MiB exceeds 70%% of %d MiB physical memory\n",
			costMiBs, totalMiBs)
	}

	start:=time.Now()
	disp, disp2, err:=match.DisparityAW(im1, im2, cfg.DispMin, cfg.DispMax,
		cfg.Disparity, cfg.Comb, threads, logWriter)
	if err!=nil { return nil, err }
	lo, hi:=float32(cfg.DispMin), float32(cfg.DispMax)
	fmt.Fprintf(logWriter, "Disparity with %d threads in %v: %v\n",
		threads, time.Since(start), stats.NewSummary(disp.Data, lo, hi))

	fmt.Fprintf(logWriter, "Detect occlusions...\n")
	dispOcc:=disp.Clone()
	occ.DetectOcclusion(dispOcc, disp2, float32(cfg.DispMin-1), cfg.Occlusion.TolDisp)
	fmt.Fprintf(logWriter, "After left-right check: %v\n", stats.NewSummary(dispOcc.Data, lo, hi))

	fmt.Fprintf(logWriter, "Post-processing: fill occlusions\n")
	dispDense:=dispOcc.Clone()
	if cfg.Sense==occ.SenseRight {
		dispDense.FillMaxX(lo)
	} else {
		dispDense.FillMinX(lo)
	}

	fmt.Fprintf(logWriter, "Post-processing: smooth the disparity map\n")
	dispPP:=dispOcc.Clone()
	occ.FillOcclusion(dispDense, im1.MedianColor(1), dispPP, cfg.DispMin, cfg.DispMax, cfg.Occlusion)
	fmt.Fprintf(logWriter, "Densified: %v\n", stats.NewSummary(dispPP.Data, lo, hi))

	return &Result{Disp: disp, DispOcc: dispOcc, DispPP: dispPP}, nil
}

// Persists the three result maps as 32-bit float TIFF under the given prefix
func (res *Result) Save(prefix string, dMin, dMax int, logWriter io.Writer) error {
	outputs:=[]struct {
		name string
		im   *img.Image
	}{
		{prefix+".tif", res.Disp},
		{prefix+"_occ.tif", res.DispOcc},
		{prefix+"_pp.tif", res.DispPP},
	}
	for _, out:=range outputs {
		fmt.Fprintf(logWriter, "Writing %s pixel float TIFF to %s\n", out.im.DimensionsToString(), out.name)
		if err:=img.WriteDisparityToFile(out.name, out.im, dMin, dMax); err!=nil {
			return fmt.Errorf("writing %s: %s", out.name, err.Error())
		}
	}
	return nil
}
