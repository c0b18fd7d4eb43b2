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
	"math"
	"path/filepath"
	"testing"

	"github.com/valyala/fastrand"
)

func TestTIFF32RoundTrip(t *testing.T) {
	rng:=fastrand.RNG{}
	rng.Seed(42)

	im:=New(13, 7, 1)
	for i:=range im.Data {
		// random finite values, positive and negative, odd fractions included
		im.Data[i]=(float32(rng.Uint32n(100000))-50000)/977
	}
	im.Data[5]=float32(math.NaN())

	fileName:=filepath.Join(t.TempDir(), "roundtrip.tif")
	if err:=im.WriteTIFF32ToFile(fileName); err!=nil {
		t.Fatalf("writing: %s", err.Error())
	}
	back, err:=ReadTIFF32FromFile(fileName)
	if err!=nil { t.Fatalf("reading: %s", err.Error()) }

	if back.W!=im.W || back.H!=im.H || back.C!=1 {
		t.Fatalf("read %s; want %s", back.DimensionsToString(), im.DimensionsToString())
	}
	for i:=range im.Data {
		want, got:=im.Data[i], back.Data[i]
		if math.IsNaN(float64(want)) {
			if !math.IsNaN(float64(got)) { t.Errorf("pixel %d=%g; want NaN", i, got) }
			continue
		}
		if math.Float32bits(want)!=math.Float32bits(got) {
			t.Errorf("pixel %d=%b; want bit-identical %b", i, got, want)
		}
	}
}

func TestWriteTIFF32RejectsColor(t *testing.T) {
	im:=New(2, 2, 3)
	if err:=im.WriteTIFF32ToFile(filepath.Join(t.TempDir(), "c.tif")); err==nil {
		t.Errorf("expected error writing 3-channel image as float TIFF")
	}
}

func TestStageDisparity(t *testing.T) {
	im:=New(5, 1, 1)
	im.Data[0]=-3                       // in range
	im.Data[1]=-6                       // occlusion sentinel below dMin
	im.Data[2]=1                        // above dMax
	im.Data[3]=float32(math.NaN())
	im.Data[4]=0                        // dMax itself

	staged:=im.StageDisparity(-5, 0)
	if staged.Data[0]!=-3 || staged.Data[4]!=0 {
		t.Errorf("in-range values changed: %v", staged.Data)
	}
	for _, i:=range []int{1, 2, 3} {
		if !math.IsNaN(float64(staged.Data[i])) {
			t.Errorf("pixel %d=%g; want NaN", i, staged.Data[i])
		}
	}
	// original untouched
	if im.Data[1]!=-6 {
		t.Errorf("staging modified the input")
	}
}
