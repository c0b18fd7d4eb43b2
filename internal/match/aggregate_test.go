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


package match

import (
	"io"
	"testing"

	"github.com/mlnoga/stereoaw/internal/img"
)

// Straightforward reference aggregation without the ring of target windows:
// every support window is rebuilt per candidate, in the same table and
// summation order as the production code, so results match bit for bit
func referenceAW(im1, im2 *img.Image, dispMin, dispMax int, p *ParamDisparity, comb Comb) (d1, d2 *img.Image) {
	width, height:=im1.W, im1.H
	r:=p.Radius
	dim:=2*r+1
	distC:=ColorWeights(im1.C, p.GammaCol)
	distP:=SpatialWeights(r, p.GammaPos, 1)
	grad1:=im1.Gray().GradX()
	grad2:=im2.Gray().GradX()
	cost:=CostVolume(im1, im2, grad1, grad2, dispMin, dispMax, p)
	combine:=comb.fn()

	d1, d2=img.New(width, height, 1), img.New(width, height, 1)
	sentinel:=float32(dispMin-1)
	d1.Fill(sentinel)
	d2.Fill(sentinel)
	e1:=make([]float32, width*height)
	e2:=make([]float32, width*height)
	for i:=range e1 {
		e1[i], e2[i]=float32(1e30), float32(1e30)
	}

	w1:=make([]float32, dim*dim)
	w2:=make([]float32, dim*dim)
	for yp:=0; yp<height; yp++ {
		for xp:=0; xp<width; xp++ {
			support(im1, xp, yp, r, distC, distP, w1)
			for d:=dispMin; d<=dispMax; d++ {
				if xp+d<0 || xp+d>=width { continue }
				if comb!=CombLeft {
					support(im2, xp+d, yp, r, distC, distP, w2)
				}
				num, den:=float32(0), float32(0)
				for y:=-r; y<=r; y++ {
					if yp+y<0 || yp+y>=height { continue }
					for x:=-r; x<=r; x++ {
						if xp+x<0 || xp+x>=width || xp+x+d<0 || xp+x+d>=width { continue }
						var cw float32
						if comb==CombLeft {
							cw=w1[(y+r)*dim+(x+r)]
						} else {
							cw=combine(w1[(y+r)*dim+(x+r)], w2[(y+r)*dim+(x+r)])
						}
						num+=cw*cost[d-dispMin].At(xp+x, yp+y, 0)
						den+=cw
					}
				}
				if den==0 { continue }
				e:=num/den
				if e<e1[yp*width+xp] {
					e1[yp*width+xp]=e
					d1.Set(xp, yp, 0, float32(d))
				}
				if e<e2[yp*width+xp+d] {
					e2[yp*width+xp+d]=e
					d2.Set(xp+d, yp, 0, float32(-d))
				}
			}
		}
	}
	return d1, d2
}

func compareMaps(t *testing.T, name string, got, want *img.Image) {
	t.Helper()
	for y:=0; y<want.H; y++ {
		for x:=0; x<want.W; x++ {
			if got.At(x, y, 0)!=want.At(x, y, 0) {
				t.Errorf("%s(%d,%d)=%g; want %g", name, x, y, got.At(x, y, 0), want.At(x, y, 0))
			}
		}
	}
}

func TestAggregateMatchesReference(t *testing.T) {
	im1, im2:=randomPair(10, 6, 17)
	dispMin, dispMax:=-3, 2
	for _, comb:=range []Comb{CombLeft, CombMax, CombMin, CombMult, CombPlus} {
		for _, radius:=range []int{0, 1, 2} {
			p:=NewParamDisparity()
			p.Radius=radius
			d1, d2, err:=DisparityAW(im1, im2, dispMin, dispMax, p, comb, 3, io.Discard)
			if err!=nil { t.Fatalf("comb=%s r=%d: %s", comb, radius, err.Error()) }
			want1, want2:=referenceAW(im1, im2, dispMin, dispMax, p, comb)
			compareMaps(t, comb.String()+" disp1", d1, want1)
			compareMaps(t, comb.String()+" disp2", d2, want2)
		}
	}
}

// stereo pair shifted by a constant disparity of -5. The underlying signal
// extends past the right border so gradients stay consistent
func shiftedPair(w, h, shift int) (im1, im2 *img.Image) {
	f:=func(x, y int) float32 {
		return float32((x*37+y*17)%256)
	}
	im1, im2=img.New(w, h, 3), img.New(w, h, 3)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			for c:=0; c<3; c++ {
				im1.Set(x, y, c, f(x, y))
				im2.Set(x, y, c, f(x+shift, y))
			}
		}
	}
	return im1, im2
}

func TestShiftedPair(t *testing.T) {
	im1, im2:=shiftedPair(16, 16, 5)  // im2(x)=im1(x+5), true disparity -5
	p:=NewParamDisparity()
	p.Radius=1
	d1, d2, err:=DisparityAW(im1, im2, -5, 0, p, CombMult, 4, io.Discard)
	if err!=nil { t.Fatal(err) }

	for y:=0; y<im1.H; y++ {
		for x:=0; x<im1.W; x++ {
			got:=d1.At(x, y, 0)
			if got < -6 || got>0 {
				t.Errorf("disp1(%d,%d)=%g outside [dMin-1,dMax]", x, y, got)
			}
			if x>=5 && got!=-5 {
				t.Errorf("disp1(%d,%d)=%g; want -5", x, y, got)
			}
		}
	}
	// target view mirrors the match with negated sign
	for y:=0; y<im1.H; y++ {
		for x:=0; x+5<im1.W; x++ {
			if got:=d2.At(x, y, 0); got!=5 {
				t.Errorf("disp2(%d,%d)=%g; want 5", x, y, got)
			}
		}
	}
}

func TestUniformImagesTieToSmallestDisparity(t *testing.T) {
	im1:=img.New(8, 4, 3)
	im1.Fill(128)
	im2:=im1.Clone()
	p:=NewParamDisparity()
	p.Radius=1
	d1, _, err:=DisparityAW(im1, im2, -3, 0, p, CombMult, 2, io.Discard)
	if err!=nil { t.Fatal(err) }

	for y:=0; y<im1.H; y++ {
		for x:=0; x<im1.W; x++ {
			want:=float32(-3)
			if x<3 { want=float32(-x) }  // smallest in-range candidate wins ties
			if got:=d1.At(x, y, 0); got!=want {
				t.Errorf("disp1(%d,%d)=%g; want %g", x, y, got, want)
			}
		}
	}
}

func TestCheckerboardIdentity(t *testing.T) {
	im1:=img.New(8, 4, 3)
	for y:=0; y<4; y++ {
		for x:=0; x<8; x++ {
			v:=float32(((x+y)%2)*255)
			for c:=0; c<3; c++ {
				im1.Set(x, y, c, v)
			}
		}
	}
	p:=NewParamDisparity()
	p.Radius=2
	d1, d2, err:=DisparityAW(im1, im1.Clone(), 0, 0, p, CombMult, 2, io.Discard)
	if err!=nil { t.Fatal(err) }
	for i, v:=range d1.Data {
		if v!=0 { t.Errorf("disp1[%d]=%g; want 0", i, v) }
	}
	for i, v:=range d2.Data {
		if v!=0 { t.Errorf("disp2[%d]=%g; want 0", i, v) }
	}
}

func TestSingleDisparity(t *testing.T) {
	im1, im2:=randomPair(6, 3, 23)
	p:=NewParamDisparity()
	p.Radius=1
	d1, d2, err:=DisparityAW(im1, im2, -2, -2, p, CombMult, 1, io.Discard)
	if err!=nil { t.Fatal(err) }

	for y:=0; y<im1.H; y++ {
		for x:=0; x<im1.W; x++ {
			want1:=float32(-3)  // sentinel
			if x-2>=0 { want1=-2 }
			if got:=d1.At(x, y, 0); got!=want1 {
				t.Errorf("disp1(%d,%d)=%g; want %g", x, y, got, want1)
			}
			want2:=float32(-3)
			if x+2<im1.W { want2=2 }
			if got:=d2.At(x, y, 0); got!=want2 {
				t.Errorf("disp2(%d,%d)=%g; want %g", x, y, got, want2)
			}
		}
	}
}

func TestDisparityAWValidation(t *testing.T) {
	im1, im2:=randomPair(6, 3, 29)
	p:=NewParamDisparity()
	if _, _, err:=DisparityAW(im1, im2, 2, -2, p, CombMult, 1, io.Discard); err==nil {
		t.Errorf("expected error for dMin > dMax")
	}
	small:=img.New(4, 3, 3)
	if _, _, err:=DisparityAW(im1, small, -1, 1, p, CombMult, 1, io.Discard); err==nil {
		t.Errorf("expected error for size mismatch")
	}
	p.GammaCol=0
	if _, _, err:=DisparityAW(im1, im2, -1, 1, p, CombMult, 1, io.Discard); err==nil {
		t.Errorf("expected error for gammaCol=0")
	}
}
