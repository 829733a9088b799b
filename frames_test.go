/*
 * frames_test.go, part of afprep.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package afprep

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestRotationToQuaternion(Te *testing.T) {
	id := BackboneRotation([3]float64{0, 1, 0}, [3]float64{0, 0, 0}, [3]float64{1, 0, 0})
	q := RotationToQuaternion(id)
	if !floats.EqualApprox(q[:], []float64{1, 0, 0, 0}, 1e-8) {
		Te.Errorf("identity frame gives quaternion %v", q)
	}
	//90 degrees around z.
	rz := BackboneRotation([3]float64{-1, 0, 0}, [3]float64{0, 0, 0}, [3]float64{0, 1, 0})
	q = RotationToQuaternion(rz)
	s := math.Sqrt(0.5)
	if !floats.EqualApprox(q[:], []float64{s, 0, 0, s}, 1e-6) {
		Te.Errorf("z rotation gives quaternion %v", q)
	}
}

func TestBackboneFrames(Te *testing.T) {
	S, err := Load("testdata/chainA20.pdb", "A", nil)
	if err != nil {
		Te.Fatal(err)
	}
	f := S.Frames
	if sh := f["backbone_affine_tensor"].Shape(); sh[0] != 20 || sh[1] != 7 {
		Te.Fatalf("unexpected affine shape %v", sh)
	}
	for i := 0; i < S.Len(); i++ {
		if f["backbone_affine_mask"].At(i) != 1 || f["pseudo_beta_mask"].At(i) != 1 {
			Te.Errorf("residue %d should have a frame and a pseudo-beta", i)
		}
		q := f["backbone_affine_tensor"].Data()[i*7 : i*7+4]
		if n := floats.Norm(q, 2); math.Abs(n-1) > 1e-8 {
			Te.Errorf("quaternion %d has norm %f", i, n)
		}
		ca, _ := S.Batch.Atom(i, AtomCA)
		if !floats.Equal(f["backbone_affine_tensor"].Data()[i*7+4:i*7+7], ca[:]) {
			Te.Errorf("translation of residue %d is not its CA", i)
		}
	}
	//the glycine pseudo-beta is its CA.
	ca, _ := S.Batch.Atom(10, AtomCA)
	if !floats.Equal(f["pseudo_beta"].Row(10).Data(), ca[:]) {
		Te.Error("the pseudo-beta of glycine should be its CA")
	}
}

//TestBackboneRotationOrthonormal uses a backbone where N-CA is not perpendicular
//to CA-C, so the second axis has to be orthogonalized.
func TestBackboneRotationOrthonormal(Te *testing.T) {
	n, ca, c := [3]float64{0, 0, 0}, [3]float64{1.458, 0, 0}, [3]float64{2.008, 1.42, 0.3}
	rot := BackboneRotation(n, ca, c)
	var prod mat.Dense
	prod.Mul(rot.T(), rot)
	if !mat.EqualApprox(&prod, mat.NewDiagDense(3, []float64{1, 1, 1}), 1e-6) {
		Te.Errorf("rotation is not orthonormal: %v", mat.Formatted(&prod))
	}
	if d := mat.Det(rot); math.Abs(d-1) > 1e-6 {
		Te.Errorf("rotation has determinant %f", d)
	}
	//the first axis points from CA to C.
	e0 := []float64{rot.At(0, 0), rot.At(1, 0), rot.At(2, 0)}
	dir := []float64{c[0] - ca[0], c[1] - ca[1], c[2] - ca[2]}
	floats.Scale(1/floats.Norm(dir, 2), dir)
	if !floats.EqualApprox(e0, dir, 1e-6) {
		Te.Errorf("first axis %v, expected %v", e0, dir)
	}
}
