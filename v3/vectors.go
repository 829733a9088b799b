/*
 * vectors.go, part of afprep.
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

package v3

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

//appzero is added to squared norms so unit vectors of degenerate
//(zero-length) vectors stay finite.
const appzero float64 = 1e-8

//FromVecs returns a Matrix with one vector per element of vs.
func FromVecs(vs [][3]float64) (*Matrix, error) {
	data := make([]float64, 0, 3*len(vs))
	for _, v := range vs {
		data = append(data, v[:]...)
	}
	M, err := NewMatrix(data)
	return M, errDecorate(err, "FromVecs")
}

//checkVec panics if A is not a single 3D vector.
func checkVec(A *Matrix) {
	r, c := A.Dims()
	if r != 1 || c != 3 {
		panic(ErrShape)
	}
}

//Dot returns the dot product of the vectors a and b.
func Dot(a, b *Matrix) float64 {
	checkVec(a)
	checkVec(b)
	return floats.Dot(a.RawRowView(0), b.RawRowView(0))
}

//Norm returns the euclidean norm of the vector a. The squared norm is shifted
//by a small constant before the square root, so Norm never returns zero.
func Norm(a *Matrix) float64 {
	checkVec(a)
	r := a.RawRowView(0)
	return math.Sqrt(floats.Dot(r, r) + appzero)
}

//Unit puts in the receiver the unit vector pointing in the direction of A.
func (F *Matrix) Unit(A *Matrix) {
	checkVec(F)
	F.Scale(1/Norm(A), A)
}

//Cross puts the cross product of a and b in the receiver.
func (F *Matrix) Cross(a, b *Matrix) {
	checkVec(a)
	checkVec(b)
	r, c := F.Dims()
	if r != 1 || c != 3 {
		panic(ErrNoCrossProduct)
	}
	x := a.RawRowView(0)
	y := b.RawRowView(0)
	F.SetRow(0, []float64{
		x[1]*y[2] - x[2]*y[1],
		x[2]*y[0] - x[0]*y[2],
		x[0]*y[1] - x[1]*y[0],
	})
}

//SubVec puts in the receiver the difference between the ith vector of A and
//the jth vector of B.
func (F *Matrix) SubVec(A *Matrix, i int, B *Matrix, j int) {
	checkVec(F)
	a := A.RawRowView(i)
	b := B.RawRowView(j)
	F.SetRow(0, []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]})
}
