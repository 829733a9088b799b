/*
 * tensor.go, part of afprep.
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

package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

//Tensor is a dense, row-major, N-dimensional array of float64.
//A Tensor with an empty shape is a scalar holding one value.
type Tensor struct {
	shape []int
	data  []float64
}

func size(shape []int) int {
	n := 1
	for _, v := range shape {
		if v < 0 {
			panic(PanicMsg(fmt.Sprintf("afprep/tensor: negative dimension in shape %v", shape)))
		}
		n *= v
	}
	return n
}

//New returns a Tensor with the given shape, backed by data (not copied).
func New(shape []int, data []float64) (*Tensor, error) {
	if size(shape) != len(data) {
		return nil, Error{fmt.Sprintf("%d values can't fill shape %v", len(data), shape), "", nil, []string{"New"}, true}
	}
	return &Tensor{shape: append([]int(nil), shape...), data: data}, nil
}

//Full returns a Tensor of the given shape with all elements set to v.
func Full(v float64, shape ...int) *Tensor {
	t := &Tensor{shape: append([]int(nil), shape...), data: make([]float64, size(shape))}
	if v != 0 {
		for i := range t.data {
			t.data[i] = v
		}
	}
	return t
}

//Zeros returns a zero-filled Tensor of the given shape.
func Zeros(shape ...int) *Tensor {
	return Full(0, shape...)
}

//Ones returns a Tensor of the given shape filled with ones.
func Ones(shape ...int) *Tensor {
	return Full(1, shape...)
}

//FromInts returns a 1D Tensor with the values in v.
func FromInts(v []int) *Tensor {
	t := Zeros(len(v))
	for i, val := range v {
		t.data[i] = float64(val)
	}
	return t
}

//Scalar returns a rank-0 Tensor holding v.
func Scalar(v float64) *Tensor {
	return &Tensor{shape: []int{}, data: []float64{v}}
}

//Shape returns a copy of the shape of T.
func (T *Tensor) Shape() []int {
	return append([]int(nil), T.shape...)
}

//Dim returns the size of the ith dimension of T.
func (T *Tensor) Dim(i int) int {
	return T.shape[i]
}

//Rank returns the number of dimensions of T.
func (T *Tensor) Rank() int {
	return len(T.shape)
}

//Size returns the number of elements in T.
func (T *Tensor) Size() int {
	return len(T.data)
}

//Data returns the underlying data of T. Changes to the returned
//slice are reflected in T.
func (T *Tensor) Data() []float64 {
	return T.data
}

//Ints returns a copy of the data in T, truncated to int.
func (T *Tensor) Ints() []int {
	ret := make([]int, len(T.data))
	for i, v := range T.data {
		ret[i] = int(v)
	}
	return ret
}

func (T *Tensor) offset(idx []int) int {
	if len(idx) != len(T.shape) {
		panic(ErrIndexRank)
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= T.shape[i] {
			panic(ErrIndexOutOfRange)
		}
		off = off*T.shape[i] + v
	}
	return off
}

//At returns the element of T at the index idx.
func (T *Tensor) At(idx ...int) float64 {
	return T.data[T.offset(idx)]
}

//Set sets the element of T at the index idx to v.
func (T *Tensor) Set(v float64, idx ...int) {
	T.data[T.offset(idx)] = v
}

//Copy returns a deep copy of T.
func (T *Tensor) Copy() *Tensor {
	if T == nil {
		return nil
	}
	return &Tensor{shape: T.Shape(), data: append([]float64(nil), T.data...)}
}

//OnesLike returns a Tensor filled with ones, with the shape of T.
func (T *Tensor) OnesLike() *Tensor {
	return Ones(T.shape...)
}

//ZerosLike returns a zero-filled Tensor with the shape of T.
func (T *Tensor) ZerosLike() *Tensor {
	return Zeros(T.shape...)
}

//rowSize returns the number of elements in each slice along the first axis.
func (T *Tensor) rowSize() int {
	if len(T.shape) == 0 {
		panic(ErrScalar)
	}
	return size(T.shape[1:])
}

//Rows returns a new Tensor with the rows (slices along the first axis) of T
//given in idx, in that order.
func (T *Tensor) Rows(idx []int) *Tensor {
	rs := T.rowSize()
	shape := T.Shape()
	shape[0] = len(idx)
	ret := Zeros(shape...)
	for i, r := range idx {
		if r < 0 || r >= T.shape[0] {
			panic(ErrIndexOutOfRange)
		}
		copy(ret.data[i*rs:(i+1)*rs], T.data[r*rs:(r+1)*rs])
	}
	return ret
}

//Slice returns a copy of the rows from (inclusive) to to (exclusive) of T.
func (T *Tensor) Slice(from, to int) *Tensor {
	if from < 0 || to > T.shape[0] || from > to {
		panic(ErrIndexOutOfRange)
	}
	rs := T.rowSize()
	shape := T.Shape()
	shape[0] = to - from
	return &Tensor{shape: shape, data: append([]float64(nil), T.data[from*rs:to*rs]...)}
}

//Row returns a copy of the ith row of T, with one dimension less than T.
func (T *Tensor) Row(i int) *Tensor {
	r := T.Slice(i, i+1)
	r.shape = r.shape[1:]
	return r
}

//SetRow copies R into the ith row of T. R must have the shape of a row of T.
func (T *Tensor) SetRow(i int, R *Tensor) {
	rs := T.rowSize()
	if R.Size() != rs || R.Rank() != T.Rank()-1 {
		panic(ErrShape)
	}
	copy(T.data[i*rs:(i+1)*rs], R.data)
}

//ExpandDims returns a copy of T with a new leading axis of size 1.
func (T *Tensor) ExpandDims() *Tensor {
	return &Tensor{shape: append([]int{1}, T.shape...), data: append([]float64(nil), T.data...)}
}

//Tile returns a Tensor with the rows of T repeated n times along the first axis.
func (T *Tensor) Tile(n int) *Tensor {
	shape := T.Shape()
	shape[0] *= n
	ret := &Tensor{shape: shape, data: make([]float64, 0, len(T.data)*n)}
	for i := 0; i < n; i++ {
		ret.data = append(ret.data, T.data...)
	}
	return ret
}

//Concat concatenates the given tensors along their first axis. All the
//tensors must have the same shape except for the first dimension.
func Concat(ts ...*Tensor) (*Tensor, error) {
	if len(ts) == 0 {
		return nil, Error{"nothing to concatenate", "", nil, []string{"Concat"}, true}
	}
	first := ts[0]
	if first.Rank() == 0 {
		return nil, Error{"can't concatenate scalars", "", nil, []string{"Concat"}, true}
	}
	shape := first.Shape()
	shape[0] = 0
	var data []float64
	for _, t := range ts {
		if t.Rank() != first.Rank() {
			return nil, Error{fmt.Sprintf("rank %d doesn't match rank %d", t.Rank(), first.Rank()), "", ErrRankMismatch, []string{"Concat"}, true}
		}
		for i := 1; i < t.Rank(); i++ {
			if t.shape[i] != first.shape[i] {
				return nil, Error{fmt.Sprintf("shape %v doesn't match shape %v", t.shape, first.shape), "", nil, []string{"Concat"}, true}
			}
		}
		shape[0] += t.shape[0]
		data = append(data, t.data...)
	}
	if data == nil {
		data = []float64{}
	}
	return &Tensor{shape: shape, data: data}, nil
}

//Pad returns a new Tensor with the given shape, where T occupies the leading
//corner and the rest is filled with zeros. Every dimension of shape must be
//at least as large as the corresponding dimension of T.
func (T *Tensor) Pad(shape []int) (*Tensor, error) {
	if len(shape) != T.Rank() {
		return nil, Error{fmt.Sprintf("can't pad shape %v to %v", T.shape, shape), "", ErrRankMismatch, []string{"Pad"}, true}
	}
	for i, v := range shape {
		if v < T.shape[i] {
			return nil, Error{fmt.Sprintf("dimension %d of shape %v exceeds the pad target %v", i, T.shape, shape), "", ErrPadTargetTooSmall, []string{"Pad"}, true}
		}
	}
	ret := Zeros(shape...)
	if len(T.data) == 0 {
		return ret, nil
	}
	//we copy innermost runs, one for every index over the leading dimensions.
	if len(shape) == 0 {
		ret.data[0] = T.data[0]
		return ret, nil
	}
	inner := T.shape[len(T.shape)-1]
	lead := T.shape[:len(T.shape)-1]
	idx := make([]int, len(lead))
	for n := 0; n < len(T.data)/inner; n++ {
		src, dst := 0, 0
		for i, v := range idx {
			src = src*T.shape[i] + v
			dst = dst*shape[i] + v
		}
		copy(ret.data[dst*shape[len(shape)-1]:dst*shape[len(shape)-1]+inner], T.data[src*inner:(src+1)*inner])
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < lead[i] {
				break
			}
			idx[i] = 0
		}
	}
	return ret, nil
}

//Equal returns true if T and B have the same shape and elements.
func (T *Tensor) Equal(B *Tensor) bool {
	if T.Rank() != B.Rank() {
		return false
	}
	for i, v := range T.shape {
		if B.shape[i] != v {
			return false
		}
	}
	return floats.Equal(T.data, B.data)
}

//String returns a short description of T.
func (T *Tensor) String() string {
	return fmt.Sprintf("Tensor%v", T.shape)
}
