/*
 * frames.go, part of afprep.
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

	"github.com/rmera/afprep/tensor"
	v3 "github.com/rmera/afprep/v3"
	"gonum.org/v1/gonum/mat"
)

const glycine = 7 //residue type index of G

//BackboneFrames is the default Framer. It builds, for each residue, the rigid frame
//defined by the N, CA and C atoms (backbone_affine_tensor, a quaternion followed by the
//CA position), its mask, and the pseudo-beta atom (CB, or CA for glycine) with its mask.
type BackboneFrames struct{}

//Frames returns backbone_affine_tensor [N,7], backbone_affine_mask [N],
//pseudo_beta [N,3] and pseudo_beta_mask [N] for the residues in B.
func (f BackboneFrames) Frames(B *AtomBatch) (tensor.FeatureMap, error) {
	n := B.Len()
	affine := tensor.Zeros(n, 7)
	affmask := tensor.Zeros(n)
	pb := tensor.Zeros(n, 3)
	pbmask := tensor.Zeros(n)
	for i := 0; i < n; i++ {
		N, okn := B.Atom(i, AtomN)
		CA, okca := B.Atom(i, AtomCA)
		C, okc := B.Atom(i, AtomC)
		q := [4]float64{1, 0, 0, 0}
		if okn && okca && okc {
			affmask.Set(1, i)
			q = RotationToQuaternion(BackboneRotation(N, CA, C))
		}
		for j, v := range q {
			affine.Set(v, i, j)
		}
		for j, v := range CA {
			affine.Set(v, i, 4+j)
		}
		slot := AtomCB
		if B.Aatype[i] == glycine {
			slot = AtomCA
		}
		p, ok := B.Atom(i, slot)
		for j, v := range p {
			pb.Set(v, i, j)
		}
		if ok {
			pbmask.Set(1, i)
		}
	}
	return tensor.FeatureMap{
		"backbone_affine_tensor": affine,
		"backbone_affine_mask":   affmask,
		"pseudo_beta":            pb,
		"pseudo_beta_mask":       pbmask,
	}, nil
}

//BackboneRotation returns the rotation matrix of the frame with origin in ca, its
//first axis pointing to c and its second axis in the plane of n, ca and c.
//The axes are the columns of the matrix.
func BackboneRotation(n, ca, c [3]float64) *mat.Dense {
	vecs, err := v3.FromVecs([][3]float64{n, ca, c})
	if err != nil {
		panic(err.Error())
	}
	e0 := v3.Zeros(1)
	tmp := v3.Zeros(1)
	tmp.SubVec(vecs, 2, vecs, 1)
	e0.Unit(tmp)
	tmp.SubVec(vecs, 0, vecs, 1)
	proj := v3.Zeros(1)
	proj.Scale(v3.Dot(e0, tmp), e0)
	tmp.Sub(tmp, proj)
	e1 := v3.Zeros(1)
	e1.Unit(tmp)
	e2 := v3.Zeros(1)
	e2.Cross(e0, e1)
	rot := mat.NewDense(3, 3, nil)
	for j, e := range []*v3.Matrix{e0, e1, e2} {
		rot.SetCol(j, e.RawRowView(0))
	}
	return rot
}

//RotationToQuaternion returns the unit quaternion (w, x, y, z) for the rotation
//matrix rot, as the eigenvector of the largest eigenvalue of the symmetric 4x4
//matrix built from rot. The sign is chosen so w >= 0.
func RotationToQuaternion(rot mat.Matrix) [4]float64 {
	xx, xy, xz := rot.At(0, 0), rot.At(0, 1), rot.At(0, 2)
	yx, yy, yz := rot.At(1, 0), rot.At(1, 1), rot.At(1, 2)
	zx, zy, zz := rot.At(2, 0), rot.At(2, 1), rot.At(2, 2)
	k := mat.NewSymDense(4, []float64{
		xx + yy + zz, zy - yz, xz - zx, yx - xy,
		zy - yz, xx - yy - zz, xy + yx, xz + zx,
		xz - zx, xy + yx, yy - xx - zz, yz + zy,
		yx - xy, xz + zx, yz + zy, zz - xx - yy,
	})
	k.ScaleSym(1.0/3.0, k)
	var eig mat.EigenSym
	if ok := eig.Factorize(k, true); !ok {
		return [4]float64{1, 0, 0, 0}
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	//eigenvalues are in ascending order.
	q := [4]float64{}
	for i := range q {
		q[i] = vecs.At(i, 3)
	}
	if q[0] < 0 {
		for i := range q {
			q[i] = -q[i]
		}
	}
	norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	for i := range q {
		q[i] /= norm
	}
	return q
}
