/*
 * geometric_test.go, part of afprep.
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

	v3 "github.com/rmera/afprep/v3"
	"gonum.org/v1/gonum/floats"
)

//TestImputeCB checks that the imputed CB reproduces the ideal internal coordinates
//and the CBs in a structure built with them.
func TestImputeCB(Te *testing.T) {
	raw, err := ReadStructureFile("testdata/chainA20.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	r := raw.Residues[0]
	n, ca, c := r.Positions[AtomN], r.Positions[AtomCA], r.Positions[AtomC]
	cb := ImputeCB(n, ca, c)
	if !floats.EqualApprox(cb[:], r.Positions[AtomCB][:], 1e-2) {
		Te.Errorf("imputed CB %v differs from %v", cb, r.Positions[AtomCB])
	}
	vecs, err := v3.FromVecs([][3]float64{c, n, ca, cb})
	if err != nil {
		Te.Fatal(err)
	}
	bond := v3.Zeros(1)
	bond.SubVec(vecs, 3, vecs, 2)
	if l := v3.Norm(bond); math.Abs(l-CBBondLength) > 1e-4 {
		Te.Errorf("CA-CB distance %f", l)
	}
	b1 := v3.Zeros(1)
	b1.SubVec(vecs, 1, vecs, 2)
	if a := angle(b1, bond); math.Abs(a-CBAngle) > 1e-4 {
		Te.Errorf("N-CA-CB angle %f", a)
	}
	if d := dihedral(vecs.VecView(0), vecs.VecView(1), vecs.VecView(2), vecs.VecView(3)); math.Abs(d-CBDihedral) > 1e-4 {
		Te.Errorf("C-N-CA-CB dihedral %f", d)
	}
}

func TestAddCBMask(Te *testing.T) {
	B := NewAtomBatch(2)
	B.SetAtom(0, AtomN, [3]float64{0, 0, 0})
	B.SetAtom(0, AtomCA, [3]float64{1.458, 0, 0})
	B.SetAtom(0, AtomC, [3]float64{2.008, 1.42, 0})
	//the second residue lacks its C.
	B.SetAtom(1, AtomN, [3]float64{0, 0, 0})
	B.SetAtom(1, AtomCA, [3]float64{1.458, 0, 0})
	B.AddCB()
	if !B.Resolved(0, AtomCB) {
		Te.Error("CB with a complete backbone should be resolved")
	}
	if B.Resolved(1, AtomCB) {
		Te.Error("CB with an incomplete backbone should not be resolved")
	}
	cb, _ := B.Atom(0, AtomCB)
	for _, v := range cb {
		if math.IsNaN(v) {
			Te.Fatal("NaN in imputed CB")
		}
	}
}

//angle returns the angle in radians between the vectors v1 and v2.
func angle(v1, v2 *v3.Matrix) float64 {
	arg := v3.Dot(v1, v2) / (v3.Norm(v1) * v3.Norm(v2))
	return math.Acos(math.Max(-1, math.Min(1, arg)))
}

//dihedral returns the dihedral between the points a, b, c and d, where the first plane
//is defined by abc and the second by bcd.
func dihedral(a, b, c, d *v3.Matrix) float64 {
	bma := v3.Zeros(1)
	cmb := v3.Zeros(1)
	dmc := v3.Zeros(1)
	bma.Sub(b, a)
	cmb.Sub(c, b)
	dmc.Sub(d, c)
	n1 := v3.Zeros(1)
	n2 := v3.Zeros(1)
	n1.Cross(bma, cmb)
	n2.Cross(cmb, dmc)
	first := v3.Zeros(1)
	first.Scale(v3.Norm(cmb), bma)
	return math.Atan2(v3.Dot(first, n2), v3.Dot(n1, n2))
}

func TestImputeCBIdealBackbone(Te *testing.T) {
	n, ca, c := [3]float64{0, 1.46, 0}, [3]float64{0, 0, 0}, [3]float64{1.52, 0, 0}
	cb := ImputeCB(n, ca, c)
	vecs, err := v3.FromVecs([][3]float64{c, n, ca, cb})
	if err != nil {
		Te.Fatal(err)
	}
	bond := v3.Zeros(1)
	bond.SubVec(vecs, 3, vecs, 2)
	if l := v3.Norm(bond); math.Abs(l-CBBondLength) > 1e-4 {
		Te.Errorf("CA-CB distance %f", l)
	}
	if d := dihedral(vecs.VecView(0), vecs.VecView(1), vecs.VecView(2), vecs.VecView(3)); math.Abs(d-CBDihedral) > 1e-4 {
		Te.Errorf("C-N-CA-CB dihedral %f", d)
	}
	//ExtendAtom with the same atoms gives the same CB.
	d := ExtendAtom(vecs.VecView(0), vecs.VecView(1), vecs.VecView(2), CBBondLength, CBAngle, CBDihedral)
	if !floats.EqualApprox(d.RawRowView(0), cb[:], 1e-12) {
		Te.Errorf("ExtendAtom gave %v, ImputeCB %v", d.Vec(0), cb)
	}
	//a glycine gets its CB when loaded.
	S, err := Load("testdata/chainA20.pdb", "A", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if !S.Batch.Resolved(10, AtomCB) {
		Te.Error("the glycine CB should be imputed")
	}
}
