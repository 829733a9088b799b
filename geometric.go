/*
 * geometric.go, part of afprep.
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

	v3 "github.com/rmera/afprep/v3"
)

//Ideal internal coordinates used to place a missing CB from the backbone.
const (
	CBBondLength = 1.522  //CA-CB distance, in A
	CBAngle      = 1.927  //N-CA-CB angle, in radians
	CBDihedral   = -2.143 //C-N-CA-CB dihedral, in radians
)

//ExtendAtom places a fourth atom d from three atoms a, b and c (each a single vector)
//so that the c-d bond has length l, the b-c-d angle is ang, and the a-b-c-d
//dihedral is dih. Angles are in radians. The new position is returned.
func ExtendAtom(a, b, c *v3.Matrix, l, ang, dih float64) *v3.Matrix {
	tmp := v3.Zeros(1)
	bc := v3.Zeros(1)
	tmp.Sub(b, c)
	bc.Unit(tmp)
	n := v3.Zeros(1)
	tmp.Sub(b, a)
	tmp.Cross(tmp, bc)
	n.Unit(tmp)
	m := v3.Zeros(1)
	m.Cross(n, bc)
	d := v3.Zeros(1)
	d.Copy(c)
	tmp.Scale(l*math.Cos(ang), bc)
	d.Add(d, tmp)
	tmp.Scale(l*math.Sin(ang)*math.Cos(dih), m)
	d.Add(d, tmp)
	tmp.Scale(-l*math.Sin(ang)*math.Sin(dih), n)
	d.Add(d, tmp)
	return d
}

//ImputeCB returns the ideal CB position for a residue with the backbone atoms
//n, ca and c. The CB is placed with CBBondLength, CBAngle and CBDihedral.
func ImputeCB(n, ca, c [3]float64) [3]float64 {
	vecs, err := v3.FromVecs([][3]float64{c, n, ca})
	if err != nil {
		panic(err.Error()) //can't happen, we always have 3 vectors.
	}
	cb := ExtendAtom(vecs.VecView(0), vecs.VecView(1), vecs.VecView(2), CBBondLength, CBAngle, CBDihedral)
	return cb.Vec(0)
}
