/*
 * atom14.go, part of afprep.
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
	"github.com/rmera/afprep/tensor"
)

//Atom14Tables returns, for the residue types in aatype, the atom14 to atom37 and atom37 to atom14
//index tables, and which atom14 and atom37 slots exist for each residue type.
//The features are residx_atom14_to_atom37 [N,14], residx_atom37_to_atom14 [N,37],
//atom14_atom_exists [N,14] and atom37_atom_exists [N,37].
func Atom14Tables(aatype []int) tensor.FeatureMap {
	n := len(aatype)
	to37 := tensor.Zeros(n, Atom14Num)
	to14 := tensor.Zeros(n, AtomTypeNum)
	ex14 := tensor.Zeros(n, Atom14Num)
	ex37 := tensor.Zeros(n, AtomTypeNum)
	for i, aa := range aatype {
		for j, name := range Atom14Names(aa) {
			if name == "" {
				continue
			}
			slot := AtomOrder[name]
			to37.Set(float64(slot), i, j)
			to14.Set(float64(j), i, slot)
			ex14.Set(1, i, j)
			ex37.Set(1, i, slot)
		}
	}
	return tensor.FeatureMap{
		"residx_atom14_to_atom37": to37,
		"residx_atom37_to_atom14": to14,
		"atom14_atom_exists":      ex14,
		"atom37_atom_exists":      ex37,
	}
}

//MakeAtom14Positions returns the atom14 version of the ground-truth atoms in B,
//with the tables from Atom14Tables, plus the alternative ground truth where
//the chemically equivalent atoms of symmetric side chains are swapped.
//The additional features are atom14_gt_positions [N,14,3], atom14_gt_exists [N,14],
//atom14_atom_is_ambiguous [N,14], atom14_alt_gt_positions [N,14,3] and
//atom14_alt_gt_exists [N,14].
func MakeAtom14Positions(B *AtomBatch) tensor.FeatureMap {
	n := B.Len()
	feat := Atom14Tables(B.Aatype)
	pos := tensor.Zeros(n, Atom14Num, 3)
	exists := tensor.Zeros(n, Atom14Num)
	ambiguous := tensor.Zeros(n, Atom14Num)
	altpos := tensor.Zeros(n, Atom14Num, 3)
	altexists := tensor.Zeros(n, Atom14Num)
	ex14 := feat["atom14_atom_exists"]
	for i, aa := range B.Aatype {
		names := Atom14Names(aa)
		slots := make(map[string]int, Atom14Num)
		for j, name := range names {
			if name != "" {
				slots[name] = j
			}
		}
		//alt[j] is the atom14 slot whose atom goes into slot j in the alternative truth.
		var alt [Atom14Num]int
		for j := range alt {
			alt[j] = j
		}
		for _, sw := range renamingSwaps[RestypeName(aa)] {
			a, b := slots[sw[0]], slots[sw[1]]
			alt[a], alt[b] = b, a
			ambiguous.Set(1, i, a)
			ambiguous.Set(1, i, b)
		}
		for j, name := range names {
			if name == "" {
				continue
			}
			c, ok := B.Atom(i, AtomOrder[name])
			if !ok || ex14.At(i, j) == 0 {
				continue
			}
			exists.Set(1, i, j)
			altexists.Set(1, i, alt[j])
			for k, v := range c {
				pos.Set(v, i, j, k)
				altpos.Set(v, i, alt[j], k)
			}
		}
	}
	feat["atom14_gt_positions"] = pos
	feat["atom14_gt_exists"] = exists
	feat["atom14_atom_is_ambiguous"] = ambiguous
	feat["atom14_alt_gt_positions"] = altpos
	feat["atom14_alt_gt_exists"] = altexists
	return feat
}
