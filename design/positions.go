/*
 * positions.go, part of afprep.
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

package design

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rmera/afprep/tensor"
)

//RepeatIdx returns the residue index idx repeated copies times. Each copy is shifted
//so it starts offset positions after the end of the previous one.
func RepeatIdx(idx []int, copies, offset int) []int {
	if len(idx) == 0 {
		return nil
	}
	shift := idx[len(idx)-1] + offset
	ret := make([]int, 0, len(idx)*copies)
	for k := 0; k < copies; k++ {
		for _, v := range idx {
			ret = append(ret, v+k*shift)
		}
	}
	return ret
}

//PosInfo is the result of PrepPos.
type PosInfo struct {
	Residue []int    //native number of every selected residue.
	Chain   []string //chain of every selected residue.
	Length  []int    //number of residues in each comma-separated item.
	Pos     []int    //index of every selected residue in the structure.
}

//PrepPos finds the positions in pos, a comma-separated list of residue numbers and ranges,
//each optionally preceded by a chain letter (for instance "A1-10,B5,20"). Items without
//a chain letter refer to the first chain in chain. residue and chain give the native
//number and the chain of every residue in the structure.
func PrepPos(pos string, residue []int, chain []string) (*PosInfo, error) {
	if len(chain) == 0 || len(residue) != len(chain) {
		return nil, inconsistent("PrepPos", "%d residues and %d chains", len(residue), len(chain))
	}
	info := new(PosInfo)
	for _, item := range strings.Split(pos, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		c := chain[0]
		if unicode.IsLetter(rune(item[0])) {
			c, item = item[:1], item[1:]
		}
		from, to := item, ""
		//the first character can't start a range, as residue numbers can be negative.
		if len(item) > 1 {
			if i := strings.Index(item[1:], "-"); i >= 0 {
				from, to = item[:i+1], item[i+2:]
			}
		}
		_, first, err := parseResidue(from, c)
		if err != nil {
			return nil, err
		}
		last := first
		if to != "" {
			if _, last, err = parseResidue(to, c); err != nil {
				return nil, err
			}
		}
		if last < first {
			return nil, inconsistent("PrepPos", "empty range %s", item)
		}
		for r := first; r <= last; r++ {
			info.Residue = append(info.Residue, r)
			info.Chain = append(info.Chain, c)
		}
		info.Length = append(info.Length, last-first+1)
	}
	if len(info.Residue) == 0 {
		return nil, inconsistent("PrepPos", "no positions in %q", pos)
	}
	for i, r := range info.Residue {
		found := -1
		for j := range residue {
			if residue[j] == r && chain[j] == info.Chain[i] {
				found = j
				break
			}
		}
		if found < 0 {
			return nil, inconsistent("PrepPos", "residue %d of chain %s not found", r, info.Chain[i])
		}
		info.Pos = append(info.Pos, found)
	}
	return info, nil
}

//parseResidue reads an item such as "A10" or "10". The chain is def if no chain letter is given.
func parseResidue(s, def string) (string, int, error) {
	c := def
	if s != "" && unicode.IsLetter(rune(s[0])) {
		c, s = s[:1], s[1:]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return "", 0, inconsistent("PrepPos", "can't read a residue number from %q", s)
	}
	return c, n, nil
}

//msaKeys are the inputs with MSA rows and residues as their first two
//dimensions, after the ensemble axis.
var msaKeys = []string{"msa", "true_msa", "msa_mask", "bert_mask", "msa_feat"}

//BlockDiag rearranges the MSA inputs for copies copies of a protein of length residues
//and num MSA sequences. The first num rows cover all the copies. Each following block
//of num rows covers a single copy, with the content the first rows have for the first
//copy, and nothing elsewhere. The inputs must have at least num*(1+copies) MSA rows
//and length*copies residues. The MSA row mask is set to ones.
func BlockDiag(inputs tensor.FeatureMap, num, length, copies int) (tensor.FeatureMap, error) {
	rows := num * (1 + copies)
	ret := inputs.Copy()
	for _, k := range msaKeys {
		t, ok := ret[k]
		if !ok {
			continue
		}
		sh := t.Shape()
		if len(sh) < 3 || sh[1] < rows || sh[2] < length*copies {
			return nil, inconsistent("BlockDiag", "%s of shape %v can't hold %d blocks of %d residues", k, sh, copies, length)
		}
		nres := sh[2]
		inner := 1
		for _, v := range sh[3:] {
			inner *= v
		}
		data := t.Data()
		src := append([]float64(nil), data...)
		rowsize := nres * inner
		//cell returns the offset of residue j of row i in the first ensemble member.
		cell := func(i, j int) int { return i*rowsize + j*inner }
		for i := 0; i < len(data); i++ {
			data[i] = 0
		}
		for r := 0; r < num; r++ {
			for c := 0; c < copies; c++ {
				for j := 0; j < length; j++ {
					s := src[cell(r, j) : cell(r, j)+inner]
					copy(data[cell(r, c*length+j):], s)
					copy(data[cell(num*(c+1)+r, c*length+j):], s)
				}
			}
		}
		if k == "msa_mask" {
			for r := 0; r < num; r++ {
				for j := 0; j < length*copies; j++ {
					data[cell(r, j)] = 1
				}
			}
		}
		//other ensemble members are copies of the first one.
		for e := 1; e < sh[0]; e++ {
			copy(data[e*sh[1]*rowsize:(e+1)*sh[1]*rowsize], data[:sh[1]*rowsize])
		}
	}
	if m, ok := ret["msa_row_mask"]; ok {
		ret["msa_row_mask"] = m.OnesLike()
	}
	return ret, nil
}
