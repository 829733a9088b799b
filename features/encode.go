/*
 * encode.go, part of afprep.
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

package features

import (
	"github.com/rmera/afprep"
	"github.com/rmera/afprep/tensor"
)

//MakeSequenceFeatures returns the raw features of the sequence seq, for numRes residues:
//aatype [N,21] one-hot (unknown residues are X), between_segment_residues [N],
//domain_name [1], residue_index [N] (0 to N-1) and seq_length [N], which
//repeats numRes in every element. The description desc is not encoded.
func MakeSequenceFeatures(seq, desc string, numRes int) (tensor.FeatureMap, error) {
	if len(seq) != numRes {
		return nil, inconsistent("MakeSequenceFeatures", "sequence of length %d for %d residues (%s)", len(seq), numRes, desc)
	}
	aatype := tensor.Zeros(numRes, afprep.RestypeNum+1)
	idx := make([]int, numRes)
	for i := 0; i < numRes; i++ {
		aatype.Set(1, i, afprep.RestypeIndex(seq[i]))
		idx[i] = i
	}
	return tensor.FeatureMap{
		"aatype":                   aatype,
		"between_segment_residues": tensor.Zeros(numRes),
		"domain_name":              tensor.Zeros(1),
		"residue_index":            tensor.FromInts(idx),
		"seq_length":               tensor.Full(float64(numRes), numRes),
	}, nil
}

//MakeMsaFeatures returns the raw features of a set of MSAs, each a set of aligned sequences
//with the deletion counts for each position in deletions. Repeated sequences are
//kept only once, the first time they appear. The features are msa [M,N] (HHblits IDs),
//deletion_matrix_int [M,N] and num_alignments [N].
func MakeMsaFeatures(msas [][]string, deletions [][][]int) (tensor.FeatureMap, error) {
	if len(msas) == 0 {
		return nil, inconsistent("MakeMsaFeatures", "at least one MSA must be given")
	}
	if len(deletions) != len(msas) {
		return nil, inconsistent("MakeMsaFeatures", "%d MSAs but %d deletion matrices", len(msas), len(deletions))
	}
	length := -1
	seen := make(map[string]bool)
	var rows, dels [][]int
	for i, msa := range msas {
		if len(deletions[i]) < len(msa) {
			return nil, inconsistent("MakeMsaFeatures", "MSA %d has %d sequences but %d deletion rows", i, len(msa), len(deletions[i]))
		}
		for j, seq := range msa {
			if length < 0 {
				length = len(seq)
			}
			if len(seq) != length || len(deletions[i][j]) != length {
				return nil, inconsistent("MakeMsaFeatures", "sequence %d of MSA %d is not aligned", j, i)
			}
			if seen[seq] {
				continue
			}
			seen[seq] = true
			row := make([]int, length)
			for k := range row {
				row[k] = afprep.HHblitsID(seq[k])
			}
			rows = append(rows, row)
			dels = append(dels, deletions[i][j])
		}
	}
	if len(rows) == 0 {
		return nil, inconsistent("MakeMsaFeatures", "the MSAs have no sequences")
	}
	return tensor.FeatureMap{
		"msa":                 intMatrix(rows),
		"deletion_matrix_int": intMatrix(dels),
		"num_alignments":      tensor.Full(float64(len(rows)), length),
	}, nil
}

//intMatrix returns a [len(rows), len(rows[0])] tensor with the values of rows.
func intMatrix(rows [][]int) *tensor.Tensor {
	var flat []int
	for _, r := range rows {
		flat = append(flat, r...)
	}
	t := tensor.FromInts(flat)
	ret, err := tensor.New([]int{len(rows), len(rows[0])}, t.Data())
	if err != nil {
		panic(err.Error()) //the rows are checked to have the same length.
	}
	return ret
}
