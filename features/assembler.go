/*
 * assembler.go, part of afprep.
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
	"strings"

	"github.com/rmera/afprep"
	"github.com/rmera/afprep/tensor"
)

//Assembler builds the placeholder inputs of a design run.
type Assembler struct {
	UseTemplates bool
	NumSeq       int //number of sequences in the designed MSA.
}

//templateShapes returns the expected shape of each raw template feature.
func templateShapes(numTemplates, length int) map[string][]int {
	return map[string][]int{
		"template_aatype":             {numTemplates, length, afprep.HHblitsNum},
		"template_all_atom_masks":     {numTemplates, length, afprep.AtomTypeNum},
		"template_all_atom_positions": {numTemplates, length, afprep.AtomTypeNum, 3},
		"template_domain_names":       {numTemplates},
	}
}

//Build returns the model inputs for a poly-alanine placeholder of length residues,
//with an MSA of A.NumSeq identical rows, as processed by runner under cfg.
//If templates are used, cfg is reconfigured to take numTemplates templates, and
//the given template features are used, or zero-filled ones if templates is nil.
//When there is more than one copy or more than one MSA sequence, the MSA masks
//are set to ones for every row.
func (A Assembler) Build(cfg *Config, runner Runner, length, copies, numTemplates int, templates tensor.FeatureMap) (tensor.FeatureMap, error) {
	if length < 1 || copies < 1 || A.NumSeq < 1 {
		return nil, inconsistent("Build", "length %d, %d copies and %d sequences", length, copies, A.NumSeq)
	}
	seq := strings.Repeat("A", length)
	raw, err := MakeSequenceFeatures(seq, "none", length)
	if err != nil {
		return nil, errDecorate(err, "Build")
	}
	msa := make([]string, A.NumSeq)
	dels := make([][]int, A.NumSeq)
	for i := range msa {
		msa[i] = seq
		dels[i] = make([]int, length)
	}
	m, err := MakeMsaFeatures([][]string{msa}, [][][]int{dels})
	if err != nil {
		return nil, errDecorate(err, "Build")
	}
	raw.Merge(m)
	if A.UseTemplates {
		if numTemplates < 1 {
			return nil, inconsistent("Build", "templates requested with %d template slots", numTemplates)
		}
		cfg.MaxTemplates = numTemplates
		cfg.MaxMsaClusters = A.NumSeq + numTemplates
		for k, shape := range templateShapes(numTemplates, length) {
			if templates == nil {
				raw[k] = tensor.Zeros(shape...)
				continue
			}
			t, ok := templates[k]
			if !ok {
				return nil, inconsistent("Build", "template feature %s missing", k)
			}
			if !equalShapes(t.Shape(), shape) {
				return nil, inconsistent("Build", "template feature %s has shape %v, expected %v", k, t.Shape(), shape)
			}
			raw[k] = t.Copy()
		}
	} else if templates != nil {
		return nil, inconsistent("Build", "template features given, but templates are not in use")
	}
	inputs, err := runner.ProcessFeatures(cfg, raw, 0)
	if err != nil {
		return nil, errDecorate(err, "Build")
	}
	if A.NumSeq > 1 || copies > 1 {
		for _, k := range []string{"msa_row_mask", "msa_mask"} {
			if v, ok := inputs[k]; ok {
				inputs[k] = v.OnesLike()
			}
		}
	}
	return inputs, nil
}

func equalShapes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
