/*
 * runner.go, part of afprep.
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
	"math"

	"github.com/rmera/afprep"
	"github.com/rmera/afprep/tensor"
)

//Runner turns raw features into the inputs of the prediction model, sized as
//set in cfg. The returned tensors carry a leading ensemble axis.
type Runner interface {
	ProcessFeatures(cfg *Config, raw tensor.FeatureMap, seed int64) (tensor.FeatureMap, error)
}

//Symbols in the MSA one-hot encoding: the residue types, X, the gap, and the mask token.
const msaSymbols = afprep.RestypeNum + 3

//BasicRunner is a deterministic Runner. It takes the first MSA rows as the cluster
//centers and the following ones as extra rows, applies no masking and no sampling,
//and pads everything to the sizes of the Config. The seed is ignored.
type BasicRunner struct{}

//ProcessFeatures processes the output of MakeSequenceFeatures and MakeMsaFeatures, plus
//optional raw template features (template_aatype as HHblits one-hot, template_all_atom_masks,
//template_all_atom_positions, template_domain_names).
func (r BasicRunner) ProcessFeatures(cfg *Config, raw tensor.FeatureMap, seed int64) (tensor.FeatureMap, error) {
	if err := cfg.Check(); err != nil {
		return nil, errDecorate(err, "ProcessFeatures")
	}
	for _, k := range []string{"aatype", "residue_index", "msa", "deletion_matrix_int"} {
		if _, ok := raw[k]; !ok {
			return nil, inconsistent("ProcessFeatures", "missing raw feature %s", k)
		}
	}
	onehot := raw["aatype"]
	n := onehot.Dim(0)
	aatype := make([]int, n)
	for i := range aatype {
		aatype[i] = argmax(onehot.Row(i).Data())
	}
	out := tensor.FeatureMap{
		"aatype":        tensor.FromInts(aatype),
		"residue_index": raw["residue_index"].Copy(),
		"seq_length":    tensor.Scalar(float64(n)),
		"seq_mask":      tensor.Ones(n),
	}
	//target_feat is the one-hot sequence preceded by a chain-break flag.
	tf := tensor.Zeros(n, afprep.RestypeNum+2)
	for i, a := range aatype {
		tf.Set(1, i, a+1)
	}
	out["target_feat"] = tf
	if err := msaFeatures(cfg, raw, out); err != nil {
		return nil, errDecorate(err, "ProcessFeatures")
	}
	out.Merge(afprep.Atom14Tables(aatype))
	if _, ok := raw["template_aatype"]; ok {
		t, err := templateFeatures(raw)
		if err != nil {
			return nil, errDecorate(err, "ProcessFeatures")
		}
		out.Merge(t)
	}
	padded, err := tensor.MakeFixedSize(out, cfg.Feat, cfg.Sizes(), n, false)
	if err != nil {
		return nil, err
	}
	for k, v := range padded {
		padded[k] = v.ExpandDims()
	}
	return padded, nil
}

func argmax(v []float64) int {
	best := 0
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}
	return best
}

//msaFeatures splits the raw MSA into cluster centers and extra rows and adds their
//features to out. The MSA is converted from HHblits IDs to residue types.
func msaFeatures(cfg *Config, raw, out tensor.FeatureMap) error {
	msa := raw["msa"]
	del := raw["deletion_matrix_int"]
	rows, n := msa.Dim(0), msa.Dim(1)
	nclust := rows
	if nclust > cfg.NumMsaSeq() {
		nclust = cfg.NumMsaSeq()
	}
	nextra := rows - nclust
	if nextra > cfg.MaxExtraMsa {
		nextra = cfg.MaxExtraMsa
	}
	types := tensor.Zeros(rows, n)
	for i := 0; i < rows; i++ {
		for j := 0; j < n; j++ {
			types.Set(float64(afprep.HHblitsToRestype(int(msa.At(i, j)))), i, j)
		}
	}
	clust := types.Slice(0, nclust)
	out["msa"] = clust
	out["true_msa"] = clust.Copy()
	out["msa_mask"] = tensor.Ones(nclust, n)
	out["msa_row_mask"] = tensor.Ones(nclust)
	out["bert_mask"] = tensor.Zeros(nclust, n)
	//one-hot (23), has_deletion, deletion_value, cluster profile (23), deletion_mean.
	feat := tensor.Zeros(nclust, n, 2*msaSymbols+3)
	for i := 0; i < nclust; i++ {
		for j := 0; j < n; j++ {
			t := int(clust.At(i, j))
			d := del.At(i, j)
			feat.Set(1, i, j, t)
			if d > 0 {
				feat.Set(1, i, j, msaSymbols)
			}
			feat.Set(deletionValue(d), i, j, msaSymbols+1)
			feat.Set(1, i, j, msaSymbols+2+t)
			feat.Set(deletionValue(d), i, j, 2*msaSymbols+2)
		}
	}
	out["msa_feat"] = feat
	extra := types.Slice(nclust, nclust+nextra)
	out["extra_msa"] = extra
	out["extra_msa_mask"] = tensor.Ones(nextra, n)
	out["extra_msa_row_mask"] = tensor.Ones(nextra)
	hasdel := tensor.Zeros(nextra, n)
	delval := tensor.Zeros(nextra, n)
	for i := 0; i < nextra; i++ {
		for j := 0; j < n; j++ {
			d := del.At(nclust+i, j)
			if d > 0 {
				hasdel.Set(1, i, j)
			}
			delval.Set(deletionValue(d), i, j)
		}
	}
	out["extra_has_deletion"] = hasdel
	out["extra_deletion_value"] = delval
	return nil
}

//deletionValue squashes a deletion count into [0, 1).
func deletionValue(d float64) float64 {
	return 2 / math.Pi * math.Atan(d/3)
}

//templateFeatures processes the raw template features: the HHblits one-hot
//is converted into residue types, and pseudo-beta atoms are computed.
func templateFeatures(raw tensor.FeatureMap) (tensor.FeatureMap, error) {
	aa := raw["template_aatype"]
	pos, okp := raw["template_all_atom_positions"]
	mask, okm := raw["template_all_atom_masks"]
	if !okp || !okm || aa.Rank() != 3 {
		return nil, inconsistent("templateFeatures", "incomplete template features")
	}
	t, n := aa.Dim(0), aa.Dim(1)
	if pos.Dim(0) != t || pos.Dim(1) != n || mask.Dim(0) != t || mask.Dim(1) != n {
		return nil, inconsistent("templateFeatures", "template features of different sizes")
	}
	types := tensor.Zeros(t, n)
	pb := tensor.Zeros(t, n, 3)
	pbmask := tensor.Zeros(t, n)
	for i := 0; i < t; i++ {
		onehot := aa.Row(i)
		for j := 0; j < n; j++ {
			restype := afprep.HHblitsToRestype(argmax(onehot.Row(j).Data()))
			types.Set(float64(restype), i, j)
			slot := afprep.AtomCB
			if restype == afprep.RestypeIndex('G') {
				slot = afprep.AtomCA
			}
			for k := 0; k < 3; k++ {
				pb.Set(pos.At(i, j, slot, k), i, j, k)
			}
			pbmask.Set(mask.At(i, j, slot), i, j)
		}
	}
	return tensor.FeatureMap{
		"template_aatype":             types,
		"template_all_atom_masks":     mask.Copy(),
		"template_all_atom_positions": pos.Copy(),
		"template_mask":               tensor.Ones(t),
		"template_pseudo_beta":        pb,
		"template_pseudo_beta_mask":   pbmask,
		"template_sum_probs":          tensor.Zeros(t, 1),
	}, nil
}
