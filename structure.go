/*
 * structure.go, part of afprep.
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
	"fmt"
	"log"
	"strings"

	"github.com/rmera/afprep/tensor"
)

//ChainGap is the offset added between the last residue index of a chain and
//the first index of the next one. It marks chain breaks for the predictor.
const ChainGap = 50

//AtomBatch holds the per-residue types and atom37 coordinates for a set of residues.
//Positions has shape [N,37,3] and Mask has shape [N,37], with 1 for resolved atoms.
type AtomBatch struct {
	Aatype    []int
	Positions *tensor.Tensor
	Mask      *tensor.Tensor
}

//NewAtomBatch returns a batch of n residues of unknown type with no resolved atoms.
func NewAtomBatch(n int) *AtomBatch {
	B := &AtomBatch{
		Aatype:    make([]int, n),
		Positions: tensor.Zeros(n, AtomTypeNum, 3),
		Mask:      tensor.Zeros(n, AtomTypeNum),
	}
	for i := range B.Aatype {
		B.Aatype[i] = RestypeUnknown
	}
	return B
}

//batchFromResidues builds an AtomBatch from parsed residues.
func batchFromResidues(res []*Residue) *AtomBatch {
	B := NewAtomBatch(len(res))
	for i, r := range res {
		B.Aatype[i] = RestypeIndex(ResidueLetter(r.Name))
		for j := 0; j < AtomTypeNum; j++ {
			if !r.Mask[j] {
				continue
			}
			B.SetAtom(i, j, r.Positions[j])
		}
	}
	return B
}

//Len returns the number of residues in the batch.
func (B *AtomBatch) Len() int {
	return len(B.Aatype)
}

//Atom returns the position of the atom in the slot of the ith residue,
//and whether that atom is resolved.
func (B *AtomBatch) Atom(i, slot int) ([3]float64, bool) {
	var c [3]float64
	for k := range c {
		c[k] = B.Positions.At(i, slot, k)
	}
	return c, B.Mask.At(i, slot) != 0
}

//SetAtom puts the atom in the slot of the ith residue in c, and marks it as resolved.
func (B *AtomBatch) SetAtom(i, slot int, c [3]float64) {
	for k, v := range c {
		B.Positions.Set(v, i, slot, k)
	}
	B.Mask.Set(1, i, slot)
}

//Resolved returns true if the atom in the slot of the ith residue is resolved.
func (B *AtomBatch) Resolved(i, slot int) bool {
	return B.Mask.At(i, slot) != 0
}

//Rows returns a new batch with the residues of B with the indexes in idx, in that order.
func (B *AtomBatch) Rows(idx []int) *AtomBatch {
	aa := make([]int, len(idx))
	for i, v := range idx {
		aa[i] = B.Aatype[v]
	}
	return &AtomBatch{Aatype: aa, Positions: B.Positions.Rows(idx), Mask: B.Mask.Rows(idx)}
}

//Copy returns a deep copy of B.
func (B *AtomBatch) Copy() *AtomBatch {
	return &AtomBatch{
		Aatype:    append([]int(nil), B.Aatype...),
		Positions: B.Positions.Copy(),
		Mask:      B.Mask.Copy(),
	}
}

//Sequence returns the 1-letter sequence of the batch.
func (B *AtomBatch) Sequence() string {
	var s strings.Builder
	for _, v := range B.Aatype {
		s.WriteByte(RestypeLetter(v))
	}
	return s.String()
}

//Features returns the batch as a FeatureMap with the aatype, all_atom_positions
//and all_atom_mask features. The tensors are copies.
func (B *AtomBatch) Features() tensor.FeatureMap {
	return tensor.FeatureMap{
		"aatype":             tensor.FromInts(B.Aatype),
		"all_atom_positions": B.Positions.Copy(),
		"all_atom_mask":      B.Mask.Copy(),
	}
}

//concatBatches joins the batches, in order.
func concatBatches(bs []*AtomBatch) (*AtomBatch, error) {
	ret := &AtomBatch{}
	pos := make([]*tensor.Tensor, 0, len(bs))
	mask := make([]*tensor.Tensor, 0, len(bs))
	for _, b := range bs {
		ret.Aatype = append(ret.Aatype, b.Aatype...)
		pos = append(pos, b.Positions)
		mask = append(mask, b.Mask)
	}
	var err error
	if ret.Positions, err = tensor.Concat(pos...); err != nil {
		return nil, err
	}
	if ret.Mask, err = tensor.Concat(mask...); err != nil {
		return nil, err
	}
	return ret, nil
}

//AddCB puts an ideal CB in every residue of B where the CB is not resolved. The new
//CB is marked as resolved only if N, CA and C are all resolved in the residue.
func (B *AtomBatch) AddCB() {
	for i := 0; i < B.Len(); i++ {
		if B.Resolved(i, AtomCB) {
			continue
		}
		n, okn := B.Atom(i, AtomN)
		ca, okca := B.Atom(i, AtomCA)
		c, okc := B.Atom(i, AtomC)
		cb := ImputeCB(n, ca, c)
		for k, v := range cb {
			B.Positions.Set(v, i, AtomCB, k)
		}
		//the product of the three backbone masks, not any one of them.
		if okn && okca && okc {
			B.Mask.Set(1, i, AtomCB)
		}
	}
}

//Idx keeps the native residue number and the chain of each residue of a Structure.
//It is used for position lookup only.
type Idx struct {
	Residue []int
	Chain   []string
}

//Structure is a set of chains ready to be used as design input.
type Structure struct {
	Batch        *AtomBatch
	Frames       tensor.FeatureMap //per-residue frame features, from the Framer in use.
	ResidueIndex []int             //native numbering, with ChainGap offsets between chains.
	Idx          Idx
	Templates    tensor.FeatureMap //nil unless templates were requested.
}

//Len returns the number of residues in S.
func (S *Structure) Len() int {
	return S.Batch.Len()
}

//Sequence returns the 1-letter sequence of S.
func (S *Structure) Sequence() string {
	return S.Batch.Sequence()
}

//BatchFeatures returns the atom batch of S merged with its frame features.
//The tensors are copies.
func (S *Structure) BatchFeatures() tensor.FeatureMap {
	f := S.Batch.Features()
	return f.Merge(S.Frames.Copy())
}

//LoadOptions contains the options for Load.
type LoadOptions struct {
	templates bool
	framer    Framer
}

//DefaultLoadOptions returns options that don't build template features and
//compute frames with BackboneFrames.
func DefaultLoadOptions() *LoadOptions {
	return &LoadOptions{framer: BackboneFrames{}}
}

//Templates returns whether template features are to be built,
//and sets it to a new value, if given.
func (O *LoadOptions) Templates(t ...bool) bool {
	if len(t) > 0 {
		O.templates = t[0]
	}
	return O.templates
}

//Framer returns the Framer used to compute frame features,
//and sets it to a new value, if a non-nil one is given.
func (O *LoadOptions) Framer(f ...Framer) Framer {
	if len(f) > 0 && f[0] != nil {
		O.framer = f[0]
	}
	return O.framer
}

//Load reads the structure file name and prepares the chains in the comma-separated
//list chains, in the given order. If chains is empty, all chains are used, in the
//order they appear in the file. opts can be nil, in which case DefaultLoadOptions is used.
func Load(name, chains string, opts *LoadOptions) (*Structure, error) {
	raw, err := ReadStructureFile(name)
	if err != nil {
		return nil, errDecorate(err, "Load", name)
	}
	S, err := LoadRaw(raw, chains, opts)
	return S, errDecorate(err, "Load", name)
}

//ParseChains splits a comma-separated chain selector. An empty selector gives nil.
func ParseChains(chains string) []string {
	var ret []string
	for _, c := range strings.Split(chains, ",") {
		if c = strings.TrimSpace(c); c != "" {
			ret = append(ret, c)
		}
	}
	return ret
}

//LoadRaw prepares the chains in the comma-separated list chains from an already-parsed
//structure. See Load.
func LoadRaw(raw *RawStructure, chains string, opts *LoadOptions) (*Structure, error) {
	if opts == nil {
		opts = DefaultLoadOptions()
	}
	sel := ParseChains(chains)
	if len(sel) == 0 {
		sel = raw.Chains()
	}
	if len(sel) == 0 {
		return nil, FileError{"no residues in structure", "", ErrNoResolvedResidues, []string{"LoadRaw"}, true}
	}
	var batches []*AtomBatch
	S := &Structure{}
	last := 0
	for _, chain := range sel {
		res := raw.Chain(chain)
		if len(res) == 0 {
			return nil, FileError{fmt.Sprintf("chain %q has no residues", chain), "", ErrChainNotFound, []string{"LoadRaw"}, true}
		}
		B := batchFromResidues(res)
		B.AddCB()
		var keep []int
		//kept by CA (slot 1). Testing atom37 slot 0 would keep by N instead.
		for i := range res {
			if B.Resolved(i, AtomCA) {
				keep = append(keep, i)
			}
		}
		if len(keep) == 0 {
			log.Printf("LoadRaw: chain %q has no residues with a resolved CA, skipped", chain)
			continue
		}
		batches = append(batches, B.Rows(keep))
		for _, i := range keep {
			S.ResidueIndex = append(S.ResidueIndex, res[i].Number+last)
			S.Idx.Residue = append(S.Idx.Residue, res[i].Number)
			S.Idx.Chain = append(S.Idx.Chain, chain)
		}
		last = S.ResidueIndex[len(S.ResidueIndex)-1] + ChainGap
	}
	if len(batches) == 0 {
		return nil, FileError{fmt.Sprintf("no resolved residues in chains %v", sel), "", ErrNoResolvedResidues, []string{"LoadRaw"}, true}
	}
	var err error
	if S.Batch, err = concatBatches(batches); err != nil {
		return nil, FileError{err.Error(), "", ErrMalformedStructure, []string{"concatBatches", "LoadRaw"}, true}
	}
	if S.Frames, err = opts.Framer().Frames(S.Batch); err != nil {
		return nil, errDecorate(err, "LoadRaw", "")
	}
	if opts.Templates() {
		S.Templates = TemplateFeatures(S.Batch)
	}
	return S, nil
}

//TemplateFeatures returns the features of a single template built from B: the
//HHblits one-hot sequence (template_aatype [1,N,22]), the atom masks and positions,
//and a zero domain name tag.
func TemplateFeatures(B *AtomBatch) tensor.FeatureMap {
	n := B.Len()
	aa := tensor.Zeros(1, n, HHblitsNum)
	for i, v := range B.Aatype {
		aa.Set(1, 0, i, HHblitsID(RestypeLetter(v)))
	}
	return tensor.FeatureMap{
		"template_aatype":             aa,
		"template_all_atom_masks":     B.Mask.ExpandDims(),
		"template_all_atom_positions": B.Positions.ExpandDims(),
		"template_domain_names":       tensor.Zeros(1),
	}
}
