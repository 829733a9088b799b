/*
 * design_test.go, part of afprep.
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
	"errors"
	"testing"

	"github.com/rmera/afprep"
	"github.com/rmera/afprep/features"
	"github.com/rmera/afprep/tensor"
	"gonum.org/v1/gonum/floats"
)

const (
	singlePDB  = "../testdata/chainA20.pdb"
	complexPDB = "../testdata/complex.pdb"
)

//counter is a Restarter that counts its calls.
type counter struct {
	n int
}

func (c *counter) Restart(m *Model) { c.n++ }

func newTestModel(mopts ModelOptions) (*Model, *counter) {
	c := new(counter)
	return NewModel(nil, features.BasicRunner{}, c, mopts, nil), c
}

func checkShape(Te *testing.T, t *tensor.Tensor, shape ...int) {
	Te.Helper()
	if t == nil {
		Te.Fatalf("missing tensor, expected shape %v", shape)
	}
	sh := t.Shape()
	if len(sh) != len(shape) {
		Te.Fatalf("shape %v, expected %v", sh, shape)
	}
	for i := range sh {
		if sh[i] != shape[i] {
			Te.Fatalf("shape %v, expected %v", sh, shape)
		}
	}
}

func checkWeights(Te *testing.T, o *Options, w map[string]float64) {
	Te.Helper()
	for k, v := range w {
		if got, ok := o.Weights[k]; !ok || got != v {
			Te.Errorf("weight %s is %v (set: %v), expected %v", k, got, ok, v)
		}
	}
}

func TestFixBBSingleCopy(Te *testing.T) {
	m, c := newTestModel(ModelOptions{})
	if err := m.Prep(FixBB{File: singlePDB, Chains: "A"}); err != nil {
		Te.Fatal(err)
	}
	ri := m.Inputs["residue_index"]
	checkShape(Te, ri, 1, 20)
	for i := 0; i < 20; i++ {
		if ri.At(0, i) != float64(i+1) {
			Te.Fatalf("residue_index %v is not the native numbering", ri.Data())
		}
	}
	checkWeights(Te, m.Opt, map[string]float64{"dgram_cce": 1, "rmsd": 0, "con": 0, "fape": 0})
	if _, ok := m.Opt.Weights["i_pae"]; ok {
		Te.Error("single copy designs have no interface weights")
	}
	if c.n != 1 || m.Protocol != "fixbb" || m.Len != 20 || len(m.WtAatype) != 20 {
		Te.Errorf("unexpected state: %d restarts, protocol %s, length %d", c.n, m.Protocol, m.Len)
	}
	checkShape(Te, m.Batch["all_atom_positions"], 20, 37, 3)
	//the snapshot is not affected by changes to the live options.
	m.Opt.Weight("con", 5)
	if m.Snapshot().Weight("con") != 0 {
		Te.Error("the snapshot changed with the live options")
	}
	m.Reset()
	if m.Opt.Weight("con") != 0 {
		Te.Error("Reset didn't restore the snapshot")
	}
}

func TestFixBBCopies(Te *testing.T) {
	m, _ := newTestModel(ModelOptions{})
	if err := m.Prep(FixBB{File: singlePDB, Copies: 2}); err != nil {
		Te.Fatal(err)
	}
	ri := m.Inputs["residue_index"].Data()
	if len(ri) != 40 || ri[0] != 1 || ri[19] != 20 || ri[20] != 20+afprep.ChainGap+1 {
		Te.Errorf("unexpected replicated residue index %v", ri)
	}
	checkShape(Te, m.Inputs["aatype"], 1, 40)
	checkShape(Te, m.Batch["aatype"], 40)
	if floats.Sum(m.Inputs["seq_mask"].Data()) != 40 || floats.Sum(m.Inputs["msa_mask"].Data()) != 40 {
		Te.Error("masks should cover both copies")
	}
	checkWeights(Te, m.Opt, map[string]float64{"dgram_cce": 1, "i_pae": 0.01, "i_con": 0})
	if m.Len != 20 || m.Copies != 2 || len(m.WtAatype) != 20 {
		Te.Errorf("length %d, copies %d", m.Len, m.Copies)
	}
}

func TestFixBBRepeatAndHomooligomer(Te *testing.T) {
	m, _ := newTestModel(ModelOptions{})
	if err := m.Prep(FixBB{File: singlePDB, Copies: 2, Repeat: true}); err != nil {
		Te.Fatal(err)
	}
	if m.Len != 10 || !m.Repeat {
		Te.Errorf("repeat design of length %d", m.Len)
	}
	ri := m.Inputs["residue_index"]
	checkShape(Te, ri, 1, 20)
	if ri.At(0, 0) != 0 || ri.At(0, 19) != 19 {
		Te.Errorf("repeat proteins keep the default numbering, got %v", ri.Data())
	}
	if _, ok := m.Opt.Weights["i_pae"]; ok {
		Te.Error("repeat proteins have no interface weights")
	}
	if err := m.Prep(FixBB{File: singlePDB, Copies: 2, Homooligomer: true}); err != nil {
		Te.Fatal(err)
	}
	if m.Len != 10 || m.Inputs["residue_index"].At(0, 0) != 1 {
		Te.Errorf("homooligomer of length %d, numbering %v", m.Len, m.Inputs["residue_index"].Data())
	}
	checkWeights(Te, m.Opt, map[string]float64{"i_pae": 0.01, "i_con": 0})
}

func TestFixBBBlockDiag(Te *testing.T) {
	m, _ := newTestModel(ModelOptions{NumSeq: 1})
	if err := m.Prep(FixBB{File: singlePDB, Copies: 2, BlockDiag: true}); err != nil {
		Te.Fatal(err)
	}
	if !m.BlockDiag || m.Config.MaxMsaClusters != 3 {
		Te.Fatalf("block diagonal MSA not set up: %v, %d clusters", m.BlockDiag, m.Config.MaxMsaClusters)
	}
	mask := m.Inputs["msa_mask"]
	checkShape(Te, mask, 1, 3, 40)
	for j := 0; j < 40; j++ {
		first := 0.0
		if j < 20 {
			first = 1
		}
		if mask.At(0, 0, j) != 1 || mask.At(0, 1, j) != first || mask.At(0, 2, j) != 1-first {
			Te.Fatalf("wrong block mask at residue %d", j)
		}
	}
}

//TestFixBBHomooligomerBlockDiag has all the copies in the structure, so the
//blocks are as long as one chain.
func TestFixBBHomooligomerBlockDiag(Te *testing.T) {
	m, _ := newTestModel(ModelOptions{NumSeq: 1})
	if err := m.Prep(FixBB{File: singlePDB, Copies: 2, Homooligomer: true, BlockDiag: true}); err != nil {
		Te.Fatal(err)
	}
	if !m.BlockDiag || m.Len != 10 {
		Te.Fatalf("block diagonal homooligomer: %v, length %d", m.BlockDiag, m.Len)
	}
	mask := m.Inputs["msa_mask"]
	checkShape(Te, mask, 1, 3, 20)
	for j := 0; j < 20; j++ {
		first := 0.0
		if j < 10 {
			first = 1
		}
		if mask.At(0, 0, j) != 1 || mask.At(0, 1, j) != first || mask.At(0, 2, j) != 1-first {
			Te.Fatalf("wrong block mask at residue %d", j)
		}
	}
}

func TestBinderHallucination(Te *testing.T) {
	m, _ := newTestModel(ModelOptions{})
	if err := m.Prep(Binder{File: complexPDB, Chains: "A", BinderLen: 10, Hotspot: "5-7"}); err != nil {
		Te.Fatal(err)
	}
	ri := m.Inputs["residue_index"]
	checkShape(Te, ri, 1, 40)
	if ri.At(0, 29) != 34 || ri.At(0, 30) != 34+afprep.ChainGap || ri.At(0, 39) != 34+afprep.ChainGap+9 {
		Te.Errorf("unexpected binder numbering %v", ri.Data())
	}
	checkShape(Te, m.Batch["aatype"], 40)
	checkShape(Te, m.Batch["all_atom_mask"], 40, 37)
	if floats.Sum(m.Inputs["seq_mask"].Data()) != 40 {
		Te.Error("the sequence mask should cover the binder")
	}
	checkWeights(Te, m.Opt, map[string]float64{"con": 0.5, "i_pae": 0.01, "i_con": 0.5})
	if m.TargetLen != 30 || m.BinderLen != 10 || m.Len != 10 || m.Redesign {
		Te.Errorf("target %d, binder %d, length %d", m.TargetLen, m.BinderLen, m.Len)
	}
	if m.Opt.Template.Dropout != 1 {
		Te.Error("without binder template the dropout should be 1")
	}
	if len(m.Hotspot) != 3 || m.Hotspot[0] != 0 || m.Hotspot[2] != 2 {
		Te.Errorf("unexpected hotspot %v", m.Hotspot)
	}
}

func TestBinderRedesign(Te *testing.T) {
	m, _ := newTestModel(ModelOptions{UseTemplates: true})
	err := m.Prep(Binder{File: complexPDB, Chains: "A", BinderChain: "B", UseBinderTemplate: true, SplitTemplates: true})
	if err != nil {
		Te.Fatal(err)
	}
	if m.TargetLen != 30 || m.BinderLen != 10 || len(m.WtAatype) != 10 || !m.Redesign {
		Te.Fatalf("target %d, binder %d, wild type %d", m.TargetLen, m.BinderLen, len(m.WtAatype))
	}
	if m.WtAatype[3] != afprep.RestypeIndex('M') {
		Te.Error("the wild type should be the binder sequence")
	}
	checkWeights(Te, m.Opt, map[string]float64{"dgram_cce": 1, "fape": 0, "rmsd": 0, "con": 0, "i_pae": 0.01, "i_con": 0})
	if m.Opt.Template.Dropout != 0 {
		Te.Error("with binder template the dropout should be 0")
	}
	if m.Config.MaxTemplates != 2 {
		Te.Errorf("split templates need 2 template slots, got %d", m.Config.MaxTemplates)
	}
	pb := m.Inputs["template_pseudo_beta_mask"]
	checkShape(Te, pb, 1, 2, 40)
	if pb.At(0, 0, 0) != 1 || pb.At(0, 0, 35) != 0 || pb.At(0, 1, 0) != 0 || pb.At(0, 1, 35) != 1 {
		Te.Error("the templates were not split into target and binder")
	}
	if ri := m.Inputs["residue_index"]; ri.At(0, 30) != 1+34+afprep.ChainGap {
		Te.Errorf("unexpected numbering %v", ri.Data())
	}
}

func TestHallucinationCopies(Te *testing.T) {
	m, _ := newTestModel(ModelOptions{})
	if err := m.Prep(Hallucination{Length: 10, Copies: 3}); err != nil {
		Te.Fatal(err)
	}
	ri := m.Inputs["residue_index"].Data()
	if len(ri) != 30 {
		Te.Fatalf("expected 30 residues, got %d", len(ri))
	}
	for b := 0; b < 3; b++ {
		for i := 0; i < 10; i++ {
			if j := b*10 + i; i > 0 && ri[j]-ri[j-1] != 1 {
				Te.Errorf("block %d is not contiguous", b)
			}
		}
		if b > 0 && ri[b*10]-ri[b*10-1] != 50 {
			Te.Errorf("gap of %v between blocks %d and %d", ri[b*10]-ri[b*10-1], b-1, b)
		}
	}
	checkWeights(Te, m.Opt, map[string]float64{"con": 1, "i_pae": 0.01, "i_con": 0.1})
	if m.Batch != nil {
		Te.Error("hallucination has no ground truth")
	}
	if err := m.Prep(Hallucination{Length: 10, Copies: 3, Repeat: true}); err != nil {
		Te.Fatal(err)
	}
	ri = m.Inputs["residue_index"].Data()
	if ri[10]-ri[9] != 1 {
		Te.Error("repeat units should be contiguous")
	}
	if _, ok := m.Opt.Weights["i_con"]; ok {
		Te.Error("each Prep should start from the base options")
	}
}

func TestHallucinationBlockDiag(Te *testing.T) {
	m, _ := newTestModel(ModelOptions{NumSeq: 2})
	if err := m.Prep(Hallucination{Length: 5, Copies: 2, BlockDiag: true}); err != nil {
		Te.Fatal(err)
	}
	checkShape(Te, m.Inputs["msa"], 1, 6, 10)
	if floats.Sum(m.Inputs["msa_row_mask"].Data()) != 6 {
		Te.Error("every block row should be active")
	}
	mask := m.Inputs["msa_mask"]
	if mask.At(0, 2, 0) != 1 || mask.At(0, 2, 5) != 0 || mask.At(0, 4, 0) != 0 || mask.At(0, 5, 9) != 1 {
		Te.Error("wrong block-diagonal mask")
	}
}

func TestPartial(Te *testing.T) {
	m, _ := newTestModel(ModelOptions{})
	if err := m.Prep(Partial{File: singlePDB, Pos: "A3-5,8", Length: 30, UseSidechains: true}); err != nil {
		Te.Fatal(err)
	}
	want := []int{2, 3, 4, 7}
	if len(m.Opt.Pos) != len(want) {
		Te.Fatalf("positions %v, expected %v", m.Opt.Pos, want)
	}
	for i, v := range want {
		if m.Opt.Pos[i] != v {
			Te.Fatalf("positions %v, expected %v", m.Opt.Pos, want)
		}
	}
	if !m.Opt.FixSeq {
		Te.Error("side chains force a fixed sequence")
	}
	checkShape(Te, m.Batch["aatype"], 4)
	checkShape(Te, m.Batch["atom14_gt_positions"], 4, 14, 3)
	checkShape(Te, m.Batch["pseudo_beta"], 4, 3)
	checkShape(Te, m.Inputs["aatype"], 1, 30)
	checkWeights(Te, m.Opt, map[string]float64{"dgram_cce": 1, "con": 1, "fape": 0, "rmsd": 0, "sc_rmsd": 0.1, "sc_fape": 0.1})
	if m.Len != 30 || len(m.WtAatype) != 4 {
		Te.Errorf("length %d, wild type %v", m.Len, m.WtAatype)
	}
	if err := m.Prep(Partial{File: singlePDB}); err != nil {
		Te.Fatal(err)
	}
	if len(m.Opt.Pos) != 20 || !m.Opt.FixSeq {
		Te.Errorf("all positions with a fixed sequence expected, got %v, %v", m.Opt.Pos, m.Opt.FixSeq)
	}
	if _, ok := m.Opt.Weights["sc_fape"]; ok {
		Te.Error("no side chain weights expected")
	}
	if err := m.Prep(Partial{File: singlePDB, FreeSeq: true}); err != nil {
		Te.Fatal(err)
	}
	if m.Opt.FixSeq {
		Te.Error("FreeSeq should let the sequence change")
	}
	if err := m.Prep(Partial{File: singlePDB, FreeSeq: true, UseSidechains: true}); err != nil {
		Te.Fatal(err)
	}
	if !m.Opt.FixSeq {
		Te.Error("side chains force a fixed sequence")
	}
}

func TestPrepFailures(Te *testing.T) {
	cfg := features.DefaultConfig()
	c := new(counter)
	m := NewModel(cfg, features.BasicRunner{}, c, ModelOptions{UseTemplates: true}, nil)
	if err := m.Prep(FixBB{File: singlePDB}); err != nil {
		Te.Fatal(err)
	}
	if cfg.MaxTemplates != 0 {
		Te.Error("the caller's configuration was modified")
	}
	inputs := m.Inputs
	cases := []struct {
		p    Protocol
		kind error
	}{
		{FixBB{File: "../testdata/nothere.pdb"}, afprep.ErrStructureNotFound},
		{FixBB{File: singlePDB, Chains: "Q"}, afprep.ErrChainNotFound},
		{Partial{File: singlePDB, Pos: "A100"}, ErrConfigurationInconsistent},
		{Partial{File: singlePDB, Length: 2}, ErrConfigurationInconsistent},
		{Binder{File: complexPDB, Chains: "A"}, ErrConfigurationInconsistent},
		{Hallucination{}, ErrConfigurationInconsistent},
		{&FixBB{}, ErrConfigurationInconsistent},
	}
	for _, v := range cases {
		err := m.Prep(v.p)
		if !errors.Is(err, v.kind) {
			Te.Errorf("%s: expected %v, got %v", v.p.Name(), v.kind, err)
		}
		var e afprep.Error
		if !errors.As(err, &e) || !e.Critical() || len(e.Decorate("")) == 0 {
			Te.Errorf("%s: %v should be a critical, decorated afprep.Error", v.p.Name(), err)
		}
	}
	if c.n != 1 || m.Protocol != "fixbb" || m.Inputs["aatype"] != inputs["aatype"] {
		Te.Error("failed preps changed the model")
	}
}

func TestRepeatIdx(Te *testing.T) {
	got := RepeatIdx([]int{1, 2, 3}, 3, 50)
	want := []int{1, 2, 3, 54, 55, 56, 107, 108, 109}
	if len(got) != len(want) {
		Te.Fatalf("got %v, expected %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			Te.Fatalf("got %v, expected %v", got, want)
		}
	}
	if r := RepeatIdx([]int{0, 1}, 1, 50); len(r) != 2 || r[1] != 1 {
		Te.Errorf("one copy should be unchanged, got %v", r)
	}
}

func TestPrepPos(Te *testing.T) {
	residue := []int{1, 2, 3, 4, 1, 2, 3}
	chain := []string{"A", "A", "A", "A", "B", "B", "B"}
	info, err := PrepPos("A2-3,B1,4", residue, chain)
	if err != nil {
		Te.Fatal(err)
	}
	want := []int{1, 2, 4, 3}
	for i, v := range want {
		if info.Pos[i] != v {
			Te.Fatalf("positions %v, expected %v", info.Pos, want)
		}
	}
	if len(info.Length) != 3 || info.Length[0] != 2 || info.Chain[2] != "B" {
		Te.Errorf("unexpected position info %+v", info)
	}
	//negative residue numbers, with and without a chain.
	neg := []int{-2, -1, 0, 1, -2, -1}
	negChain := []string{"A", "A", "A", "A", "B", "B"}
	for _, v := range []struct {
		pos  string
		want []int
	}{
		{"A-2--1", []int{0, 1}},
		{"-2-0", []int{0, 1, 2}},
		{"B-2", []int{4}},
		{"B-2--1,A1", []int{4, 5, 3}},
	} {
		info, err := PrepPos(v.pos, neg, negChain)
		if err != nil {
			Te.Fatalf("%q: %v", v.pos, err)
		}
		if len(info.Pos) != len(v.want) {
			Te.Fatalf("%q: positions %v, expected %v", v.pos, info.Pos, v.want)
		}
		for i := range v.want {
			if info.Pos[i] != v.want[i] {
				Te.Fatalf("%q: positions %v, expected %v", v.pos, info.Pos, v.want)
			}
		}
	}
	for _, bad := range []string{"", "B4", "C1", "A3-1", "Ax", "A", "A-"} {
		if _, err := PrepPos(bad, residue, chain); !errors.Is(err, ErrConfigurationInconsistent) {
			Te.Errorf("%q: expected ErrConfigurationInconsistent, got %v", bad, err)
		}
	}
}
