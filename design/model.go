/*
 * model.go, part of afprep.
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
	"log"

	"github.com/rmera/afprep"
	"github.com/rmera/afprep/features"
	"github.com/rmera/afprep/tensor"
)

//Restarter is the design loop. Restart is called at the end of every successful
//Model.Prep, and can read the prepared state from the Model.
type Restarter interface {
	Restart(m *Model)
}

//NopRestarter is a Restarter that does nothing.
type NopRestarter struct{}

//Restart does nothing.
func (n NopRestarter) Restart(m *Model) {}

//ModelOptions are the options set when a Model is created.
type ModelOptions struct {
	UseTemplates bool
	NumSeq       int //sequences in the designed MSA. 1 if 0.
}

//Model prepares the inputs of design runs. The exported fields hold the state
//prepared by the last successful call to Prep.
type Model struct {
	cfg       *features.Config
	runner    features.Runner
	restarter Restarter
	assembler features.Assembler
	baseOpt   *Options
	snapshot  *Options

	Protocol string
	Config   *features.Config //configuration the inputs were built with.
	Inputs   tensor.FeatureMap
	Batch    tensor.FeatureMap //ground truth, nil for hallucination.
	Opt      *Options          //live design options.
	WtAatype []int             //residue types of the designed region in the input structure.

	Len       int //length of the designed protein.
	Copies    int
	TargetLen int
	BinderLen int
	Hotspot   []int
	PosInfo   *PosInfo

	Repeat        bool
	BlockDiag     bool
	Redesign      bool
	UseSidechains bool
}

//NewModel returns a Model that builds its inputs with runner, from a copy of cfg, and hands
//them to restarter. cfg and restarter can be nil, in which case features.DefaultConfig
//and NopRestarter are used. opt are the options every Prep starts from, DefaultOptions if nil.
func NewModel(cfg *features.Config, runner features.Runner, restarter Restarter, mopts ModelOptions, opt *Options) *Model {
	if cfg == nil {
		cfg = features.DefaultConfig()
	}
	if restarter == nil {
		restarter = NopRestarter{}
	}
	if opt == nil {
		opt = DefaultOptions()
	}
	if mopts.NumSeq < 1 {
		mopts.NumSeq = 1
	}
	base := cfg.Copy()
	base.MaxMsaClusters = mopts.NumSeq + base.MaxTemplates
	return &Model{
		cfg:       base,
		runner:    runner,
		restarter: restarter,
		assembler: features.Assembler{UseTemplates: mopts.UseTemplates, NumSeq: mopts.NumSeq},
		baseOpt:   opt.Copy(),
	}
}

//Snapshot returns a copy of the options as they were when the last Prep finished.
func (m *Model) Snapshot() *Options {
	if m.snapshot == nil {
		return nil
	}
	return m.snapshot.Copy()
}

//Reset sets the live options back to the snapshot taken by the last Prep.
func (m *Model) Reset() {
	if m.snapshot != nil {
		m.Opt = m.snapshot.Copy()
	}
}

//prep is the state being assembled by Prep. It is only committed to the Model
//when assembly succeeds.
type prep struct {
	m         *Model
	cfg       *features.Config
	opt       *Options
	inputs    tensor.FeatureMap
	batch     tensor.FeatureMap
	wt        []int
	length    int
	copies    int
	target    int
	binderLen int
	hotspot   []int
	posinfo   *PosInfo
	repeat    bool
	blockd    bool
	redesign  bool
	sc        bool
}

//Prep prepares the inputs for the protocol p, snapshots the design options and restarts
//the design loop. If Prep fails, the state of the Model is not changed.
func (m *Model) Prep(p Protocol) error {
	if err := p.check(); err != nil {
		return err
	}
	s := &prep{m: m, cfg: m.cfg.Copy(), opt: m.baseOpt.Copy(), copies: 1}
	var err error
	switch p := p.(type) {
	case FixBB:
		err = s.fixbb(p)
	case *FixBB:
		err = s.fixbb(*p)
	case Binder:
		err = s.binder(p)
	case *Binder:
		err = s.binder(*p)
	case Hallucination:
		err = s.hallucination(p)
	case *Hallucination:
		err = s.hallucination(*p)
	case Partial:
		err = s.partial(p)
	case *Partial:
		err = s.partial(*p)
	default:
		err = inconsistent("Prep", "unknown protocol %s", p.Name())
	}
	if err != nil {
		return err
	}
	m.Protocol = p.Name()
	m.Config = s.cfg
	m.Inputs = s.inputs
	m.Batch = s.batch
	m.WtAatype = s.wt
	m.Len, m.Copies, m.TargetLen, m.BinderLen = s.length, s.copies, s.target, s.binderLen
	m.Hotspot = s.hotspot
	m.PosInfo = s.posinfo
	m.Repeat, m.BlockDiag, m.Redesign, m.UseSidechains = s.repeat, s.blockd, s.redesign, s.sc
	m.Opt = s.opt
	m.snapshot = s.opt.Copy()
	log.Printf("Prep: %s protocol ready, %d residues designed", m.Protocol, m.Len)
	m.restarter.Restart(m)
	return nil
}

//load reads the chains of a structure file, with template features if the model uses templates.
func (s *prep) load(file, chains string) (*afprep.Structure, error) {
	opts := afprep.DefaultLoadOptions()
	opts.Templates(s.m.assembler.UseTemplates)
	return afprep.Load(file, chains, opts)
}

//build builds the placeholder inputs, using the template features of S, if any.
func (s *prep) build(length, copies, numTemplates int, templates tensor.FeatureMap) (tensor.FeatureMap, error) {
	if !s.m.assembler.UseTemplates {
		templates = nil
	}
	return s.m.assembler.Build(s.cfg, s.m.runner, length, copies, numTemplates, templates)
}

//pad pads the inputs (with the ensemble axis) and the batch to length residues.
func (s *prep) pad(length int) error {
	var err error
	if s.inputs, err = tensor.MakeFixedSize(s.inputs, s.cfg.Feat, s.cfg.Sizes(), length, true); err != nil {
		return err
	}
	if s.batch != nil {
		s.batch, err = tensor.MakeFixedSize(s.batch, s.cfg.Feat, s.cfg.Sizes(), length, false)
	}
	return err
}

//setResidueIndex puts idx as the residue index of the inputs.
func (s *prep) setResidueIndex(idx []int) {
	s.inputs["residue_index"] = tensor.FromInts(idx).ExpandDims()
}

//onesMasks sets the sequence and MSA masks of the inputs to ones.
func (s *prep) onesMasks() {
	for _, k := range []string{"seq_mask", "msa_mask"} {
		if v, ok := s.inputs[k]; ok {
			s.inputs[k] = v.OnesLike()
		}
	}
}

//blockDiag sizes the MSA for block-diagonal augmentation if it applies, and returns whether it does.
func (s *prep) blockDiag(blockDiag, repeat bool, copies int) bool {
	if !blockDiag || repeat || copies < 2 {
		return false
	}
	if s.m.assembler.UseTemplates {
		log.Printf("blockDiag: the MSA is sized for the templates, block-diagonal MSA disabled")
		return false
	}
	s.cfg.MaxMsaClusters = s.m.assembler.NumSeq * (1 + copies)
	return true
}

func (s *prep) fixbb(p FixBB) error {
	s.copies = copies(p.Copies)
	s.repeat = p.Repeat
	s.blockd = s.blockDiag(p.BlockDiag, p.Repeat, s.copies)
	S, err := s.load(p.File, p.Chains)
	if err != nil {
		return err
	}
	s.batch = S.BatchFeatures()
	s.length = S.Len()
	if s.inputs, err = s.build(s.length, 1, 1, S.Templates); err != nil {
		return err
	}
	s.opt.SetWeights(map[string]float64{"dgram_cce": 1, "rmsd": 0, "con": 0, "fape": 0})
	switch {
	case s.copies == 1:
		s.setResidueIndex(S.ResidueIndex)
	case p.Repeat:
		s.length /= s.copies
	case p.Homooligomer:
		s.length /= s.copies
		s.setResidueIndex(S.ResidueIndex)
	default:
		if err := s.pad(s.length * s.copies); err != nil {
			return err
		}
		s.setResidueIndex(RepeatIdx(S.ResidueIndex, s.copies, afprep.ChainGap))
		s.onesMasks()
	}
	if s.copies > 1 && !p.Repeat {
		s.opt.SetWeights(map[string]float64{"i_pae": 0.01, "i_con": 0})
	}
	if s.blockd {
		if s.inputs, err = BlockDiag(s.inputs, s.m.assembler.NumSeq, s.length, s.copies); err != nil {
			return err
		}
	}
	s.wt = S.Batch.Aatype[:s.length]
	return nil
}

func (s *prep) binder(p Binder) error {
	s.redesign = p.BinderChain != ""
	if p.UseBinderTemplate {
		s.opt.Template.Dropout = 0
	} else {
		s.opt.Template.Dropout = 1
	}
	chains := p.Chains
	if s.redesign {
		chains = p.Chains + "," + p.BinderChain
	}
	S, err := s.load(p.File, chains)
	if err != nil {
		return err
	}
	if p.Hotspot != "" {
		info, err := PrepPos(p.Hotspot, S.Idx.Residue, S.Idx.Chain)
		if err != nil {
			return err
		}
		s.hotspot = info.Pos
	}
	if s.redesign {
		binderChains := afprep.ParseChains(p.BinderChain)
		for _, c := range S.Idx.Chain {
			if contains(binderChains, c) {
				s.binderLen++
			} else {
				s.target++
			}
		}
		numTemplates := 1
		templates := S.Templates
		if p.SplitTemplates {
			numTemplates = 2
			if templates != nil {
				if templates, err = splitTemplates(templates, s.target); err != nil {
					return err
				}
			}
		}
		if s.inputs, err = s.build(s.target+s.binderLen, 1, numTemplates, templates); err != nil {
			return err
		}
		s.setResidueIndex(S.ResidueIndex)
		s.batch = S.BatchFeatures()
		s.wt = S.Batch.Aatype[s.target:]
		s.opt.SetWeights(map[string]float64{"dgram_cce": 1, "fape": 0, "rmsd": 0, "con": 0, "i_pae": 0.01, "i_con": 0})
	} else {
		s.target = S.Len()
		s.binderLen = p.BinderLen
		if s.inputs, err = s.build(s.target, 1, 1, S.Templates); err != nil {
			return err
		}
		s.setResidueIndex(S.ResidueIndex)
		s.batch = S.BatchFeatures()
		if err := s.pad(s.target + s.binderLen); err != nil {
			return err
		}
		idx := append([]int(nil), S.ResidueIndex...)
		last := idx[len(idx)-1]
		for i := 0; i < s.binderLen; i++ {
			idx = append(idx, last+i+afprep.ChainGap)
		}
		s.setResidueIndex(idx)
		s.onesMasks()
		s.opt.SetWeights(map[string]float64{"con": 0.5, "i_pae": 0.01, "i_con": 0.5})
	}
	s.length = s.binderLen
	return nil
}

func (s *prep) hallucination(p Hallucination) error {
	s.copies = copies(p.Copies)
	s.repeat = p.Repeat
	s.blockd = s.blockDiag(p.BlockDiag, p.Repeat, s.copies)
	s.length = p.Length
	var err error
	if s.inputs, err = s.build(p.Length*s.copies, s.copies, 1, nil); err != nil {
		return err
	}
	s.opt.Weight("con", 1)
	if s.copies > 1 {
		offset := 1
		if !p.Repeat {
			offset = afprep.ChainGap
			s.opt.SetWeights(map[string]float64{"i_pae": 0.01, "i_con": 0.1})
		}
		idx := make([]int, p.Length)
		for i := range idx {
			idx[i] = i
		}
		s.setResidueIndex(RepeatIdx(idx, s.copies, offset))
	}
	if s.blockd {
		if s.inputs, err = BlockDiag(s.inputs, s.m.assembler.NumSeq, p.Length, s.copies); err != nil {
			return err
		}
	}
	return nil
}

func (s *prep) partial(p Partial) error {
	s.sc = p.UseSidechains
	s.opt.FixSeq = !p.FreeSeq || p.UseSidechains
	S, err := s.load(p.File, p.Chains)
	if err != nil {
		return err
	}
	B := S.Batch
	frames := S.Frames
	if p.Pos == "" {
		s.opt.Pos = make([]int, S.Len())
		for i := range s.opt.Pos {
			s.opt.Pos[i] = i
		}
	} else {
		if s.posinfo, err = PrepPos(p.Pos, S.Idx.Residue, S.Idx.Chain); err != nil {
			return err
		}
		s.opt.Pos = append([]int(nil), s.posinfo.Pos...)
		B = B.Rows(s.posinfo.Pos)
		frames = make(tensor.FeatureMap, len(S.Frames))
		for k, v := range S.Frames {
			frames[k] = v.Rows(s.posinfo.Pos)
		}
	}
	s.batch = B.Features().Merge(frames)
	s.wt = append([]int(nil), B.Aatype...)
	if p.UseSidechains {
		s.batch.Merge(afprep.MakeAtom14Positions(B))
	}
	s.length = S.Len()
	if p.Length > 0 {
		s.length = p.Length
	}
	if s.length < B.Len() {
		return inconsistent("Partial", "%d residues can't hold the %d kept positions", s.length, B.Len())
	}
	var templates tensor.FeatureMap
	if S.Templates != nil && s.length == S.Len() {
		templates = S.Templates
	} else if S.Templates != nil {
		log.Printf("Partial: design length %d differs from the structure (%d residues), template slots left empty", s.length, S.Len())
	}
	if s.inputs, err = s.build(s.length, 1, 1, templates); err != nil {
		return err
	}
	w := map[string]float64{"dgram_cce": 1, "con": 1, "fape": 0, "rmsd": 0}
	if p.UseSidechains {
		w["sc_rmsd"] = 0.1
		w["sc_fape"] = 0.1
	}
	s.opt.SetWeights(w)
	return nil
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

//splitTemplates turns the single template of a target and its binder into two templates:
//the first with only the target residues, the second with only the binder ones.
func splitTemplates(t tensor.FeatureMap, target int) (tensor.FeatureMap, error) {
	ret := make(tensor.FeatureMap, len(t))
	for k, v := range t {
		if k == "template_domain_names" {
			ret[k] = tensor.Zeros(2)
			continue
		}
		one := v.Row(0)
		n := one.Dim(0)
		tgt := one.Copy()
		bnd := one.Copy()
		rs := one.Size() / n
		for i := 0; i < n; i++ {
			zero := bnd
			if i >= target {
				zero = tgt
			}
			d := zero.Data()[i*rs : (i+1)*rs]
			for j := range d {
				d[j] = 0
			}
		}
		var err error
		if ret[k], err = tensor.Concat(tgt.ExpandDims(), bnd.ExpandDims()); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
