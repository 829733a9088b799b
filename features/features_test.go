/*
 * features_test.go, part of afprep.
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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/afprep"
	"github.com/rmera/afprep/tensor"
	"gonum.org/v1/gonum/floats"
)

func checkShape(Te *testing.T, f tensor.FeatureMap, name string, shape ...int) {
	Te.Helper()
	t, ok := f[name]
	if !ok {
		Te.Errorf("feature %s missing", name)
		return
	}
	if !equalShapes(t.Shape(), shape) {
		Te.Errorf("feature %s has shape %v, expected %v", name, t.Shape(), shape)
	}
}

func TestMakeSequenceFeatures(Te *testing.T) {
	f, err := MakeSequenceFeatures("AZG", "test", 3)
	if err != nil {
		Te.Fatal(err)
	}
	checkShape(Te, f, "aatype", 3, 21)
	if f["aatype"].At(0, 0) != 1 || f["aatype"].At(1, afprep.RestypeUnknown) != 1 || f["aatype"].At(2, afprep.RestypeIndex('G')) != 1 {
		Te.Errorf("wrong one-hot %v", f["aatype"])
	}
	if !floats.Equal(f["residue_index"].Data(), []float64{0, 1, 2}) {
		Te.Errorf("wrong residue_index %v", f["residue_index"].Data())
	}
	if _, err := MakeSequenceFeatures("AA", "test", 3); !errors.Is(err, ErrConfigurationInconsistent) {
		Te.Errorf("expected ErrConfigurationInconsistent, got %v", err)
	}
}

func TestMakeMsaFeatures(Te *testing.T) {
	zeros := [][]int{{0, 0, 0}, {0, 0, 0}, {0, 1, 0}}
	f, err := MakeMsaFeatures([][]string{{"ACD", "ACD", "A-D"}}, [][][]int{zeros})
	if err != nil {
		Te.Fatal(err)
	}
	//the repeated sequence is dropped.
	checkShape(Te, f, "msa", 2, 3)
	if !floats.Equal(f["msa"].Data(), []float64{0, 1, 2, 0, 21, 2}) {
		Te.Errorf("wrong HHblits encoding %v", f["msa"].Data())
	}
	if f["deletion_matrix_int"].At(1, 1) != 1 {
		Te.Error("the deletion row should follow its sequence")
	}
	if _, err := MakeMsaFeatures([][]string{{"ACD", "AC"}}, [][][]int{zeros}); !errors.Is(err, ErrConfigurationInconsistent) {
		Te.Errorf("expected ErrConfigurationInconsistent, got %v", err)
	}
}

func TestBuildNoTemplates(Te *testing.T) {
	cfg := DefaultConfig()
	in, err := Assembler{NumSeq: 1}.Build(cfg, BasicRunner{}, 10, 1, 0, nil)
	if err != nil {
		Te.Fatal(err)
	}
	checkShape(Te, in, "aatype", 1, 10)
	checkShape(Te, in, "residue_index", 1, 10)
	checkShape(Te, in, "seq_length", 1)
	checkShape(Te, in, "target_feat", 1, 10, 22)
	checkShape(Te, in, "msa", 1, 1, 10)
	checkShape(Te, in, "msa_feat", 1, 1, 10, 49)
	checkShape(Te, in, "extra_msa", 1, 1, 10)
	checkShape(Te, in, "extra_msa_row_mask", 1, 1)
	checkShape(Te, in, "atom14_atom_exists", 1, 10, 14)
	if _, ok := in["template_aatype"]; ok {
		Te.Error("no template features expected")
	}
	for i := 0; i < 10; i++ {
		if in["residue_index"].At(0, i) != float64(i) || in["aatype"].At(0, i) != 0 {
			Te.Fatalf("residue %d is not a numbered alanine", i)
		}
	}
	//the placeholder MSA holds no extra rows.
	if floats.Sum(in["extra_msa_row_mask"].Data()) != 0 {
		Te.Error("extra MSA rows should be padding")
	}
	if in["seq_length"].At(0) != 10 {
		Te.Errorf("seq_length %v", in["seq_length"].At(0))
	}
}

func TestBuildTemplates(Te *testing.T) {
	cfg := DefaultConfig()
	in, err := Assembler{UseTemplates: true, NumSeq: 2}.Build(cfg, BasicRunner{}, 10, 1, 2, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if cfg.MaxTemplates != 2 || cfg.MaxMsaClusters != 4 {
		Te.Errorf("config not reconfigured: %d templates, %d clusters", cfg.MaxTemplates, cfg.MaxMsaClusters)
	}
	checkShape(Te, in, "template_aatype", 1, 2, 10)
	checkShape(Te, in, "template_all_atom_positions", 1, 2, 10, 37, 3)
	checkShape(Te, in, "msa", 1, 2, 10)
	//both rows count even though the MSA has a single distinct sequence.
	if floats.Sum(in["msa_row_mask"].Data()) != 2 || floats.Sum(in["msa_mask"].Data()) != 20 {
		Te.Error("MSA masks should be all ones")
	}
	if floats.Sum(in["template_pseudo_beta_mask"].Data()) != 0 {
		Te.Error("zero-filled templates should have no atoms")
	}
}

func TestBuildStructureTemplates(Te *testing.T) {
	opts := afprep.DefaultLoadOptions()
	opts.Templates(true)
	S, err := afprep.Load("../testdata/chainA20.pdb", "A", opts)
	if err != nil {
		Te.Fatal(err)
	}
	cfg := DefaultConfig()
	in, err := Assembler{UseTemplates: true, NumSeq: 1}.Build(cfg, BasicRunner{}, S.Len(), 1, 1, S.Templates)
	if err != nil {
		Te.Fatal(err)
	}
	if in["template_aatype"].At(0, 0, 0) != float64(afprep.RestypeIndex('M')) {
		Te.Errorf("template residue type %v, expected M", in["template_aatype"].At(0, 0, 0))
	}
	if floats.Sum(in["template_pseudo_beta_mask"].Data()) != 20 {
		Te.Error("every template residue should have a pseudo-beta")
	}
	//the glycine's pseudo-beta is its CA.
	ca, _ := S.Batch.Atom(10, afprep.AtomCA)
	for k := 0; k < 3; k++ {
		if in["template_pseudo_beta"].At(0, 0, 10, k) != ca[k] {
			Te.Fatal("wrong glycine pseudo-beta")
		}
	}
}

func TestBuildErrors(Te *testing.T) {
	cases := []struct {
		name      string
		a         Assembler
		length    int
		ntemp     int
		templates tensor.FeatureMap
	}{
		{"no templates slots", Assembler{UseTemplates: true, NumSeq: 1}, 10, 0, nil},
		{"unused templates", Assembler{NumSeq: 1}, 10, 1, tensor.FeatureMap{}},
		{"incomplete templates", Assembler{UseTemplates: true, NumSeq: 1}, 10, 1, tensor.FeatureMap{"template_aatype": tensor.Zeros(1, 10, 22)}},
		{"wrong template length", Assembler{UseTemplates: true, NumSeq: 1}, 10, 1, tensor.FeatureMap{
			"template_aatype":             tensor.Zeros(1, 9, 22),
			"template_all_atom_masks":     tensor.Zeros(1, 9, 37),
			"template_all_atom_positions": tensor.Zeros(1, 9, 37, 3),
			"template_domain_names":       tensor.Zeros(1),
		}},
		{"no residues", Assembler{NumSeq: 1}, 0, 0, nil},
		{"no sequences", Assembler{}, 10, 0, nil},
	}
	for _, c := range cases {
		_, err := c.a.Build(DefaultConfig(), BasicRunner{}, c.length, 1, c.ntemp, c.templates)
		if !errors.Is(err, ErrConfigurationInconsistent) {
			Te.Errorf("%s: expected ErrConfigurationInconsistent, got %v", c.name, err)
		}
	}
	cfg := DefaultConfig()
	cfg.MaxTemplates = 1 //no room left for MSA rows.
	if _, err := (Assembler{NumSeq: 1}).Build(cfg, BasicRunner{}, 10, 1, 0, nil); !errors.Is(err, ErrConfigurationInconsistent) {
		Te.Errorf("expected ErrConfigurationInconsistent, got %v", err)
	}
}

func TestConfigCopyAndLoad(Te *testing.T) {
	cfg := DefaultConfig()
	c2 := cfg.Copy()
	c2.MaxExtraMsa = 100
	c2.Feat["aatype"] = []tensor.Dim{tensor.Lit(3)}
	if cfg.MaxExtraMsa == 100 || !cfg.Feat["aatype"][0].Symbolic() {
		Te.Error("Copy shares data with the original")
	}
	name := filepath.Join(Te.TempDir(), "config.json")
	js := `{"max_msa_clusters": 8, "max_extra_msa": 16,
	"feat": {"my_feature": [{"placeholder": "num residues placeholder"}, {"size": 4}]}}`
	if err := os.WriteFile(name, []byte(js), 0644); err != nil {
		Te.Fatal(err)
	}
	l, err := LoadConfig(name)
	if err != nil {
		Te.Fatal(err)
	}
	if l.MaxMsaClusters != 8 || l.MaxExtraMsa != 16 || l.MaxTemplates != 0 {
		Te.Errorf("wrong sizes %+v", l.Sizes())
	}
	if d := l.Feat["my_feature"]; len(d) != 2 || d[0].Placeholder != tensor.NumRes || d[1].Size != 4 {
		Te.Errorf("wrong schema entry %v", d)
	}
	if _, ok := l.Feat["msa_feat"]; !ok {
		Te.Error("default schema entries should be kept")
	}
	if _, err := LoadConfig(filepath.Join(Te.TempDir(), "none.json")); err == nil {
		Te.Error("expected an error for a missing file")
	}
}
