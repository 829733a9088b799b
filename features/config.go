/*
 * config.go, part of afprep.
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
	"encoding/json"
	"fmt"
	"os"

	"github.com/rmera/afprep/tensor"
)

//Config is the sizing of the prediction model, plus the declared shape of
//every feature it takes.
type Config struct {
	MaxTemplates   int           `json:"max_templates"`
	MaxMsaClusters int           `json:"max_msa_clusters"`
	MaxExtraMsa    int           `json:"max_extra_msa"`
	Feat           tensor.Schema `json:"feat,omitempty"`
}

//DefaultConfig returns a Config for single-sequence design: one MSA cluster,
//one extra MSA row, no templates, and the shape schema of the
//model's evaluation features.
func DefaultConfig() *Config {
	return &Config{
		MaxTemplates:   0,
		MaxMsaClusters: 1,
		MaxExtraMsa:    1,
		Feat:           DefaultSchema(),
	}
}

//Copy returns a deep copy of C.
func (C *Config) Copy() *Config {
	ret := *C
	ret.Feat = C.Feat.Copy()
	return &ret
}

//Sizes returns the sizes the symbolic dimensions resolve to under C.
func (C *Config) Sizes() tensor.PadSizes {
	return tensor.PadSizes{MaxTemplates: C.MaxTemplates, MaxMsaClusters: C.MaxMsaClusters, MaxExtraMsa: C.MaxExtraMsa}
}

//NumMsaSeq returns the number of MSA rows the model takes.
func (C *Config) NumMsaSeq() int {
	return C.MaxMsaClusters - C.MaxTemplates
}

//Check returns an error if the sizes of C are not usable.
func (C *Config) Check() error {
	if C.MaxTemplates < 0 || C.MaxExtraMsa < 0 {
		return inconsistent("Check", "negative sizes: %d templates, %d extra MSA rows", C.MaxTemplates, C.MaxExtraMsa)
	}
	if C.NumMsaSeq() < 1 {
		return inconsistent("Check", "%d MSA clusters leave no MSA rows with %d templates", C.MaxMsaClusters, C.MaxTemplates)
	}
	if len(C.Feat) == 0 {
		return inconsistent("Check", "empty shape schema")
	}
	return nil
}

//LoadConfig reads a JSON file with a Config. Fields absent in the file
//keep the values of DefaultConfig. The schema entries in the file replace
//or add to the default ones.
func LoadConfig(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), nil, []string{"os.Open", "LoadConfig"}, true}
	}
	defer f.Close()
	C := DefaultConfig()
	def := C.Feat
	C.Feat = nil
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(C); err != nil {
		return nil, Error{fmt.Sprintf("can't decode %s: %s", name, err.Error()), nil, []string{"json.Decode", "LoadConfig"}, true}
	}
	for k, v := range C.Feat {
		def[k] = v
	}
	C.Feat = def
	return C, errDecorate(C.Check(), "LoadConfig")
}

//DefaultSchema returns the declared shapes of the evaluation features of the model.
func DefaultSchema() tensor.Schema {
	res := tensor.Sym(tensor.NumRes)
	msa := tensor.Sym(tensor.NumMsaSeq)
	extra := tensor.Sym(tensor.NumExtraSeq)
	tmpl := tensor.Sym(tensor.NumTemplates)
	none := tensor.Lit(0)
	return tensor.Schema{
		"aatype":                          {res},
		"all_atom_mask":                   {res, tensor.Lit(37)},
		"all_atom_positions":              {res, tensor.Lit(37), tensor.Lit(3)},
		"alt_chi_angles":                  {res, none},
		"atom14_alt_gt_exists":            {res, tensor.Lit(14)},
		"atom14_alt_gt_positions":         {res, tensor.Lit(14), tensor.Lit(3)},
		"atom14_atom_exists":              {res, tensor.Lit(14)},
		"atom14_atom_is_ambiguous":        {res, tensor.Lit(14)},
		"atom14_gt_exists":                {res, tensor.Lit(14)},
		"atom14_gt_positions":             {res, tensor.Lit(14), tensor.Lit(3)},
		"atom37_atom_exists":              {res, tensor.Lit(37)},
		"backbone_affine_mask":            {res},
		"backbone_affine_tensor":          {res, tensor.Lit(7)},
		"bert_mask":                       {msa, res},
		"chi_angles":                      {res, none},
		"chi_mask":                        {res, none},
		"extra_deletion_value":            {extra, res},
		"extra_has_deletion":              {extra, res},
		"extra_msa":                       {extra, res},
		"extra_msa_mask":                  {extra, res},
		"extra_msa_row_mask":              {extra},
		"is_distillation":                 {},
		"msa":                             {msa, res},
		"msa_feat":                        {msa, res, tensor.Lit(49)},
		"msa_mask":                        {msa, res},
		"msa_row_mask":                    {msa},
		"pseudo_beta":                     {res, tensor.Lit(3)},
		"pseudo_beta_mask":                {res},
		"random_crop_to_size_seed":        {none},
		"residue_index":                   {res},
		"residx_atom14_to_atom37":         {res, tensor.Lit(14)},
		"residx_atom37_to_atom14":         {res, tensor.Lit(37)},
		"resolution":                      {},
		"rigidgroups_alt_gt_frames":       {res, none, none},
		"rigidgroups_group_exists":        {res, none},
		"rigidgroups_group_is_ambiguous":  {res, none},
		"rigidgroups_gt_exists":           {res, none},
		"rigidgroups_gt_frames":           {res, none, none},
		"seq_length":                      {},
		"seq_mask":                        {res},
		"target_feat":                     {res, tensor.Lit(22)},
		"template_aatype":                 {tmpl, res},
		"template_all_atom_masks":         {tmpl, res, tensor.Lit(37)},
		"template_all_atom_positions":     {tmpl, res, tensor.Lit(37), tensor.Lit(3)},
		"template_backbone_affine_mask":   {tmpl, res},
		"template_backbone_affine_tensor": {tmpl, res, tensor.Lit(7)},
		"template_mask":                   {tmpl},
		"template_pseudo_beta":            {tmpl, res, tensor.Lit(3)},
		"template_pseudo_beta_mask":       {tmpl, res},
		"template_sum_probs":              {tmpl, tensor.Lit(1)},
		"true_msa":                        {msa, res},
	}
}
