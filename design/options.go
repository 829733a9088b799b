/*
 * options.go, part of afprep.
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

import "sort"

//TemplateOptions are the options on the use of templates during design.
type TemplateOptions struct {
	Dropout float64 //probability of dropping the template features at each step.
}

//Options are the live options of a design run.
type Options struct {
	Weights  map[string]float64 //loss weights, by loss name.
	Pos      []int              //residues under optimization, nil for all.
	FixSeq   bool
	Template TemplateOptions
}

//DefaultOptions returns options with no weights, all positions under
//optimization, a free sequence and no template dropout.
func DefaultOptions() *Options {
	return &Options{Weights: make(map[string]float64)}
}

//Copy returns a deep copy of O.
func (O *Options) Copy() *Options {
	ret := *O
	ret.Weights = make(map[string]float64, len(O.Weights))
	for k, v := range O.Weights {
		ret.Weights[k] = v
	}
	if O.Pos != nil {
		ret.Pos = append([]int(nil), O.Pos...)
	}
	return &ret
}

//Weight returns the weight of the loss name, and sets it to a new value, if given.
//Weights not set are 0.
func (O *Options) Weight(name string, w ...float64) float64 {
	if O.Weights == nil {
		O.Weights = make(map[string]float64)
	}
	if len(w) > 0 {
		O.Weights[name] = w[0]
	}
	return O.Weights[name]
}

//SetWeights sets all the weights in w.
func (O *Options) SetWeights(w map[string]float64) {
	for k, v := range w {
		O.Weight(k, v)
	}
}

//WeightNames returns the names of the weights set in O, sorted.
func (O *Options) WeightNames() []string {
	ret := make([]string, 0, len(O.Weights))
	for k := range O.Weights {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
