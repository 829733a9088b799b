/*
 * schema.go, part of afprep.
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

package tensor

import (
	"fmt"
	"sort"
	"strings"
)

//FeatureMap maps feature names to tensors.
type FeatureMap map[string]*Tensor

//Copy returns a deep copy of F.
func (F FeatureMap) Copy() FeatureMap {
	if F == nil {
		return nil
	}
	ret := make(FeatureMap, len(F))
	for k, v := range F {
		ret[k] = v.Copy()
	}
	return ret
}

//Keys returns the names of the features in F, sorted.
func (F FeatureMap) Keys() []string {
	keys := make([]string, 0, len(F))
	for k := range F {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

//Merge copies every feature of G into F, replacing existing features
//with the same name. The tensors are not copied.
func (F FeatureMap) Merge(G FeatureMap) FeatureMap {
	for k, v := range G {
		F[k] = v
	}
	return F
}

//Shapes returns the shape of every feature in F.
func (F FeatureMap) Shapes() map[string][]int {
	ret := make(map[string][]int, len(F))
	for k, v := range F {
		ret[k] = v.Shape()
	}
	return ret
}

//Placeholder is a symbolic dimension, resolved to a concrete size
//when a FeatureMap is padded.
type Placeholder string

const (
	NumRes       Placeholder = "num residues placeholder"
	NumMsaSeq    Placeholder = "msa placeholder"
	NumExtraSeq  Placeholder = "extra msa placeholder"
	NumTemplates Placeholder = "num templates placeholder"
)

//Dim is one dimension of a shape schema. A Dim with a Placeholder
//is symbolic. Otherwise the dimension is literal and keeps the size the
//tensor already has. Size documents the expected literal size, 0 meaning
//unknown.
type Dim struct {
	Placeholder Placeholder `json:"placeholder,omitempty"`
	Size        int         `json:"size,omitempty"`
}

//Sym returns a symbolic Dim.
func Sym(p Placeholder) Dim { return Dim{Placeholder: p} }

//Lit returns a literal Dim of size n (0 for unknown).
func Lit(n int) Dim { return Dim{Size: n} }

//Symbolic returns true if D is a placeholder dimension.
func (D Dim) Symbolic() bool { return D.Placeholder != "" }

func (D Dim) String() string {
	if D.Symbolic() {
		return string(D.Placeholder)
	}
	if D.Size == 0 {
		return "None"
	}
	return fmt.Sprint(D.Size)
}

//Schema maps feature names to the declared dimensions of the feature.
type Schema map[string][]Dim

//Copy returns a deep copy of S.
func (S Schema) Copy() Schema {
	if S == nil {
		return nil
	}
	ret := make(Schema, len(S))
	for k, v := range S {
		ret[k] = append([]Dim(nil), v...)
	}
	return ret
}

//WithBatchAxis returns a copy of S where every entry has an extra,
//leading, literal dimension.
func (S Schema) WithBatchAxis() Schema {
	ret := make(Schema, len(S))
	for k, v := range S {
		ret[k] = append([]Dim{Lit(0)}, v...)
	}
	return ret
}

func formatDims(d []Dim) string {
	s := make([]string, len(d))
	for i, v := range d {
		s[i] = v.String()
	}
	return "[" + strings.Join(s, ", ") + "]"
}
