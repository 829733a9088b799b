/*
 * pad.go, part of afprep.
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

import "fmt"

//extraClusterAssignment is computed on the host only and never
//declared in a schema, so the padder leaves it as it is.
const extraClusterAssignment = "extra_cluster_assignment"

//PadSizes holds the model sizing that symbolic dimensions resolve to.
type PadSizes struct {
	MaxTemplates   int
	MaxMsaClusters int
	MaxExtraMsa    int
}

//Resolve returns the pad target for the placeholder p, given the number
//of residues length. The second return value is false for unknown placeholders.
func (P PadSizes) Resolve(p Placeholder, length int) (int, bool) {
	switch p {
	case NumRes:
		return length, true
	case NumMsaSeq:
		return P.MaxMsaClusters - P.MaxTemplates, true
	case NumExtraSeq:
		return P.MaxExtraMsa, true
	case NumTemplates:
		return P.MaxTemplates, true
	}
	return 0, false
}

//MakeFixedSize pads every tensor of feat to the shape declared for it in
//schema. Symbolic dimensions are padded to the sizes resolved from sizes and
//length, literal dimensions keep their size. If batchAxis is true, every
//tensor is expected to carry an extra leading dimension not declared in schema.
//Padding is only ever added at the end of each dimension, and is zero-filled.
//The returned FeatureMap never shares memory with feat.
func MakeFixedSize(feat FeatureMap, schema Schema, sizes PadSizes, length int, batchAxis bool) (FeatureMap, error) {
	if batchAxis {
		schema = schema.WithBatchAxis()
	}
	ret := make(FeatureMap, len(feat))
	for _, k := range feat.Keys() {
		v := feat[k]
		if k == extraClusterAssignment {
			ret[k] = v.Copy()
			continue
		}
		dims, ok := schema[k]
		if !ok {
			return nil, Error{"feature not declared in the shape schema", k, ErrNoSchema, []string{"MakeFixedSize"}, true}
		}
		shape := v.Shape()
		if len(shape) != len(dims) {
			return nil, Error{fmt.Sprintf("shape %v vs schema %s", shape, formatDims(dims)), k, ErrRankMismatch, []string{"MakeFixedSize"}, true}
		}
		target := make([]int, len(shape))
		for i, d := range dims {
			target[i] = shape[i]
			if !d.Symbolic() {
				continue
			}
			p, ok := sizes.Resolve(d.Placeholder, length)
			if !ok {
				return nil, Error{fmt.Sprintf("unknown placeholder %q", d.Placeholder), k, ErrNoSchema, []string{"MakeFixedSize"}, true}
			}
			target[i] = p
		}
		padded, err := v.Pad(target)
		if err != nil {
			return nil, errDecorate(err, "MakeFixedSize", k)
		}
		ret[k] = padded
	}
	return ret, nil
}
