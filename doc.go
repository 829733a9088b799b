/*
 * doc.go, part of afprep.
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

/*
Package afprep prepares the inputs of a structure-conditioned protein design
loop that drives a structure prediction model.

This package holds the structure layer. It reads protein structures and turns
them into per-residue atom batches ready for the other layers.


	**afprep Capabilities**


    Reads the first model of PDB and mmCIF files, plain or compressed with
	gzip or zstd. Modified residues are read as their parent residues.

    Builds atom37 batches (residue types, positions and masks) for one or
	more chains, placing ideal CB atoms where they are missing.

    Numbers residues with a chain-break gap between consecutive chains.

    Computes backbone frames, pseudo-beta atoms, template features and atom14
	representations of the residues.

The tensor package pads feature maps to fixed sizes, the features package
builds the placeholder sequence and MSA features, and the design package
assembles the inputs for each design protocol.
*/
package afprep
