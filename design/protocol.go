/*
 * protocol.go, part of afprep.
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

//Protocol is one of FixBB, Binder, Hallucination or Partial.
type Protocol interface {
	//Name returns the name of the protocol.
	Name() string
	check() error
}

//FixBB is fixed-backbone design: a sequence is designed for the structure in File.
type FixBB struct {
	File   string
	Chains string //comma-separated chains, empty for all.
	Copies int    //number of copies of the chains in the design, 1 if 0.
	//Homooligomer means the structure already has all the copies, so only
	//the first one is designed.
	Homooligomer bool
	//Repeat means the structure is a repeat protein made of Copies
	//repeated units, and only one unit is designed.
	Repeat bool
	//BlockDiag arranges the MSA so every copy gets its own block of rows.
	//It only applies to multi-copy designs without Repeat.
	BlockDiag bool
}

//Name returns "fixbb".
func (p FixBB) Name() string { return "fixbb" }

func (p FixBB) check() error {
	if p.File == "" {
		return inconsistent("FixBB", "no structure file")
	}
	if p.Copies < 0 {
		return inconsistent("FixBB", "%d copies", p.Copies)
	}
	return nil
}

//Binder is binder design against the target chains in File. If BinderChain is set, the
//binder in that chain is redesigned. Otherwise a binder of BinderLen residues is hallucinated.
type Binder struct {
	File        string
	Chains      string //target chains.
	BinderLen   int
	BinderChain string
	//UseBinderTemplate gives the binder coordinates to the model as a template.
	UseBinderTemplate bool
	//SplitTemplates gives the target and the binder as separate templates.
	SplitTemplates bool
	//Hotspot is a set of target positions, such as "A10-20,A30", the binder should contact.
	Hotspot string
}

//Name returns "binder".
func (p Binder) Name() string { return "binder" }

func (p Binder) check() error {
	if p.File == "" {
		return inconsistent("Binder", "no structure file")
	}
	if p.BinderChain == "" && p.BinderLen < 1 {
		return inconsistent("Binder", "hallucinated binder of %d residues", p.BinderLen)
	}
	return nil
}

//Hallucination designs a structure and a sequence of Length residues, with no input structure.
type Hallucination struct {
	Length int
	Copies int //1 if 0.
	//Repeat makes the copies a single chain of repeated units.
	Repeat    bool
	BlockDiag bool
}

//Name returns "hallucination".
func (p Hallucination) Name() string { return "hallucination" }

func (p Hallucination) check() error {
	if p.Length < 1 || p.Copies < 0 {
		return inconsistent("Hallucination", "length %d with %d copies", p.Length, p.Copies)
	}
	return nil
}

//Partial is partial hallucination: the structure at the positions Pos of File is
//kept while the rest of a protein of Length residues is designed.
type Partial struct {
	File   string
	Chains string
	Pos    string //positions to keep, such as "A1-10,B5". Empty for all.
	Length int    //length of the designed protein, the length of the structure if 0.
	//FreeSeq lets the sequence at Pos be designed. By default it is kept fixed.
	FreeSeq bool
	//UseSidechains adds the side chains at Pos to the ground truth. It keeps the
	//sequence at Pos fixed even with FreeSeq.
	UseSidechains bool
}

//Name returns "partial".
func (p Partial) Name() string { return "partial" }

func (p Partial) check() error {
	if p.File == "" {
		return inconsistent("Partial", "no structure file")
	}
	if p.Length < 0 {
		return inconsistent("Partial", "length %d", p.Length)
	}
	return nil
}

//copies returns c, or 1 if c is 0.
func copies(c int) int {
	if c == 0 {
		return 1
	}
	return c
}
