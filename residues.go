/*
 * residues.go, part of afprep.
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

import "strings"

//Restypes are the 20 standard amino acids, in the order used for
//residue type indexes. Index 20 (RestypeUnknown) is the unknown residue X.
const Restypes = "ARNDCQEGHILKMFPSTWYV"

const (
	RestypeNum     = 20 //standard residue types
	RestypeUnknown = 20 //index of the unknown residue type X
	RestypeGap     = 21 //index of the gap symbol '-'
	AtomTypeNum    = 37 //atom slots per residue in the atom37 representation
	Atom14Num      = 14 //atom slots per residue in the atom14 representation
	HHblitsNum     = 22 //symbols in the HHblits alphabet, including X and gap
)

//AtomTypes is the canonical order of the 37 heavy-atom slots of a residue.
var AtomTypes = [AtomTypeNum]string{
	"N", "CA", "C", "CB", "O", "CG", "CG1", "CG2", "OG", "OG1", "SG", "CD",
	"CD1", "CD2", "ND1", "ND2", "OD1", "OD2", "SD", "CE", "CE1", "CE2", "CE3",
	"NE", "NE1", "NE2", "OE1", "OE2", "CH2", "NH1", "NH2", "OH", "CZ", "CZ2",
	"CZ3", "NZ", "OXT",
}

//AtomOrder maps atom names to their slot in AtomTypes.
var AtomOrder = map[string]int{}

//Slots of the backbone anchors and the side-chain direction atom.
const (
	AtomN  = 0
	AtomCA = 1
	AtomC  = 2
	AtomCB = 3
	AtomO  = 4
)

//three2OneLetter maps the 3-letter name of the standard residues to the 1-letter name.
var three2OneLetter = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLN": 'Q', "GLU": 'E', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

//one2ThreeLetter is the inverse of three2OneLetter, plus UNK for X.
var one2ThreeLetter = map[byte]string{'X': "UNK"}

//modRes maps common modified residues to their parent residue.
var modRes = map[string]string{
	"MSE": "MET", "MLY": "LYS", "FME": "MET", "HYP": "PRO",
	"TPO": "THR", "CSO": "CYS", "SEP": "SER", "M3L": "LYS",
	"HSK": "HIS", "SAC": "SER", "PCA": "GLU", "DAL": "ALA",
	"CME": "CYS", "CSD": "CYS", "OCS": "CYS", "DPR": "PRO",
	"B3K": "LYS", "ALY": "LYS", "YCM": "CYS", "MLZ": "LYS",
	"4BF": "TYR", "KCX": "LYS", "B3E": "GLU", "B3D": "ASP",
	"HZP": "PRO", "CSX": "CYS", "BAL": "ALA", "HIC": "HIS",
	"DBZ": "ALA", "DCY": "CYS", "DVA": "VAL", "NLE": "LEU",
	"SMC": "CYS", "AGM": "ARG", "B3A": "ALA", "DAS": "ASP",
	"DLY": "LYS", "DSN": "SER", "DTH": "THR", "GL3": "GLY",
	"HY3": "PRO", "LLP": "LYS", "MGN": "GLN", "MHS": "HIS",
	"TRQ": "TRP", "B3Y": "TYR", "PHI": "PHE", "PTR": "TYR",
	"TYS": "TYR", "IAS": "ASP", "GPL": "LYS", "KYN": "TRP",
	"SEC": "CYS",
}

//atom14Names gives, for each residue type (by 3-letter name), the atoms
//occupying the 14 compact slots. Empty strings are unused slots.
var atom14Names = map[string][Atom14Num]string{
	"ALA": {"N", "CA", "C", "O", "CB"},
	"ARG": {"N", "CA", "C", "O", "CB", "CG", "CD", "NE", "CZ", "NH1", "NH2"},
	"ASN": {"N", "CA", "C", "O", "CB", "CG", "OD1", "ND2"},
	"ASP": {"N", "CA", "C", "O", "CB", "CG", "OD1", "OD2"},
	"CYS": {"N", "CA", "C", "O", "CB", "SG"},
	"GLN": {"N", "CA", "C", "O", "CB", "CG", "CD", "OE1", "NE2"},
	"GLU": {"N", "CA", "C", "O", "CB", "CG", "CD", "OE1", "OE2"},
	"GLY": {"N", "CA", "C", "O"},
	"HIS": {"N", "CA", "C", "O", "CB", "CG", "ND1", "CD2", "CE1", "NE2"},
	"ILE": {"N", "CA", "C", "O", "CB", "CG1", "CG2", "CD1"},
	"LEU": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2"},
	"LYS": {"N", "CA", "C", "O", "CB", "CG", "CD", "CE", "NZ"},
	"MET": {"N", "CA", "C", "O", "CB", "CG", "SD", "CE"},
	"PHE": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2", "CE1", "CE2", "CZ"},
	"PRO": {"N", "CA", "C", "O", "CB", "CG", "CD"},
	"SER": {"N", "CA", "C", "O", "CB", "OG"},
	"THR": {"N", "CA", "C", "O", "CB", "OG1", "CG2"},
	"TRP": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2", "NE1", "CE2", "CE3", "CZ2", "CZ3", "CH2"},
	"TYR": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2", "CE1", "CE2", "CZ", "OH"},
	"VAL": {"N", "CA", "C", "O", "CB", "CG1", "CG2"},
	"UNK": {},
}

//renamingSwaps lists the pairs of atoms that are chemically equivalent
//and can be swapped without changing the residue.
var renamingSwaps = map[string][][2]string{
	"ASP": {{"OD1", "OD2"}},
	"GLU": {{"OE1", "OE2"}},
	"PHE": {{"CD1", "CD2"}, {"CE1", "CE2"}},
	"TYR": {{"CD1", "CD2"}, {"CE1", "CE2"}},
}

//hhblitsAAToID maps 1-letter codes to the HHblits alphabet.
var hhblitsAAToID = map[byte]int{
	'A': 0, 'B': 2, 'C': 1, 'D': 2, 'E': 3, 'F': 4, 'G': 5, 'H': 6,
	'I': 7, 'J': 20, 'K': 8, 'L': 9, 'M': 10, 'N': 11, 'O': 20, 'P': 12,
	'Q': 13, 'R': 14, 'S': 15, 'T': 16, 'U': 1, 'V': 17, 'W': 18, 'X': 20,
	'Y': 19, 'Z': 3, '-': 21,
}

//hhblitsOrder are the symbols of the HHblits alphabet, by ID.
const hhblitsOrder = "ACDEFGHIKLMNPQRSTVWYX-"

//hhblitsToRestype maps HHblits IDs to residue type indexes.
var hhblitsToRestype [HHblitsNum]int

func init() {
	for i, v := range AtomTypes {
		AtomOrder[v] = i
	}
	for k, v := range three2OneLetter {
		one2ThreeLetter[v] = k
	}
	withXGap := Restypes + "X-"
	for i := 0; i < HHblitsNum; i++ {
		hhblitsToRestype[i] = strings.IndexByte(withXGap, hhblitsOrder[i])
	}
}

//RestypeIndex returns the residue type index of the 1-letter code c.
//Unknown codes map to RestypeUnknown.
func RestypeIndex(c byte) int {
	i := strings.IndexByte(Restypes, c)
	if i < 0 {
		return RestypeUnknown
	}
	return i
}

//RestypeLetter returns the 1-letter code for the residue type index i.
func RestypeLetter(i int) byte {
	if i < 0 || i >= RestypeNum {
		return 'X'
	}
	return Restypes[i]
}

//RestypeName returns the 3-letter name for the residue type index i.
func RestypeName(i int) string {
	return one2ThreeLetter[RestypeLetter(i)]
}

//ResidueLetter returns the 1-letter code of the residue with the 3-letter
//name name, or 'X' if the residue is not a standard one.
func ResidueLetter(name string) byte {
	if c, ok := three2OneLetter[name]; ok {
		return c
	}
	return 'X'
}

//HHblitsID returns the HHblits alphabet ID of the 1-letter code c.
func HHblitsID(c byte) int {
	if id, ok := hhblitsAAToID[c]; ok {
		return id
	}
	return hhblitsAAToID['X']
}

//HHblitsToRestype converts an HHblits alphabet ID into a residue type index,
//where X is RestypeUnknown and the gap is RestypeGap.
func HHblitsToRestype(id int) int {
	if id < 0 || id >= HHblitsNum {
		return RestypeUnknown
	}
	return hhblitsToRestype[id]
}

//Atom14Names returns the atoms in the 14 compact slots of residue type i.
func Atom14Names(i int) [Atom14Num]string {
	return atom14Names[RestypeName(i)]
}
