/*
 * files.go, part of afprep.
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

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Formats for the structure files that can be read.
const (
	FormatPDB   = "pdb"
	FormatMMCIF = "cif"
)

//Residue is one residue as read from a structure file, before any
//processing. Positions and Mask follow the AtomTypes order.
type Residue struct {
	Name      string //3-letter name, after mapping modified residues to their parents.
	Chain     string
	Number    int //native residue number
	Positions [AtomTypeNum][3]float64
	Mask      [AtomTypeNum]bool
}

//RawStructure is the set of residues read from the first model of a structure file.
type RawStructure struct {
	Residues []*Residue
	chains   []string //in order of appearance
	rindex   map[string]int
}

func newRawStructure() *RawStructure {
	return &RawStructure{rindex: make(map[string]int)}
}

//Chains returns the chain identifiers of R, in order of appearance.
func (R *RawStructure) Chains() []string {
	return append([]string(nil), R.chains...)
}

//Chain returns the residues of R that belong to the chain id, in file order.
func (R *RawStructure) Chain(id string) []*Residue {
	var ret []*Residue
	for _, r := range R.Residues {
		if r.Chain == id {
			ret = append(ret, r)
		}
	}
	return ret
}

//addAtom puts one atom in its residue, creating the residue if needed. Atom names
//outside the atom37 set are ignored, and so are repeated placements of an atom.
func (R *RawStructure) addAtom(chain string, resnum int, resname, atom string, c [3]float64) {
	key := fmt.Sprintf("%s_%d_%s", chain, resnum, resname)
	i, ok := R.rindex[key]
	if !ok {
		if len(R.Chain(chain)) == 0 {
			R.chains = append(R.chains, chain)
		}
		R.Residues = append(R.Residues, &Residue{Name: resname, Chain: chain, Number: resnum})
		i = len(R.Residues) - 1
		R.rindex[key] = i
	}
	slot, ok := AtomOrder[atom]
	if !ok {
		return
	}
	res := R.Residues[i]
	if res.Mask[slot] {
		return //alternative placement, the first one is kept.
	}
	res.Positions[slot] = c
	res.Mask[slot] = true
}

//stdql is a zstd decoder with a Close method that fullfills io.ReadCloser.
type stdql struct {
	closeql func()
	*zstd.Decoder
}

func (s stdql) Close() error {
	s.closeql()
	return nil
}

//fileCloser closes both a decompressor and the underlying file.
type fileCloser struct {
	io.Reader
	closers []io.Closer
}

func (f fileCloser) Close() error {
	var err error
	for _, c := range f.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//StructureFormat deduces the format of a structure file from its name,
//ignoring a compression extension. Files that are not mmCIF are assumed to be PDB.
func StructureFormat(name string) string {
	name = strings.ToLower(name)
	for _, ext := range []string{".gz", ".zst", ".zstd"} {
		name = strings.TrimSuffix(name, ext)
	}
	switch filepath.Ext(name) {
	case ".cif", ".mmcif":
		return FormatMMCIF
	}
	return FormatPDB
}

//openStructure opens a structure file, decompressing it if the name
//ends in .gz (gzip) or .zst/.zstd (zstd).
func openStructure(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, FileError{err.Error(), name, ErrStructureNotFound, []string{"os.Open", "openStructure"}, true}
	}
	reader := bufio.NewReader(f)
	var dec io.ReadCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		dec, err = gzip.NewReader(reader)
	case ".zst", ".zstd":
		var z *zstd.Decoder
		z, err = zstd.NewReader(reader)
		if err == nil {
			dec = stdql{z.Close, z}
		}
	default:
		return fileCloser{reader, []io.Closer{f}}, nil
	}
	if err != nil {
		f.Close()
		return nil, FileError{"can't decompress: " + err.Error(), name, ErrStructureNotFound, []string{"openStructure"}, true}
	}
	return fileCloser{dec, []io.Closer{dec, f}}, nil
}

//ReadStructureFile reads the first model of the structure file name.
//The format is deduced from the file name, and compressed files are
//decompressed on the fly.
func ReadStructureFile(name string) (*RawStructure, error) {
	r, err := openStructure(name)
	if err != nil {
		return nil, errDecorate(err, "ReadStructureFile", name)
	}
	defer r.Close()
	raw, err := ParseStructure(r, StructureFormat(name))
	return raw, errDecorate(err, "ReadStructureFile", name)
}

//ParseStructure reads the first model of a structure in the given format
//(FormatPDB or FormatMMCIF) from r.
func ParseStructure(r io.Reader, format string) (*RawStructure, error) {
	var raw *RawStructure
	var err error
	switch format {
	case FormatMMCIF:
		raw, err = pdbxRead(bufio.NewReader(r))
	case FormatPDB, "":
		raw, err = pdbRead(bufio.NewReader(r))
	default:
		return nil, FileError{fmt.Sprintf("unknown format %q", format), "", ErrMalformedStructure, []string{"ParseStructure"}, true}
	}
	return raw, errDecorate(err, "ParseStructure", "")
}

//ParseStructureString reads the first model of a PDB-formatted string.
func ParseStructureString(pdb string) (*RawStructure, error) {
	return ParseStructure(strings.NewReader(pdb), FormatPDB)
}

//parentResidue returns the name of the residue that resname should be read as,
//and whether the residue is a known modified residue.
func parentResidue(resname string, modres map[string]string) (string, bool) {
	if p, ok := modres[resname]; ok {
		return p, true
	}
	return resname, false
}

//readPDBAtomLine parses the fields of an ATOM line of a PDB file that are needed
//to build a residue. The insertion code (column 27) is ignored.
func readPDBAtomLine(line string, contlines int) (chain string, resnum int, resname, atom string, c [3]float64, err error) {
	if len(line) < 54 {
		err = FileError{fmt.Sprintf("line %d too short for an atom record", contlines), "", ErrMalformedStructure, []string{"readPDBAtomLine"}, true}
		return
	}
	errs := make([]error, 4) //accumulate errors to check at the end of the line.
	atom = strings.TrimSpace(line[12:16])
	resname = strings.TrimSpace(line[17:20])
	chain = strings.TrimSpace(line[21:22])
	resnum, errs[0] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	c[0], errs[1] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	c[1], errs[2] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	c[2], errs[3] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	for _, e := range errs {
		if e != nil {
			err = FileError{fmt.Sprintf("line %d: %s", contlines, e.Error()), "", ErrMalformedStructure, []string{"strconv", "readPDBAtomLine"}, true}
			return
		}
	}
	return
}

//pdbRead reads the first model of a PDB file. HETATM records of known modified
//residues (including those declared in MODRES records) are read as their
//parent residues.
func pdbRead(pdb *bufio.Reader) (*RawStructure, error) {
	raw := newRawStructure()
	modres := make(map[string]string, len(modRes))
	for k, v := range modRes {
		modres[k] = v
	}
	models := 0
	contlines := 0
	for {
		line, err := pdb.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				break
			}
			return nil, FileError{err.Error(), "", ErrMalformedStructure, []string{"pdbRead"}, true}
		}
		contlines++
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "MODEL"):
			models++
		case strings.HasPrefix(line, "ENDMDL"):
			if models > 0 {
				return raw, nil
			}
		case strings.HasPrefix(line, "MODRES") && len(line) >= 27:
			k := strings.TrimSpace(line[12:15])
			v := strings.TrimSpace(line[24:27])
			if _, ok := modres[k]; !ok {
				if _, std := three2OneLetter[v]; std {
					modres[k] = v
				}
			}
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			chain, resnum, resname, atom, c, err := readPDBAtomLine(line, contlines)
			if err != nil {
				return nil, err
			}
			parent, modified := parentResidue(resname, modres)
			if strings.HasPrefix(line, "HETATM") && !modified {
				continue
			}
			if modified && parent == "MET" && atom == "SE" {
				atom = "SD"
			}
			raw.addAtom(chain, resnum, parent, atom, c)
		}
		if err == io.EOF {
			break
		}
	}
	return raw, nil
}
