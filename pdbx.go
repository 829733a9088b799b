/*
 * pdbx.go, part of afprep.
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
	"strconv"
	"strings"
)

var tl func(string) string = strings.ToLower

//the _atom_site fields we use. The auth_ ones are preferred, the label_ ones are fallbacks.
var pdbxFields = []string{
	"_atom_site.group_pdb",
	"_atom_site.auth_atom_id",
	"_atom_site.label_atom_id",
	"_atom_site.auth_comp_id",
	"_atom_site.label_comp_id",
	"_atom_site.auth_asym_id",
	"_atom_site.label_asym_id",
	"_atom_site.auth_seq_id",
	"_atom_site.label_seq_id",
	"_atom_site.cartn_x",
	"_atom_site.cartn_y",
	"_atom_site.cartn_z",
	"_atom_site.pdbx_pdb_model_num",
}

type pdbxmap map[string]int

func newPdbxmap() pdbxmap {
	m := make(pdbxmap, len(pdbxFields))
	for _, v := range pdbxFields {
		m[v] = -1
	}
	return m
}

// adds i to the map[string] entry, if it exists. If not,
// does nothing. Returns the map.
func (m pdbxmap) add(s string, i int) pdbxmap {
	s = strings.TrimSpace(s)
	if _, ok := m[s]; ok {
		m[s] = i
	}
	return m
}

// returns the integer corresponding to the given string in the map
// or -1 if the string is not a key in the map.
func (m pdbxmap) get(s string) int {
	if i, ok := m[s]; ok {
		return i
	}
	return -1
}

//value returns the data field for the first of the given keys present in m.
//mmCIF's "?" and "." placeholders count as absent.
func (m pdbxmap) value(data []string, keys ...string) (string, bool) {
	for _, k := range keys {
		i := m.get(k)
		if i < 0 || i >= len(data) {
			continue
		}
		if v := strings.Trim(data[i], `"'`); v != "?" && v != "." {
			return v, true
		}
	}
	return "", false
}

//pdbxAtom reads one _atom_site row.
func pdbxAtom(data []string, m pdbxmap) (chain string, resnum int, resname, atom string, c [3]float64, het bool, err error) {
	var ok bool
	if atom, ok = m.value(data, "_atom_site.auth_atom_id", "_atom_site.label_atom_id"); !ok {
		err = fmt.Errorf("no atom name in %v", data)
		return
	}
	if resname, ok = m.value(data, "_atom_site.auth_comp_id", "_atom_site.label_comp_id"); !ok {
		err = fmt.Errorf("no residue name in %v", data)
		return
	}
	chain, _ = m.value(data, "_atom_site.auth_asym_id", "_atom_site.label_asym_id")
	seq, ok := m.value(data, "_atom_site.auth_seq_id", "_atom_site.label_seq_id")
	if !ok {
		err = fmt.Errorf("no residue number in %v", data)
		return
	}
	if resnum, err = strconv.Atoi(seq); err != nil {
		err = fmt.Errorf("couldn't parse residue number from %s: %w", seq, err)
		return
	}
	for j, v := range []string{"_atom_site.cartn_x", "_atom_site.cartn_y", "_atom_site.cartn_z"} {
		s, ok := m.value(data, v)
		if !ok {
			err = fmt.Errorf("field %s not present in data %v", v, data)
			return
		}
		if c[j], err = strconv.ParseFloat(s, 64); err != nil {
			err = fmt.Errorf("couldn't parse %d cartesian coordinate from %s: %w", j, s, err)
			return
		}
	}
	if g, ok := m.value(data, "_atom_site.group_pdb"); ok && g != "ATOM" {
		het = true
	}
	return
}

//pdbxRead reads the _atom_site table of the first model in an mmCIF file.
func pdbxRead(pdb *bufio.Reader) (*RawStructure, error) {
	raw := newRawStructure()
	m := newPdbxmap()
	var reading, header bool
	var field int
	firstmodel := ""
	hp := strings.HasPrefix
	line := 0
	for {
		l, err := pdb.ReadString('\n')
		if err != nil && l == "" {
			if err == io.EOF {
				break
			}
			return nil, FileError{err.Error(), "", ErrMalformedStructure, []string{"pdbxRead"}, true}
		}
		line++
		trimmed := strings.TrimSpace(l)
		if hp(trimmed, "#") || hp(trimmed, ";") || trimmed == "" {
			if reading && !header && field > 0 {
				break //end of the _atom_site table
			}
			continue
		}
		if hp(trimmed, "loop_") {
			if reading && field > 0 {
				break
			}
			continue
		}
		if hp(trimmed, "_") {
			if hp(tl(trimmed), "_atom_site.") {
				if !reading {
					reading, header = true, true
				}
				m.add(tl(strings.Fields(trimmed)[0]), field)
				field++
				continue
			}
			if reading {
				break
			}
			continue
		}
		if !reading {
			continue
		}
		header = false
		fields := strings.Fields(trimmed)
		if mod, ok := m.value(fields, "_atom_site.pdbx_pdb_model_num"); ok {
			if firstmodel == "" {
				firstmodel = mod
			}
			if mod != firstmodel {
				break
			}
		}
		chain, resnum, resname, atom, c, het, err := pdbxAtom(fields, m)
		if err != nil {
			return nil, FileError{fmt.Sprintf("line %d: %s", line, err.Error()), "", ErrMalformedStructure, []string{"pdbxAtom", "pdbxRead"}, true}
		}
		parent, modified := parentResidue(resname, modRes)
		if het && !modified {
			continue
		}
		if modified && parent == "MET" && atom == "SE" {
			atom = "SD"
		}
		raw.addAtom(chain, resnum, parent, atom, c)
	}
	return raw, nil
}
