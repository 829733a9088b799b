/*
 * main.go, part of afprep.
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

//afprep prepares the inputs of a design run and prints a summary of them,
//in JSON, to the standard output.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rmera/afprep"
	"github.com/rmera/afprep/design"
	"github.com/rmera/afprep/features"
)

//summary is what gets printed.
type summary struct {
	Protocol     string             `json:"protocol"`
	Length       int                `json:"length"`
	Copies       int                `json:"copies"`
	TargetLength int                `json:"target_length,omitempty"`
	BinderLength int                `json:"binder_length,omitempty"`
	MaxTemplates int                `json:"max_templates"`
	MaxMsa       int                `json:"max_msa_clusters"`
	Weights      map[string]float64 `json:"weights"`
	Pos          []int              `json:"pos,omitempty"`
	Hotspot      []int              `json:"hotspot,omitempty"`
	FixSeq       bool               `json:"fix_seq"`
	Dropout      float64            `json:"template_dropout"`
	ResidueIndex []int              `json:"residue_index"`
	InputShapes  map[string][]int   `json:"inputs"`
	BatchShapes  map[string][]int   `json:"batch,omitempty"`
}

func main() {
	protocol := flag.String("protocol", "fixbb", "design protocol: fixbb, binder, hallucination or partial")
	pdb := flag.String("pdb", "", "structure file (PDB or mmCIF, optionally .gz or .zst)")
	chains := flag.String("chains", "", "comma-separated chains to use, all if empty")
	cpy := flag.Int("copies", 1, "number of copies")
	length := flag.Int("length", 0, "length of the designed protein (hallucination, partial)")
	binderLen := flag.Int("binder-len", 50, "length of the hallucinated binder")
	binderChain := flag.String("binder-chain", "", "chain of the binder to redesign")
	hotspot := flag.String("hotspot", "", "target positions the binder should contact, such as A10-20")
	pos := flag.String("pos", "", "positions kept in partial hallucination, such as A1-10,B5")
	templates := flag.Bool("templates", false, "use template features")
	binderTemplate := flag.Bool("binder-template", false, "give the binder coordinates as a template")
	split := flag.Bool("split-templates", false, "give target and binder as separate templates")
	numSeq := flag.Int("num-seq", 1, "sequences in the designed MSA")
	repeat := flag.Bool("repeat", false, "the copies form a repeat protein")
	homo := flag.Bool("homooligomer", false, "the structure already contains all the copies")
	blockDiag := flag.Bool("block-diag", false, "block-diagonal MSA for multi-copy designs")
	sidechains := flag.Bool("sidechains", false, "use side chains at the kept positions (partial)")
	fixSeq := flag.Bool("fix-seq", true, "keep the sequence at the kept positions (partial)")
	config := flag.String("config", "", "JSON file with the model configuration")
	flag.Parse()

	cfg := features.DefaultConfig()
	if *config != "" {
		var err error
		if cfg, err = features.LoadConfig(*config); err != nil {
			fatal(err)
		}
	}
	var p design.Protocol
	switch *protocol {
	case "fixbb":
		p = design.FixBB{File: *pdb, Chains: *chains, Copies: *cpy, Homooligomer: *homo, Repeat: *repeat, BlockDiag: *blockDiag}
	case "binder":
		c := *chains
		if c == "" {
			c = "A"
		}
		p = design.Binder{File: *pdb, Chains: c, BinderLen: *binderLen, BinderChain: *binderChain,
			UseBinderTemplate: *binderTemplate, SplitTemplates: *split, Hotspot: *hotspot}
	case "hallucination":
		p = design.Hallucination{Length: *length, Copies: *cpy, Repeat: *repeat, BlockDiag: *blockDiag}
	case "partial":
		p = design.Partial{File: *pdb, Chains: *chains, Pos: *pos, Length: *length, FreeSeq: !*fixSeq, UseSidechains: *sidechains}
	default:
		fmt.Fprintf(os.Stderr, "unknown protocol %q\n", *protocol)
		flag.Usage()
		os.Exit(2)
	}
	m := design.NewModel(cfg, features.BasicRunner{}, nil, design.ModelOptions{UseTemplates: *templates, NumSeq: *numSeq}, nil)
	if err := m.Prep(p); err != nil {
		fatal(err)
	}
	s := summary{
		Protocol:     m.Protocol,
		Length:       m.Len,
		Copies:       m.Copies,
		TargetLength: m.TargetLen,
		BinderLength: m.BinderLen,
		MaxTemplates: m.Config.MaxTemplates,
		MaxMsa:       m.Config.MaxMsaClusters,
		Weights:      m.Opt.Weights,
		Pos:          m.Opt.Pos,
		Hotspot:      m.Hotspot,
		FixSeq:       m.Opt.FixSeq,
		Dropout:      m.Opt.Template.Dropout,
		ResidueIndex: m.Inputs["residue_index"].Ints(),
		InputShapes:  m.Inputs.Shapes(),
	}
	if m.Batch != nil {
		s.BatchShapes = m.Batch.Shapes()
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		log.Fatal(err)
	}
}

//fatal logs err, with the functions it went through if it carries them, and exits.
func fatal(err error) {
	var e afprep.Error
	if errors.As(err, &e) {
		if deco := e.Decorate(""); len(deco) > 0 {
			log.Fatalf("%v (in %s)", err, strings.Join(deco, " < "))
		}
	}
	log.Fatal(err)
}
