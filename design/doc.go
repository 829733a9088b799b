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
Package design assembles the inputs of a protein design run for one of four
protocols: fixed-backbone design (FixBB), binder design (Binder),
unconditional hallucination (Hallucination) and partial hallucination
(Partial).

A Model owns the base model configuration, the feature runner and the
design loop it hands the prepared inputs to. Model.Prep loads the
structure, builds the placeholder features, pads them, seeds the design
options with the protocol's loss weights, takes a snapshot of the options
and restarts the design loop.
*/
package design
