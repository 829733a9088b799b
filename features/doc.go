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
Package features builds the placeholder sequence and MSA features that seed a
design run, and turns them into the fixed-size inputs of the structure
prediction model.

The model sizing (templates, MSA clusters, extra MSA rows) and the shape
schema of each feature live in a Config value. Assembler.Build reconfigures
the Config it is given for the requested templates, so callers should pass
a copy of any Config they want to keep.
*/
package features
