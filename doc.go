/*
 * doc.go, part of molsvg.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package chem is the main package of the molsvg library. It provides the atom, bond and
molecule structures, a reader for structure-data (MOL/SDF) files and the rotations
needed to look at a molecule from any side before drawing it.


	**Capabilities**


    Reads structure-data files, plain or compressed with gzip or z-standard.

    Keeps the derived data of every bond (projected end points, planar length and
	direction, depth) up to date with the coordinates of its atoms.

    Computes the order in which atoms and bonds have to be painted, from the back
	to the front, without changing the order in which they were added (bonds refer
	to atoms by that order).

    Rotates molecules around the x, y and z axes, or applies any 3x3 operator.

    Provides the default drawing style (gradient colours and radius) for the common
	"bio-elements".


The SVG drawing itself is done by the scene package, the storage in a relational
database by the store package.

Coordinates are handled with the v3.Matrix type, based in gonum's mat.Dense.
Each row of a v3.Matrix represents one point in space.*/
package chem
