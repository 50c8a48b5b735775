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

/*Package scene draws a molecule as a flat SVG picture.

Atoms become circles filled with the radial gradient of their element, bonds become
green rectangles along the bond axis. Everything is projected on the xy plane and
painted from the back (lowest z) to the front, so closer atoms and bonds cover the
ones behind them.

	mol, err := chem.SDFRead("caffeine.sdf")
	...
	svg, err := scene.Render(mol, style.Defaults())

*/
package scene
