/*
 * depth_test.go
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
 *
 */

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/molsvg"
	"github.com/rmera/molsvg/scene"
	"github.com/rmera/molsvg/style"
)

func waterPrimitives(Te *testing.T) []scene.Primitive {
	mol, err := chem.SDFRead("../test/water.sdf")
	if err != nil {
		Te.Fatal(err)
	}
	prims, err := scene.Primitives(mol, style.Defaults())
	if err != nil {
		Te.Fatal(err)
	}
	return prims
}

func TestDepthRange(Te *testing.T) {
	prims := waterPrimitives(Te)
	if len(prims) != 5 {
		Te.Fatalf("expected 5 primitives, got %d", len(prims))
	}
	min, max, err := DepthRange(prims)
	if err != nil {
		Te.Fatal(err)
	}
	if min != -0.2 || max != 0.3 {
		Te.Errorf("depth range %f %f, expected -0.2 0.3", min, max)
	}
	d := Depths(prims)
	for i := 1; i < len(d); i++ {
		if d[i] < d[i-1] {
			Te.Errorf("depths not in paint order: %v", d)
		}
	}
	if _, _, err := DepthRange(nil); err == nil {
		Te.Error("expected an error for no primitives")
	}
}

func TestDepthPlot(Te *testing.T) {
	prims := waterPrimitives(Te)
	name := filepath.Join(Te.TempDir(), "water.png")
	if err := DepthPlot(prims, "Water", name); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(name)
	if err != nil {
		Te.Fatal(err)
	}
	if info.Size() == 0 {
		Te.Error("empty plot file")
	}
	if err := DepthPlot(nil, "Nothing", name); err == nil {
		Te.Error("expected an error for an empty plot")
	}
}
