/*
 * molecules.go, part of molsvg.
 *
 * Copyright 2013 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	chem "github.com/rmera/molsvg"
	"github.com/rmera/molsvg/chemjson"
	"github.com/rmera/molsvg/chemplot"
	"github.com/rmera/molsvg/internal/logging"
	"github.com/rmera/molsvg/raster"
	"github.com/rmera/molsvg/scene"
	"github.com/rmera/molsvg/style"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database tables and store the built-in elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.DB.CreateSchema(ctx); err != nil {
				return err
			}
			var n int
			if app.Config.Store.SeedElements {
				var err error
				if n, err = app.DB.SeedElements(ctx, chem.DefaultElements()); err != nil {
					return err
				}
			}
			res := map[string]interface{}{"driver": app.DB.Driver(), "elements_seeded": n}
			return printResult(cmd, app, res, func(w io.Writer) {
				fmt.Fprintf(w, "database ready (%s), %d elements seeded\n", app.DB.Driver(), n)
			})
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME FILE",
		Short: "Store the molecule in a structure-data file (.sdf, .sdf.gz or .sdf.zst)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, file := args[0], args[1]
			mol, err := chem.SDFRead(file)
			if err == nil {
				err = app.DB.AddGeometry(cmd.Context(), name, mol)
			}
			app.Metrics.ObserveAdd(err)
			if err != nil {
				return err
			}
			info := map[string]interface{}{"name": name, "atoms": mol.Len(), "bonds": mol.LenBonds()}
			return printResult(cmd, app, info, func(w io.Writer) {
				fmt.Fprintf(w, "added %s: %d atoms, %d bonds\n", name, mol.Len(), mol.LenBonds())
			})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored molecules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mols, err := app.DB.Molecules(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, app, mols, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tATOMS\tBONDS")
				for _, m := range mols {
					fmt.Fprintf(tw, "%s\t%d\t%d\n", m.Name, m.Atoms, m.Bonds)
				}
				tw.Flush()
			})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print the atoms and bonds of a stored molecule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mol, err := app.DB.LoadMolecule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if app.Output == "json" {
				if jerr := chemjson.SendMolecule(args[0], mol, w); jerr != nil {
					return jerr
				}
				return nil
			}
			fmt.Fprintf(w, "%s: %d atoms, %d bonds\n", args[0], mol.Len(), mol.LenBonds())
			for i := 0; i < mol.Len(); i++ {
				fmt.Fprintf(w, "%4d %s\n", i, mol.Atom(i))
			}
			for i := 0; i < mol.LenBonds(); i++ {
				b := mol.Bond(i)
				fmt.Fprintf(w, "bond %d-%d order %d depth %.4f\n", b.A1, b.A2, b.Epairs, b.Z)
			}
			return nil
		},
	}
}

//catalog loads the element styles from the database.
func catalog(cmd *cobra.Command, app *App) (*style.Catalog, error) {
	cat := style.NewCatalog()
	if err := cat.Load(cmd.Context(), app.DB); err != nil {
		return nil, err
	}
	return cat, nil
}

type renderOptions struct {
	file          string
	png           string
	rx, ry, rz    float64
	width, height int
}

func newRenderCmd(app *App) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render NAME",
		Short: "Draw a stored molecule as an SVG document",
		Long: "render draws a stored molecule as SVG, to standard output or to the file\n" +
			"given with -o. The molecule can be rotated first, around x, then y, then z.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			mol, err := app.DB.LoadMolecule(cmd.Context(), name)
			if err != nil {
				return err
			}
			if opts.rx != 0 || opts.ry != 0 || opts.rz != 0 {
				if err := mol.Transform(chem.Rotator(opts.rx, opts.ry, opts.rz)); err != nil {
					return err
				}
			}
			cat, err := catalog(cmd, app)
			if err != nil {
				return err
			}
			start := time.Now()
			doc, err := scene.Render(mol, cat)
			app.Metrics.ObserveRender(start, err)
			if err != nil {
				return err
			}
			app.Logger.Debug("molecule rendered", logging.String("name", name), logging.Duration("took", time.Since(start)))
			if opts.file == "" {
				if _, err := io.WriteString(cmd.OutOrStdout(), doc); err != nil {
					return err
				}
			} else if err := os.WriteFile(opts.file, []byte(doc), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", opts.file, err)
			}
			if opts.png != "" {
				var buf bytes.Buffer
				if err := raster.PNG(&buf, bytes.NewBufferString(doc), opts.width, opts.height); err != nil {
					return err
				}
				if err := os.WriteFile(opts.png, buf.Bytes(), 0644); err != nil {
					return fmt.Errorf("writing %s: %w", opts.png, err)
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "o", "", "write the SVG document to this file instead of standard output")
	f.StringVar(&opts.png, "png", "", "also write a PNG image to this file")
	f.Float64Var(&opts.rx, "rx", 0, "rotation around x, in degrees")
	f.Float64Var(&opts.ry, "ry", 0, "rotation around y, in degrees")
	f.Float64Var(&opts.rz, "rz", 0, "rotation around z, in degrees")
	f.IntVar(&opts.width, "width", scene.Width, "width of the PNG image, in pixels")
	f.IntVar(&opts.height, "height", scene.Height, "height of the PNG image, in pixels")
	return cmd
}

func newPlotCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plot NAME FILE",
		Short: "Plot the depth of each atom and bond in paint order (png, svg or pdf)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mol, err := app.DB.LoadMolecule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cat, err := catalog(cmd, app)
			if err != nil {
				return err
			}
			prims, err := scene.Primitives(mol, cat)
			if err != nil {
				return err
			}
			if err := chemplot.DepthPlot(prims, args[0], args[1]); err != nil {
				return err
			}
			app.Logger.Info("depth plot written", logging.String("file", args[1]))
			return nil
		},
	}
}
