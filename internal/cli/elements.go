/*
 * elements.go, part of molsvg.
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
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	chem "github.com/rmera/molsvg"
	"github.com/rmera/molsvg/style"
)

func newElementsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elements",
		Short: "Manage the element styles",
	}
	cmd.AddCommand(newElementsListCmd(app), newElementsAddCmd(app), newElementsRemoveCmd(app))
	return cmd
}

func newElementsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the element styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			els, err := app.DB.Elements(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, app, els, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NO\tCODE\tNAME\tCOLOURS\tRADIUS")
				for _, e := range els {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s %s %s\t%g\n", e.Number, e.Code, e.Name, e.Colour1, e.Colour2, e.Colour3, e.Radius)
				}
				tw.Flush()
			})
		},
	}
}

func newElementsAddCmd(app *App) *cobra.Command {
	var radius float64
	cmd := &cobra.Command{
		Use:   "add NUMBER CODE NAME COLOUR1 COLOUR2 COLOUR3",
		Short: "Add an element style",
		Long: "add stores the style of an element. Colours are 6 hexadecimal digits, from\n" +
			"the lightest to the darkest. Without --radius the radius is derived from the\n" +
			"van der Waals radius of the element, if known.",
		Args: cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("atomic number %q: %w", args[0], err)
			}
			e := style.Element{Number: number, Code: args[1], Name: args[2], Colour1: args[3], Colour2: args[4], Colour3: args[5], Radius: radius}
			if e.Radius == 0 {
				e.Radius = chem.VdwDrawRadius(e.Code)
			}
			if err := app.DB.AddElement(cmd.Context(), e); err != nil {
				return err
			}
			return printResult(cmd, app, e, func(w io.Writer) {
				fmt.Fprintf(w, "added element %s (%s)\n", e.Code, e.Name)
			})
		},
	}
	cmd.Flags().Float64Var(&radius, "radius", 0, "drawing radius")
	return cmd
}

func newElementsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CODE",
		Short: "Remove an element style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.DB.RemoveElement(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printResult(cmd, app, map[string]string{"removed": args[0]}, func(w io.Writer) {
				fmt.Fprintf(w, "removed element %s\n", args[0])
			})
		},
	}
}
