/*
 * style.go, part of molsvg.
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

//Package style keeps the drawing style (radius and gradient colours) of each element,
//indexed by element code. Atoms only carry their element code, the style is looked up
//when drawing, so a catalog refreshed from the database changes the next drawing.
package style

import (
	"context"
	"fmt"
	"strings"
	"sync"

	chem "github.com/rmera/molsvg"
)

//Element is the style of one element.
type Element = chem.ElementStyle

//Source is anything that can list the styles of all known elements,
//such as *store.DB.
type Source interface {
	Elements(ctx context.Context) ([]Element, error)
}

//Catalog maps element codes to styles. It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	order []string
	els   map[string]Element
}

//NewCatalog returns a catalog with the given elements. Later elements replace
//earlier ones with the same code.
func NewCatalog(els ...Element) *Catalog {
	C := &Catalog{els: make(map[string]Element, len(els))}
	for _, e := range els {
		C.set(e)
	}
	return C
}

//Defaults returns a catalog with the built-in element table.
func Defaults() *Catalog {
	return NewCatalog(chem.DefaultElements()...)
}

//Load replaces the whole content of the catalog with the elements in src.
//On error the catalog is not changed.
func (C *Catalog) Load(ctx context.Context, src Source) error {
	els, err := src.Elements(ctx)
	if err != nil {
		return fmt.Errorf("loading element styles: %w", err)
	}
	order := make([]string, 0, len(els))
	m := make(map[string]Element, len(els))
	for _, e := range els {
		if _, ok := m[e.Code]; !ok {
			order = append(order, e.Code)
		}
		m[e.Code] = e
	}
	C.mu.Lock()
	C.order = order
	C.els = m
	C.mu.Unlock()
	return nil
}

//Lookup returns the style of the element with the given code, or a StyleNotFoundError.
func (C *Catalog) Lookup(code string) (Element, error) {
	C.mu.RLock()
	e, ok := C.els[code]
	C.mu.RUnlock()
	if !ok {
		return Element{}, chem.NewError(chem.ErrorKindStyleNotFound, fmt.Sprintf("no style for element %q", code), "Catalog.Lookup")
	}
	return e, nil
}

func (C *Catalog) set(e Element) {
	if _, ok := C.els[e.Code]; !ok {
		C.order = append(C.order, e.Code)
	}
	C.els[e.Code] = e
}

//Set adds e to the catalog, or replaces the element with the same code.
func (C *Catalog) Set(e Element) {
	C.mu.Lock()
	C.set(e)
	C.mu.Unlock()
}

//Remove deletes the element with the given code. It returns false if there was none.
func (C *Catalog) Remove(code string) bool {
	C.mu.Lock()
	defer C.mu.Unlock()
	if _, ok := C.els[code]; !ok {
		return false
	}
	delete(C.els, code)
	for i, v := range C.order {
		if v == code {
			C.order = append(C.order[:i], C.order[i+1:]...)
			break
		}
	}
	return true
}

//Len returns the number of elements in the catalog.
func (C *Catalog) Len() int {
	C.mu.RLock()
	defer C.mu.RUnlock()
	return len(C.order)
}

//Elements returns the styles in catalog order.
func (C *Catalog) Elements() []Element {
	C.mu.RLock()
	defer C.mu.RUnlock()
	ret := make([]Element, 0, len(C.order))
	for _, c := range C.order {
		ret = append(ret, C.els[c])
	}
	return ret
}

//Radius returns a snapshot of the code to radius map.
func (C *Catalog) Radius() map[string]float64 {
	C.mu.RLock()
	defer C.mu.RUnlock()
	ret := make(map[string]float64, len(C.els))
	for k, v := range C.els {
		ret[k] = v.Radius
	}
	return ret
}

//Names returns a snapshot of the code to display name map.
func (C *Catalog) Names() map[string]string {
	C.mu.RLock()
	defer C.mu.RUnlock()
	ret := make(map[string]string, len(C.els))
	for k, v := range C.els {
		ret[k] = v.Name
	}
	return ret
}

const gradientTemplate = `  <radialGradient id="%s" cx="-50%%" cy="-50%%" r="220%%" fx="20%%" fy="20%%">
    <stop offset="0%%" stop-color="#%s"/>
    <stop offset="50%%" stop-color="#%s"/>
    <stop offset="100%%" stop-color="#%s"/>
  </radialGradient>
`

//Gradient returns the SVG radial gradient definition for e. Its id is the element name.
func Gradient(e Element) string {
	return fmt.Sprintf(gradientTemplate, e.Name, e.Colour1, e.Colour2, e.Colour3)
}

//Gradients returns the radial gradient definitions of all elements, in catalog order.
func (C *Catalog) Gradients() string {
	var b strings.Builder
	for _, e := range C.Elements() {
		b.WriteString(Gradient(e))
	}
	return b.String()
}
