package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/stockroom/internal/core"
)

// FormData feeds the create and edit screens.
type FormData struct {
	ID      string // empty when creating
	Input   core.ProductInput
	Stock   int // current stock, shown next to the adjust form
	Options core.FilterOptions
	Error   *core.UserMessage
}

// IsNew reports whether the form creates a product.
func (d FormData) IsNew() bool { return d.ID == "" }

// ProductForm renders the product editor. Existing products also get the
// stock adjustment and delete forms.
func ProductForm(d FormData) templ.Component {
	title := "Editar producto"
	action := ProductPath(d.ID, "")
	if d.IsNew() {
		title = "Nuevo producto"
		action = "/products"
	}

	return Layout(title, component(func(ctx context.Context, h *html) {
		h.raw(`<h1>`)
		h.text(title)
		h.raw(`</h1>`)
		if d.Error != nil {
			h.render(ctx, ErrorAlert(d.Error.Message, d.Error.Action, d.Error.Code))
		}

		in := d.Input
		h.raw(`<form class="product" method="post"`)
		h.attr("action", action)
		h.raw(`>`)
		input(h, "name", "Nombre", "text", in.Name, true)
		input(h, "barcode", "Código de barras", "text", in.Barcode, false)
		datalist(h, "category", "Categoría", in.Category, d.Options.Categories)
		datalist(h, "supplier", "Proveedor", in.Supplier, d.Options.Suppliers)
		input(h, "cost", "Costo", "number", amountValue(in.Cost), false)
		input(h, "price", "Precio", "number", amountValue(in.Price), false)
		input(h, "stock", "Stock", "number", itoa(in.Stock), false)
		input(h, "minStock", "Stock mínimo", "number", itoa(in.MinStock), false)
		input(h, "location", "Ubicación", "text", in.Location, false)
		// Notes stay on one line: the CSV export has one record per line.
		input(h, "notes", "Notas", "text", in.Notes, false)
		h.raw(`<div class="buttons"><button type="submit" class="btn primary">Guardar</button>`,
			`<a href="/" class="btn">Cancelar</a></div></form>`)

		if d.IsNew() {
			return
		}

		h.raw(`<section class="adjust"><h2>Ajustar stock</h2><p>Stock actual: <strong>`)
		h.text(itoa(d.Stock))
		h.raw(`</strong></p><form method="post"`)
		h.attr("action", ProductPath(d.ID, "adjust"))
		h.raw(`><input type="number" name="quantity" min="1" step="1" required placeholder="Cantidad">`,
			`<button type="submit" name="direction" value="in" class="btn">Ingreso</button>`,
			`<button type="submit" name="direction" value="out" class="btn">Egreso</button></form></section>`)

		h.raw(`<form class="delete" method="post"`)
		h.attr("action", ProductPath(d.ID, "delete"))
		h.raw(`><button type="submit" class="btn danger">Eliminar producto</button></form>`)
	}))
}

func input(h *html, name, label, typ, value string, required bool) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(`<input`)
	h.attr("type", typ)
	h.attr("name", name)
	h.attr("value", value)
	if typ == "number" {
		h.raw(` min="0" step="any"`)
	}
	if required {
		h.raw(` required`)
	}
	h.raw(`></label>`)
}

// datalist is a free-text input suggesting the known vocabulary.
func datalist(h *html, name, label, value string, options []string) {
	listID := name + "-options"
	h.raw(`<label>`)
	h.text(label)
	h.raw(`<input type="text"`)
	h.attr("name", name)
	h.attr("value", value)
	h.attr("list", listID)
	h.raw(`></label><datalist`)
	h.attr("id", listID)
	h.raw(`>`)
	for _, o := range options {
		h.raw(`<option`)
		h.attr("value", o)
		h.raw(`>`)
	}
	h.raw(`</datalist>`)
}
