package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/stockroom/internal/core"
)

// CatalogData is everything the catalog page shows.
type CatalogData struct {
	Products []core.Product // filtered, sorted view
	Total    int            // catalog size before filtering
	Query    core.Query
	Options  core.FilterOptions
	Stats    core.Stats
	Notice   string
	Error    *core.UserMessage
}

// column is a sortable table header.
type column struct {
	key, label string
	numeric    bool
}

var tableColumns = []column{
	{"barcode", "Código", false},
	{"name", "Nombre", false},
	{"category", "Categoría", false},
	{"supplier", "Proveedor", false},
	{"cost", "Costo", true},
	{"price", "Precio", true},
	{"stock", "Stock", true},
	{"minStock", "Mínimo", true},
	{"location", "Ubicación", false},
}

var statusOptions = []struct {
	value core.StatusFilter
	label string
}{
	{core.StatusAny, "Todos"},
	{core.StatusLow, "Stock bajo"},
	{core.StatusZero, "Sin stock"},
	{core.StatusOK, "OK"},
}

// CatalogPage is the main inventory screen.
func CatalogPage(d CatalogData) templ.Component {
	return Layout("Stock", component(func(ctx context.Context, h *html) {
		h.render(ctx, StatsPanel(d.Stats), Notice(d.Notice))
		if d.Error != nil {
			h.render(ctx, ErrorAlert(d.Error.Message, d.Error.Action, d.Error.Code))
		}
		h.render(ctx, filterForm(d), importForm(), ProductTable(d))
	}))
}

// StatsPanel shows catalog-wide counters, independent of the active filters.
func StatsPanel(st core.Stats) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<section class="stats">`)
		card := func(label, value string) {
			h.raw(`<div class="card"><span>`)
			h.text(label)
			h.raw(`</span><strong>`)
			h.text(value)
			h.raw(`</strong></div>`)
		}
		card("Productos", Number(st.Products))
		card("Valor a costo", Money(st.CostValue))
		card("Valor a precio", Money(st.PriceValue))
		card("Stock bajo", Number(st.LowStock))
		h.raw(`</section>`)
	})
}

func filterForm(d CatalogData) templ.Component {
	return component(func(_ context.Context, h *html) {
		f := d.Query.Filters
		h.raw(`<form class="filters" method="get" action="/">`)
		h.raw(`<input type="search" name="q" placeholder="Buscar por nombre, código o proveedor"`)
		h.attr("value", f.Search)
		h.raw(`>`)
		selectBox(h, "category", "Todas las categorías", d.Options.Categories, f.Category)
		selectBox(h, "supplier", "Todos los proveedores", d.Options.Suppliers, f.Supplier)
		h.raw(`<select name="status">`)
		for _, o := range statusOptions {
			option(h, string(o.value), o.label, o.value == f.Status)
		}
		h.raw(`</select>`)
		if d.Query.Sort != core.DefaultSort {
			h.raw(`<input type="hidden" name="sort"`)
			h.attr("value", d.Query.Sort.Key)
			h.raw(`><input type="hidden" name="dir"`)
			h.attr("value", d.Query.Sort.Dir)
			h.raw(`>`)
		}
		h.raw(`<button type="submit" class="btn">Filtrar</button><a href="/" class="btn">Limpiar</a></form>`)
	})
}

func selectBox(h *html, name, allLabel string, values []string, selected string) {
	h.raw(`<select`)
	h.attr("name", name)
	h.raw(`>`)
	option(h, "", allLabel, selected == "")
	for _, v := range values {
		option(h, v, v, v == selected)
	}
	h.raw(`</select>`)
}

func option(h *html, value, label string, selected bool) {
	h.raw(`<option`)
	h.attr("value", value)
	if selected {
		h.raw(` selected`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</option>`)
}

func importForm() templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<form class="import" method="post" action="/import" enctype="multipart/form-data">`,
			`<input type="file" name="file" accept=".csv,text/csv" required>`,
			`<button type="submit" class="btn">Importar CSV</button></form>`)
	})
}

// ProductTable is the bulk-action form and product table. It is also the
// fragment returned to HTMX requests.
func ProductTable(d CatalogData) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<form id="catalog" method="post" action="/products/bulk">`)
		h.raw(`<div class="bulk"><span>`)
		h.text(plural(len(d.Products), "producto", "productos"))
		if len(d.Products) != d.Total {
			h.text(" de " + itoa(d.Total))
		}
		h.raw(`</span><input type="number" name="quantity" min="1" step="1" placeholder="Cantidad">`,
			`<button type="submit" name="action" value="in" class="btn">Ingreso</button>`,
			`<button type="submit" name="action" value="out" class="btn">Egreso</button>`,
			`<button type="submit" name="action" value="delete" class="btn danger">Eliminar</button></div>`)

		h.raw(`<table><thead><tr><th></th>`)
		for _, c := range tableColumns {
			h.raw(`<th>`)
			next := d.Query
			next.Sort = d.Query.Sort.Toggle(c.key)
			h.raw(`<a`)
			h.attr("href", QueryURL(next))
			h.raw(`>`)
			h.text(c.label)
			if d.Query.Sort.Key == c.key {
				if d.Query.Sort.Dir == "desc" {
					h.raw(` ▼`)
				} else {
					h.raw(` ▲`)
				}
			}
			h.raw(`</a></th>`)
		}
		h.raw(`<th>Estado</th><th></th></tr></thead><tbody>`)

		if len(d.Products) == 0 {
			h.raw(`<tr><td colspan="12" class="empty">No hay productos para mostrar</td></tr>`)
		}
		for _, p := range d.Products {
			productRow(h, p)
		}
		h.raw(`</tbody></table></form>`)
	})
}

func productRow(h *html, p core.Product) {
	st := p.Status()
	h.raw(`<tr`)
	h.attr("class", "status-"+string(st))
	h.raw(`><td><input type="checkbox" name="ids"`)
	h.attr("value", p.ID)
	h.raw(`></td>`)
	for _, c := range tableColumns {
		if c.numeric {
			h.raw(`<td class="num">`)
		} else {
			h.raw(`<td>`)
		}
		switch c.key {
		case "barcode":
			h.text(p.Barcode)
		case "name":
			h.text(p.Name)
			if p.Notes != "" {
				h.raw(`<small>`)
				h.text(p.Notes)
				h.raw(`</small>`)
			}
		case "category":
			h.text(p.Category)
		case "supplier":
			h.text(p.Supplier)
		case "cost":
			h.text(Money(p.Cost))
		case "price":
			h.text(Money(p.Price))
		case "stock":
			h.text(itoa(p.Stock))
		case "minStock":
			h.text(itoa(p.MinStock))
		case "location":
			h.text(p.Location)
		}
		h.raw(`</td>`)
	}
	h.raw(`<td><span`)
	h.attr("class", "badge "+string(st))
	h.raw(`>`)
	h.text(st.Label())
	h.raw(`</span></td><td class="actions"><a`)
	h.attr("href", ProductPath(p.ID, "edit"))
	h.raw(`>Editar</a></td></tr>`)
}
