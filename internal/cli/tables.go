// internal/cli/tables.go
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gfranca/mercado/internal/models"
)

func renderProducts(out io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(out, "Nenhum produto cadastrado no mercado.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNome\tQuantidade\tPreço (R$)")
	for _, product := range products {
		base := product.Base()
		quantity := "Digital"
		if physical, ok := product.(*models.PhysicalProduct); ok {
			quantity = fmt.Sprintf("%d", physical.Stock)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", base.ID, base.Name, quantity, base.Price.StringFixed(2))
	}
	w.Flush()
}

func renderOrders(out io.Writer, orders []*models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(out, "Nenhum pedido encontrado.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID Pedido\tCliente\tData\tStatus\tNº de Itens\tTotal (R$)")
	for _, order := range orders {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%s\n",
			order.ID,
			order.ClientID,
			order.CreatedAt.Format("02/01/2006 15:04"),
			order.Status,
			len(order.Items),
			order.Total().StringFixed(2))
	}
	w.Flush()
}

func renderLineItems(out io.Writer, items []models.LineItem) {
	if len(items) == 0 {
		fmt.Fprintln(out, "O pedido está vazio.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tProduto\tQuantidade\tSubtotal (R$)")
	for i, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, item.Name, item.Quantity, item.Subtotal().StringFixed(2))
	}
	w.Flush()
}
