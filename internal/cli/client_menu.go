// internal/cli/client_menu.go
package cli

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/gfranca/mercado/internal/models"
)

func (a *App) clientMenu(session *Session) {
	for {
		a.prompt.Println("\n----- Menu do Cliente -----")
		a.prompt.Println("1. Verificar meus Pedidos")
		a.prompt.Println("2. Fazer Novo Pedido")
		a.prompt.Println("3. Sair")

		switch a.prompt.AskChoice("Escolha uma opção", "1", "2", "3") {
		case "1":
			a.prompt.Println("\n----- Meus Pedidos -----")
			renderOrders(a.prompt.out, a.orders.ListByClient(session.User.ID))
		case "2":
			a.newOrder(session)
		case "3":
			return
		}
	}
}

// newOrder drives the cart editing loop: every added item reserves catalog
// stock, every removal releases it, and an abandoned cart releases all of
// it. Finishing with an empty cart discards the draft silently.
func (a *App) newOrder(session *Session) {
	draft := a.orders.CreateDraft(session.User.ID)

	for {
		a.prompt.Printf("\n----- Pedido #%d -----\n", draft.ID)
		renderLineItems(a.prompt.out, draft.Items)
		a.prompt.Printf("Total parcial: R$ %s\n", draft.Total().StringFixed(2))
		a.prompt.Println("1. Adicionar Produto")
		a.prompt.Println("2. Remover Produto")
		a.prompt.Println("3. Finalizar Pedido")
		a.prompt.Println("4. Cancelar Pedido")

		switch a.prompt.AskChoice("Escolha uma opção", "1", "2", "3", "4") {
		case "1":
			a.addItemToDraft(draft)
		case "2":
			a.removeItemFromDraft(draft)
		case "3":
			placed, err := a.orders.Checkout(draft)
			if err != nil {
				a.prompt.Printf("Não foi possível finalizar: %v\n", err)
				continue
			}
			if !placed {
				a.prompt.Println("Pedido vazio descartado.")
				return
			}
			a.prompt.Printf("Pedido #%d finalizado! Total: R$ %s\n", draft.ID, draft.Total().StringFixed(2))
			return
		case "4":
			if err := a.orders.CancelDraft(draft); err != nil {
				logrus.WithError(err).Warn("Failed to cancel draft")
			}
			a.prompt.Println("Pedido cancelado.")
			return
		}
	}
}

func (a *App) addItemToDraft(draft *models.Order) {
	products := a.catalog.List()
	renderProducts(a.prompt.out, products)
	if len(products) == 0 {
		return
	}

	id := a.prompt.AskInt("Digite o ID do produto desejado")
	product, err := a.catalog.Get(id)
	if err != nil {
		a.prompt.Printf("Produto não encontrado.\n")
		return
	}

	quantity := 1
	if product.Kind() == models.ProductKindPhysical {
		quantity = a.prompt.AskInt("Quantidade")
	}

	item, err := a.orders.AddItem(draft, id, quantity)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientStock):
			a.prompt.Printf("Estoque insuficiente: %v\n", err)
		case errors.Is(err, models.ErrValidation):
			a.prompt.Printf("Quantidade inválida: %v\n", err)
		default:
			a.prompt.Printf("Não foi possível adicionar: %v\n", err)
		}
		return
	}
	a.prompt.Printf("Produto '%s' adicionado ao pedido.\n", item.Name)
}

func (a *App) removeItemFromDraft(draft *models.Order) {
	if len(draft.Items) == 0 {
		a.prompt.Println("O pedido está vazio.")
		return
	}
	renderLineItems(a.prompt.out, draft.Items)

	index := a.prompt.AskInt("Digite o número do item a remover") - 1
	item, err := a.orders.RemoveItem(draft, index)
	if err != nil {
		if errors.Is(err, models.ErrOutOfRange) {
			a.prompt.Println("Item inexistente.")
		} else {
			a.prompt.Printf("Não foi possível remover: %v\n", err)
		}
		return
	}
	a.prompt.Printf("Produto '%s' removido do pedido.\n", item.Name)
}
