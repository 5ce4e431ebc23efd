// internal/cli/admin_menu.go
package cli

import (
	"errors"

	"github.com/gfranca/mercado/internal/models"
	"github.com/gfranca/mercado/internal/services"
)

func (a *App) adminMenu(session *Session) {
	for {
		a.prompt.Println("\n----- Menu do Administrador -----")
		a.prompt.Println("1. Verificar Estoque")
		a.prompt.Println("2. Cadastrar Produto")
		a.prompt.Println("3. Editar Produto")
		a.prompt.Println("4. Verificar Pedidos")
		a.prompt.Println("5. Processar Pedido")
		a.prompt.Println("6. Sair")

		switch a.prompt.AskChoice("Escolha uma opção", "1", "2", "3", "4", "5", "6") {
		case "1":
			renderProducts(a.prompt.out, a.catalog.List())
		case "2":
			a.registerProduct()
		case "3":
			a.editProduct()
		case "4":
			a.prompt.Println("\n----- Pedidos Aguardando Entrega -----")
			renderOrders(a.prompt.out, a.orders.ListPending(nil))
		case "5":
			a.processOrder()
		case "6":
			return
		}
	}
}

func (a *App) registerProduct() {
	a.prompt.Println("\n----- Cadastro de Novo Produto -----")

	req := &services.RegisterProductRequest{
		Kind:  models.ProductKind(a.prompt.AskChoice("O produto é físico ou digital?", "fisico", "digital")),
		Name:  a.prompt.Ask("Nome do produto"),
		Price: a.prompt.AskFloat("Preço (R$)"),
	}
	if req.Kind == models.ProductKindPhysical {
		req.Stock = a.prompt.AskInt("Quantidade em estoque")
		req.Height = a.prompt.AskFloat("Altura (cm)")
		req.Width = a.prompt.AskFloat("Largura (cm)")
		req.Depth = a.prompt.AskFloat("Profundidade (cm)")
	} else {
		req.DownloadLink = a.prompt.Ask("Link para download (vazio para gerar)")
	}

	id, err := a.catalog.Register(req)
	if err != nil {
		a.prompt.Printf("Não foi possível cadastrar: %v\n", err)
		return
	}
	a.prompt.Printf("Produto '%s' cadastrado com sucesso com o ID %d!\n", req.Name, id)
}

func (a *App) editProduct() {
	renderProducts(a.prompt.out, a.catalog.List())
	id := a.prompt.AskInt("Digite o ID do produto a editar")

	product, err := a.catalog.Get(id)
	if err != nil {
		a.prompt.Printf("Produto não encontrado: %v\n", err)
		return
	}

	for {
		a.prompt.Printf("\nEditando: %s\n", product.Base().Name)
		var choice string
		if product.Kind() == models.ProductKindPhysical {
			a.prompt.Println("1. Nome")
			a.prompt.Println("2. Preço")
			a.prompt.Println("3. Quantidade")
			a.prompt.Println("4. Altura (cm)")
			a.prompt.Println("5. Largura (cm)")
			a.prompt.Println("6. Profundidade (cm)")
			a.prompt.Println("7. Concluir Edição")
			choice = a.prompt.AskChoice("Escolha uma opção", "1", "2", "3", "4", "5", "6", "7")
			if choice == "7" {
				return
			}
		} else {
			a.prompt.Println("1. Nome")
			a.prompt.Println("2. Preço")
			a.prompt.Println("3. Link de download")
			a.prompt.Println("4. Concluir Edição")
			choice = a.prompt.AskChoice("Escolha uma opção", "1", "2", "3", "4")
			if choice == "4" {
				return
			}
		}

		patch := &services.EditProductPatch{}
		switch choice {
		case "1":
			name := a.prompt.Ask("Novo nome")
			patch.Name = &name
		case "2":
			price := a.prompt.AskFloat("Novo preço (R$)")
			patch.Price = &price
		case "3":
			if product.Kind() == models.ProductKindPhysical {
				stock := a.prompt.AskInt("Nova quantidade")
				patch.Stock = &stock
			} else {
				link := a.prompt.Ask("Novo link de download")
				patch.DownloadLink = &link
			}
		case "4":
			height := a.prompt.AskFloat("Nova altura")
			patch.Height = &height
		case "5":
			width := a.prompt.AskFloat("Nova largura")
			patch.Width = &width
		case "6":
			depth := a.prompt.AskFloat("Nova profundidade")
			patch.Depth = &depth
		}

		if err := a.catalog.Edit(id, patch); err != nil {
			a.prompt.Printf("Não foi possível editar: %v\n", err)
			continue
		}
		a.prompt.Println("Campo atualizado.")
	}
}

func (a *App) processOrder() {
	pending := a.orders.ListPending(nil)
	if len(pending) == 0 {
		a.prompt.Println("Nenhum pedido aguardando entrega.")
		return
	}
	renderOrders(a.prompt.out, pending)

	id := a.prompt.AskInt("Digite o ID do pedido a processar")
	order, notes, err := a.orders.Fulfill(id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			a.prompt.Printf("Pedido %d não encontrado.\n", id)
		case errors.Is(err, models.ErrInvalidState):
			a.prompt.Printf("Pedido %d não está aguardando entrega.\n", id)
		default:
			a.prompt.Printf("Não foi possível processar: %v\n", err)
		}
		return
	}

	a.prompt.Printf("\nProcessando entrega do Pedido #%d...\n", order.ID)
	for _, note := range notes {
		if note.Kind == models.ProductKindDigital {
			a.prompt.Printf("  - Enviando link para '%s': %s\n", note.ItemName, note.DownloadLink)
		} else {
			a.prompt.Printf("  - Preparando envio de %dx '%s'...\n", note.Quantity, note.ItemName)
		}
	}
	a.prompt.Printf("Entrega processada com sucesso! Novo status do pedido: %s\n", order.Status)
}
