// internal/models/common.go
package models

// Enums

type ProductKind string

const (
	ProductKindPhysical ProductKind = "fisico"
	ProductKindDigital  ProductKind = "digital"
)

func (k ProductKind) Valid() bool {
	return k == ProductKindPhysical || k == ProductKindDigital
}

type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "pendente"
	OrderStatusAwaitingDelivery OrderStatus = "aguardando entrega"
	OrderStatusDelivered        OrderStatus = "entregue"
)

func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusAwaitingDelivery || s == OrderStatusDelivered
}

type UserType string

const (
	UserTypeClient UserType = "cliente"
	UserTypeAdmin  UserType = "administrador"
)

func (t UserType) Valid() bool {
	return t == UserTypeClient || t == UserTypeAdmin
}
