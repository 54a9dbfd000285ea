package models

type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type AddToCartRequest struct {
	ItemID   uint64 `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	CartID uint64 `json:"cart_id" binding:"required"`
}
