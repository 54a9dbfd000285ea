package rest

import (
	"net/http"

	"github.com/dmitrijs2005/shopcart/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) register(c *gin.Context) {
	var req models.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := s.svc.Users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err, "Failed to create user", messages{
			http.StatusConflict: "Username already exists",
		})
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", user.Username)
	c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var req models.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, user, err := s.svc.Users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err, "Failed to generate token", messages{
			http.StatusUnauthorized: "Invalid username or password",
		})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user})
}

func (s *Server) listItems(c *gin.Context) {
	items, err := s.svc.Catalog.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "Failed to fetch items", nil)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) createItem(c *gin.Context) {
	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}

	out, err := s.svc.Catalog.Create(c.Request.Context(), &item)
	if err != nil {
		s.writeError(c, err, "Failed to create item", nil)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (s *Server) addToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cart, err := s.svc.Carts.AddToCart(c.Request.Context(), currentUserID(c), req.ItemID, req.Quantity)
	if err != nil {
		s.writeError(c, err, "Failed to add item to cart", messages{
			http.StatusNotFound: "Item not found",
		})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) listCarts(c *gin.Context) {
	carts, err := s.svc.Carts.ListCarts(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err, "Failed to fetch carts", nil)
		return
	}
	c.JSON(http.StatusOK, carts)
}

func (s *Server) createOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := s.svc.Orders.Checkout(c.Request.Context(), currentUserID(c), req.CartID)
	if err != nil {
		s.writeError(c, err, "Failed to create order", messages{
			http.StatusNotFound:   "Cart not found or already ordered",
			http.StatusBadRequest: "Cart is empty",
		})
		return
	}

	s.logger.Info(c.Request.Context(), "Order created", "order_id", order.ID, "total", order.TotalPrice)
	c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.svc.Orders.ListOrders(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err, "Failed to fetch orders", nil)
		return
	}
	c.JSON(http.StatusOK, orders)
}
