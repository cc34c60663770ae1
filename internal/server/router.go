package server

import (
	handler "token-exchange/services/exchange/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(service handler.ExchangeServiceInterface, events handler.EventReader, hub *Hub) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	exchangeHandler := handler.NewExchangeHandler(service)
	eventsHandler := handler.NewEventsHandler(events)

	listings := router.Group("/listings")
	{
		listings.GET("", exchangeHandler.GetAllListingsHandler)
		listings.GET("/count", exchangeHandler.TotalListingsHandler)
		listings.GET("/:token_id", exchangeHandler.GetListingHandler)
		listings.GET("/:token_id/bids", exchangeHandler.GetAllBidsHandler)
		listings.GET("/:token_id/max-bidder", exchangeHandler.GetMaxBidderHandler)

		listings.POST("", CallerMiddleware, exchangeHandler.CreateListingHandler)
		listings.PATCH("/:token_id", CallerMiddleware, exchangeHandler.ChangePriceHandler)
		listings.DELETE("/:token_id", CallerMiddleware, exchangeHandler.RemoveListingHandler)
		listings.POST("/:token_id/buy", CallerMiddleware, exchangeHandler.BuyTokenHandler)
		listings.POST("/:token_id/sell", CallerMiddleware, exchangeHandler.SellViaBiddingHandler)
		listings.POST("/:token_id/bids", CallerMiddleware, exchangeHandler.PlaceBidHandler)
		listings.DELETE("/:token_id/bids", CallerMiddleware, exchangeHandler.CancelBidHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:account/listings", exchangeHandler.GetListingsByUserHandler)
	}

	router.GET("/events", eventsHandler.ListEventsHandler)
	if hub != nil {
		router.GET("/ws", hub.ServeWS)
	}

	return router
}
