package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wandaazhar007/backend-kansha-2026/internal/auth"
	"github.com/wandaazhar007/backend-kansha-2026/internal/config"
	"github.com/wandaazhar007/backend-kansha-2026/internal/http/controller"
	"github.com/wandaazhar007/backend-kansha-2026/internal/http/middleware"
)

// InitRouter wires middleware and the resource routes onto the server.
// Read routes are public; every write route requires a verified identity.
func InitRouter(
	conf *config.Config,
	server *gin.Engine,
	verifier auth.Verifier,
	ctr *controller.Controller,
	categoryCtr *controller.CategoryController,
	productCtr *controller.ProductController,
) *gin.Engine {
	server.Use(middleware.Recovery(), middleware.CORS(), middleware.RequestLogger())

	server.GET("/health", ctr.Health)

	api := server.Group("/api")
	api.Use(middleware.RateLimit(conf.RateLimit.RPS, conf.RateLimit.Burst))

	requireAuth := middleware.RequireAuth(verifier)

	categories := api.Group("/categories")
	{
		categories.GET("", categoryCtr.List)
		categories.GET("/:id", categoryCtr.GetByID)
		categories.POST("", requireAuth, categoryCtr.Create)
		categories.PUT("/:id", requireAuth, categoryCtr.Update)
		categories.DELETE("/:id", requireAuth, categoryCtr.Delete)
	}

	products := api.Group("/products")
	{
		products.GET("", productCtr.List)
		products.GET("/:id", productCtr.GetByID)
		products.POST("", requireAuth, productCtr.Create)
		products.PUT("/:id", requireAuth, productCtr.Update)
		products.DELETE("/:id", requireAuth, productCtr.Delete)
	}

	server.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return server
}
