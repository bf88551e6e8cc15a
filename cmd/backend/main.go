package main

import (
	"marketplace/internal/api"

	"github.com/sirupsen/logrus"
)

// @title Expert Marketplace API
// @version 1.0
// @description Request lifecycle, assignment pool, invoicing and expert settlement.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logrus.Info("App start")
	api.StartServer()
	logrus.Info("App terminated")
}
