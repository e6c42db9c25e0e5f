package main

import (
	"fmt"

	"okravets/contacts-api/app"
	"okravets/contacts-api/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	router, err := app.NewRouter()
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting")

	addr := fmt.Sprintf(":%d", viper.GetInt("host.port"))

	if viper.GetBool("host.ssl.enabled") {
		err = router.RunTLS(addr,
			viper.GetString("host.ssl.certificate_path"),
			viper.GetString("host.ssl.certificate_key_path"))
	} else {
		err = router.Run(addr)
	}
	if err != nil {
		panic(err)
	}
}
