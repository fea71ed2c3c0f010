package main

import (
	"blood-donation-api/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.WithError(err).Fatal("Blood donation API failed to start")
	}
	defer logrus.Info("Blood donation API stopped")

	logrus.WithFields(logrus.Fields{
		"env":  app.Config.App.Env,
		"port": app.Config.App.Port,
	}).Info("Blood donation API initialized")

	app.Run()
}
